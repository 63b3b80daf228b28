package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsroom/internal/model"
)

// NewsRepository defines news persistence operations.
type NewsRepository interface {
	Create(ctx context.Context, news *model.News) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.News, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.News, error)
	// UpdateFields applies a partial, field-level update so a concurrent
	// writer touching other columns is not clobbered.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindDue returns unpublished news scheduled at or before the given time.
	FindDue(ctx context.Context, now time.Time) ([]model.News, error)
	// MarkPublished sets published=true on a single row and nothing else.
	MarkPublished(ctx context.Context, id uuid.UUID) error
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository builds a GORM-backed repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.News, error) {
	var news model.News
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.News, error) {
	var items []model.News
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("scheduled_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *newsRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.News{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.News{}).Error
}

func (r *newsRepository) FindDue(ctx context.Context, now time.Time) ([]model.News, error) {
	var due []model.News
	if err := r.db.WithContext(ctx).
		Where("scheduled_at <= ? AND published = ?", now, false).
		Find(&due).Error; err != nil {
		return nil, err
	}
	return due, nil
}

func (r *newsRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.News{}).
		Where("id = ?", id).
		Update("published", true).Error
}
