package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsroom/internal/cache"
	apperrors "newsroom/internal/errors"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

const newsCacheTTL = 5 * time.Minute

// UpdateNewsInput carries a partial update. A nil field means "leave as is";
// a non-nil pointer to an empty string is still an explicit value and is
// rejected by validation rather than treated as absent.
type UpdateNewsInput struct {
	Title       *string
	Content     *string
	ScheduledAt *time.Time
	Published   *bool
}

// NewsService exposes the ownership-gated news lifecycle.
type NewsService interface {
	Create(ctx context.Context, authorID uuid.UUID, title, content string, scheduledAt *time.Time, published bool) (*model.News, error)
	Get(ctx context.Context, id uuid.UUID) (*model.News, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.News, error)
	Update(ctx context.Context, callerID, id uuid.UUID, input UpdateNewsInput) (*model.News, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) (*model.News, error)
	PublishNow(ctx context.Context, callerID, id uuid.UUID) (*model.News, error)
}

type newsService struct {
	repo  repository.NewsRepository
	cache *cache.Client
}

// NewNewsService builds a NewsService with repository and cache.
func NewNewsService(repo repository.NewsRepository, cache *cache.Client) NewsService {
	return &newsService{repo: repo, cache: cache}
}

func (s *newsService) cacheKey(id uuid.UUID) string {
	return cache.NewsKey(id.String())
}

// Create stores a new news item owned by the caller. ScheduledAt defaults to
// the current time; the published flag is caller-controlled, so an item may
// be created already published and never seen by the publisher.
func (s *newsService) Create(ctx context.Context, authorID uuid.UUID, title, content string, scheduledAt *time.Time, published bool) (*model.News, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrMissingFields
	}

	at := time.Now()
	if scheduledAt != nil {
		at = *scheduledAt
	}

	news := &model.News{
		ID:          uuid.New(),
		Title:       title,
		Content:     content,
		ScheduledAt: at,
		Published:   published,
		AuthorID:    authorID,
	}

	if err := s.repo.Create(ctx, news); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return news, nil
}

func (s *newsService) Get(ctx context.Context, id uuid.UUID) (*model.News, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.News
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNewsNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(news); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, newsCacheTTL)
	}
	return news, nil
}

func (s *newsService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.News, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// Update applies the supplied fields to a news item owned by the caller.
// The author id is never part of the update, whatever the client sends.
func (s *newsService) Update(ctx context.Context, callerID, id uuid.UUID, input UpdateNewsInput) (*model.News, error) {
	if _, err := s.findOwned(ctx, callerID, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.ErrMissingFields
		}
		fields["title"] = *input.Title
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, apperrors.ErrMissingFields
		}
		fields["content"] = *input.Content
	}
	if input.ScheduledAt != nil {
		fields["scheduled_at"] = *input.ScheduledAt
	}
	if input.Published != nil {
		fields["published"] = *input.Published
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload news: %w", err)
	}
	return news, nil
}

// Delete removes a news item owned by the caller and returns its last state.
func (s *newsService) Delete(ctx context.Context, callerID, id uuid.UUID) (*model.News, error) {
	news, err := s.findOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete news: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return news, nil
}

// PublishNow force-publishes a news item owned by the caller, ignoring its
// schedule. Re-publishing an already published item is a no-op.
func (s *newsService) PublishNow(ctx context.Context, callerID, id uuid.UUID) (*model.News, error) {
	news, err := s.findOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkPublished(ctx, id); err != nil {
		return nil, fmt.Errorf("publish news: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	news.Published = true
	return news, nil
}

// findOwned looks the item up and enforces ownership before any mutation.
// A blind upsert-by-id is never allowed: a caller must not be able to create
// an item they do not own by guessing an id.
func (s *newsService) findOwned(ctx context.Context, callerID, id uuid.UUID) (*model.News, error) {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNewsNotFound
		}
		return nil, fmt.Errorf("find news: %w", err)
	}
	if news.AuthorID != callerID {
		return nil, apperrors.ErrNotAuthor
	}
	return news, nil
}
