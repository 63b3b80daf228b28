package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "newsroom/internal/errors"
	"newsroom/internal/model"
)

// MockNewsRepository is a mock implementation of NewsRepository.
type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, news *model.News) error {
	args := m.Called(ctx, news)
	return args.Error(0)
}

func (m *MockNewsRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.News), args.Error(1)
}

func (m *MockNewsRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.News, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.News), args.Error(1)
}

func (m *MockNewsRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNewsRepository) FindDue(ctx context.Context, now time.Time) ([]model.News, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.News), args.Error(1)
}

func (m *MockNewsRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestNewsService_Create(t *testing.T) {
	author := uuid.New()

	t.Run("sets author and defaults schedule to now", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.News")).Return(nil)

		svc := NewNewsService(mockRepo, nil)
		before := time.Now()
		news, err := svc.Create(context.Background(), author, "A", "B", nil, false)

		assert.NoError(t, err)
		assert.Equal(t, author, news.AuthorID)
		assert.False(t, news.Published)
		assert.False(t, news.ScheduledAt.Before(before))
		assert.False(t, news.ScheduledAt.After(time.Now()))
		mockRepo.AssertExpectations(t)
	})

	t.Run("may be created already published", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.News")).Return(nil)

		svc := NewNewsService(mockRepo, nil)
		news, err := svc.Create(context.Background(), author, "A", "B", nil, true)

		assert.NoError(t, err)
		assert.True(t, news.Published)
	})

	t.Run("rejects empty title without touching the store", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)

		svc := NewNewsService(mockRepo, nil)
		news, err := svc.Create(context.Background(), author, "", "B", nil, false)

		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
		assert.Nil(t, news)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects empty content without touching the store", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)

		svc := NewNewsService(mockRepo, nil)
		_, err := svc.Create(context.Background(), author, "A", "   ", nil, false)

		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestNewsService_Update(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	newsID := uuid.New()

	existing := func() *model.News {
		return &model.News{
			ID:          newsID,
			Title:       "A",
			Content:     "B",
			ScheduledAt: time.Now().Add(time.Hour),
			Published:   false,
			AuthorID:    owner,
		}
	}

	t.Run("non-owner is rejected and nothing is written", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(existing(), nil)

		svc := NewNewsService(mockRepo, nil)
		title := "hijacked"
		news, err := svc.Update(context.Background(), stranger, newsID, UpdateNewsInput{Title: &title})

		assert.ErrorIs(t, err, apperrors.ErrNotAuthor)
		assert.Nil(t, news)
		mockRepo.AssertNotCalled(t, "UpdateFields")
	})

	t.Run("unknown id is not found, never an upsert", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewNewsService(mockRepo, nil)
		title := "T"
		_, err := svc.Update(context.Background(), owner, newsID, UpdateNewsInput{Title: &title})

		assert.ErrorIs(t, err, apperrors.ErrNewsNotFound)
		mockRepo.AssertNotCalled(t, "UpdateFields")
	})

	t.Run("only supplied fields reach the store", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(existing(), nil)
		mockRepo.On("UpdateFields", mock.Anything, newsID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasTitle := fields["title"]
			_, hasAuthor := fields["author_id"]
			return len(fields) == 1 && hasTitle && !hasAuthor
		})).Return(nil)

		svc := NewNewsService(mockRepo, nil)
		title := "New title"
		news, err := svc.Update(context.Background(), owner, newsID, UpdateNewsInput{Title: &title})

		assert.NoError(t, err)
		assert.NotNil(t, news)
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit empty string is rejected, not treated as absent", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(existing(), nil)

		svc := NewNewsService(mockRepo, nil)
		empty := ""
		_, err := svc.Update(context.Background(), owner, newsID, UpdateNewsInput{Content: &empty})

		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
		mockRepo.AssertNotCalled(t, "UpdateFields")
	})

	t.Run("author can also set published directly", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		updated := existing()
		updated.Published = true
		mockRepo.On("FindByID", mock.Anything, newsID).Return(existing(), nil).Once()
		mockRepo.On("UpdateFields", mock.Anything, newsID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			v, ok := fields["published"]
			return len(fields) == 1 && ok && v == true
		})).Return(nil)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(updated, nil)

		svc := NewNewsService(mockRepo, nil)
		published := true
		news, err := svc.Update(context.Background(), owner, newsID, UpdateNewsInput{Published: &published})

		assert.NoError(t, err)
		assert.True(t, news.Published)
	})
}

func TestNewsService_Delete(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	newsID := uuid.New()
	existing := &model.News{ID: newsID, Title: "A", Content: "B", AuthorID: owner}

	t.Run("owner gets the last-known state back", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(existing, nil)
		mockRepo.On("Delete", mock.Anything, newsID).Return(nil)

		svc := NewNewsService(mockRepo, nil)
		news, err := svc.Delete(context.Background(), owner, newsID)

		assert.NoError(t, err)
		assert.Equal(t, "A", news.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected and nothing is deleted", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(existing, nil)

		svc := NewNewsService(mockRepo, nil)
		_, err := svc.Delete(context.Background(), stranger, newsID)

		assert.ErrorIs(t, err, apperrors.ErrNotAuthor)
		mockRepo.AssertNotCalled(t, "Delete")
	})
}

func TestNewsService_PublishNow(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	newsID := uuid.New()

	farFuture := &model.News{
		ID:          newsID,
		Title:       "A",
		Content:     "B",
		ScheduledAt: time.Now().Add(240 * time.Hour),
		Published:   false,
		AuthorID:    owner,
	}

	t.Run("owner publishes immediately regardless of schedule", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(farFuture, nil)
		mockRepo.On("MarkPublished", mock.Anything, newsID).Return(nil)

		svc := NewNewsService(mockRepo, nil)
		news, err := svc.PublishNow(context.Background(), owner, newsID)

		assert.NoError(t, err)
		assert.True(t, news.Published)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		mockRepo.On("FindByID", mock.Anything, newsID).Return(farFuture, nil)

		svc := NewNewsService(mockRepo, nil)
		_, err := svc.PublishNow(context.Background(), stranger, newsID)

		assert.ErrorIs(t, err, apperrors.ErrNotAuthor)
		mockRepo.AssertNotCalled(t, "MarkPublished")
	})
}
