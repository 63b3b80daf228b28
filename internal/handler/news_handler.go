package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"newsroom/internal/auth"
	"newsroom/internal/errors"
	"newsroom/internal/service"
)

// NewsHandler handles news endpoints. The authenticated subject comes from
// the JWT middleware; ownership itself is enforced in the service layer.
type NewsHandler struct {
	newsService service.NewsService
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(newsService service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// CreateNewsRequest represents a news creation request. ScheduledAt is
// RFC3339; when omitted the item is scheduled for now. Published must be
// present, true or false.
type CreateNewsRequest struct {
	Title       string     `json:"title" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	// Checked by hand: validator's required would reject an explicit false.
	Published *bool `json:"published"`
}

// UpdateNewsRequest represents a partial news update. Absent fields keep
// their previous values; author_id is not accepted.
type UpdateNewsRequest struct {
	Title       *string    `json:"title"`
	Content     *string    `json:"content"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Published   *bool      `json:"published"`
}

// Create godoc
// @Summary Create a news item
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNewsRequest true "News data"
// @Success 201 {object} model.News
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	subject, err := auth.SubjectID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token subject",
			Code:  "UNAUTHENTICATED",
		})
	}

	var req CreateNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil || req.Published == nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "title, content or published is missing",
			Code:  "VALIDATION_ERROR",
		})
	}

	news, err := h.newsService.Create(c.Request().Context(), subject, req.Title, req.Content, req.ScheduledAt, *req.Published)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, news)
}

// List godoc
// @Summary List the caller's news items
// @Tags news
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.News
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	subject, err := auth.SubjectID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token subject",
			Code:  "UNAUTHENTICATED",
		})
	}

	items, err := h.newsService.ListByAuthor(c.Request().Context(), subject)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a news item by id
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} model.News
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}

	news, err := h.newsService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, news)
}

// Update godoc
// @Summary Update a news item (author only)
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Param request body UpdateNewsRequest true "Fields to change"
// @Success 200 {object} model.News
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /news/{id} [put]
func (h *NewsHandler) Update(c echo.Context) error {
	subject, err := auth.SubjectID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token subject",
			Code:  "UNAUTHENTICATED",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	news, err := h.newsService.Update(c.Request().Context(), subject, id, service.UpdateNewsInput{
		Title:       req.Title,
		Content:     req.Content,
		ScheduledAt: req.ScheduledAt,
		Published:   req.Published,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, news)
}

// Delete godoc
// @Summary Delete a news item (author only)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} model.News
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	subject, err := auth.SubjectID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token subject",
			Code:  "UNAUTHENTICATED",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}

	news, err := h.newsService.Delete(c.Request().Context(), subject, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, news)
}

// Publish godoc
// @Summary Publish a news item immediately (author only)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} model.News
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /news/publish/{id} [put]
func (h *NewsHandler) Publish(c echo.Context) error {
	subject, err := auth.SubjectID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token subject",
			Code:  "UNAUTHENTICATED",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}

	news, err := h.newsService.PublishNow(c.Request().Context(), subject, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, news)
}
