package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "newsroom/internal/errors"
)

func invokeMiddleware(t *testing.T, svc *JWTService, authHeader string) (handlerCalled bool, subject uuid.UUID, err error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		handlerCalled = true
		subject, err = SubjectID(c)
		return c.NoContent(http.StatusOK)
	}
	err = Middleware(svc)(next)(c)
	return handlerCalled, subject, err
}

func responseCode(t *testing.T, err error) (int, string) {
	t.Helper()

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	resp, ok := httpErr.Message.(apperrors.ErrorResponse)
	if !ok {
		t.Fatalf("expected errors.ErrorResponse message, got %T", httpErr.Message)
	}
	return httpErr.Code, resp.Code
}

func TestMiddleware_MissingTokenIsRejectedBeforeHandler(t *testing.T) {
	called, _, err := invokeMiddleware(t, NewJWTService("test-secret"), "")

	assert.False(t, called)
	status, code := responseCode(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", code)
}

func TestMiddleware_MalformedTokenIsRejectedBeforeHandler(t *testing.T) {
	called, _, err := invokeMiddleware(t, NewJWTService("test-secret"), "Bearer not-a-token")

	assert.False(t, called)
	status, code := responseCode(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", code)
}

func TestMiddleware_WrongSecretIsRejectedBeforeHandler(t *testing.T) {
	token, genErr := NewJWTService("other-secret").GenerateAccessToken(uuid.New())
	assert.NoError(t, genErr)

	called, _, err := invokeMiddleware(t, NewJWTService("test-secret"), "Bearer "+token)

	assert.False(t, called)
	status, code := responseCode(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", code)
}

func TestMiddleware_UnconfiguredSecretIsServerError(t *testing.T) {
	token, genErr := NewJWTService("test-secret").GenerateAccessToken(uuid.New())
	assert.NoError(t, genErr)

	called, _, err := invokeMiddleware(t, NewJWTService(""), "Bearer "+token)

	assert.False(t, called)
	status, code := responseCode(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "CONFIG_ERROR", code)
}

func TestMiddleware_ValidTokenInjectsSubject(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()
	token, genErr := svc.GenerateAccessToken(userID)
	assert.NoError(t, genErr)

	called, subject, err := invokeMiddleware(t, svc, "Bearer "+token)

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, userID, subject)
}
