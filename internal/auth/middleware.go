package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "newsroom/internal/errors"
)

// ContextKey is the echo context key under which the verified claims live.
const ContextKey = "user"

// Middleware returns an echo middleware that rejects requests without a valid
// bearer token. The verified claims are attached to the request context; no
// store access happens here.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.ValidateToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrSecretNotConfigured) {
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: apperrors.ErrSecretNotConfigured.Error(),
					Code:  "CONFIG_ERROR",
				})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "invalid or missing token",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// SubjectID returns the authenticated caller's user id from the request
// context. It fails only if the middleware did not run.
func SubjectID(c echo.Context) (uuid.UUID, error) {
	claims, ok := c.Get(ContextKey).(*Claims)
	if !ok {
		return uuid.Nil, errors.New("no authenticated subject in context")
	}
	return uuid.Parse(claims.UserID)
}
