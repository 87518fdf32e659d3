package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/MovieShelf_BackEnd/internal/service"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

const (
	contextProfileKey = "profile_id"
	contextTokenKey   = "profile_token"
)

func RequireProfile(profiles *service.ProfileService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header"))
			}
			token := strings.TrimSpace(parts[1])
			profileID, err := profiles.Authenticate(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
			}
			c.Set(contextProfileKey, profileID)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

func CurrentProfile(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextProfileKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
