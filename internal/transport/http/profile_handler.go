package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/MovieShelf_BackEnd/internal/service"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func RegisterProfiles(e *echo.Echo, profiles *service.ProfileService) {
	handler := &ProfileHandler{profiles: profiles}

	e.POST("/api/v1/profiles", handler.createProfile)
	e.GET("/api/v1/profiles/me", handler.currentProfile, RequireProfile(profiles))
}

func (h *ProfileHandler) createProfile(c echo.Context) error {
	profile, err := h.profiles.Create()
	if err != nil {
		return respondError(c, err, "could not create profile")
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) currentProfile(c echo.Context) error {
	profileID, ok := CurrentProfile(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("profile required"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"profile_id": profileID})
}
