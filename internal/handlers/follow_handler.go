package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/olekh/social-media-api/internal/models"
	"github.com/olekh/social-media-api/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(read, write *echo.Group) {
	read.GET("/user_profile_follows", h.ListFollows)
	read.GET("/user_profile_follows/:id", h.GetFollow)
	write.POST("/user_profile_follows", h.CreateFollow)
	write.DELETE("/user_profile_follows/:id", h.DeleteFollow)
}

// CreateFollow follows a user on behalf of the requester. Self-follows
// and duplicate pairs are rejected with typed errors.
func (h *FollowHandler) CreateFollow(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify target user exists
	if _, err := h.userRepository.GetUserByID(req.FollowingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	follow := &models.UserProfileFollow{
		CreatedByID: userID,
		FollowingID: req.FollowingID,
	}

	if err := h.followRepository.CreateFollow(c.Request().Context(), follow); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSelfFollow):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrDuplicateFollow):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, follow)
}

func (h *FollowHandler) GetFollow(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	follow, err := h.followRepository.GetFollowByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Follow not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, follow)
}

// DeleteFollow removes a follow relationship. Owner only.
func (h *FollowHandler) DeleteFollow(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	follow, err := h.followRepository.GetFollowByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Follow not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if follow.CreatedByID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only remove your own follows")
	}

	if err := h.followRepository.DeleteFollow(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *FollowHandler) ListFollows(c echo.Context) error {
	follows, err := h.followRepository.ListFollows(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, follows)
}
