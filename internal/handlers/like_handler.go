package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/olekh/social-media-api/internal/models"
	"github.com/olekh/social-media-api/internal/repositories"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(read, write *echo.Group) {
	read.GET("/likes", h.ListLikes)
	read.GET("/likes/:id", h.GetLike)
	write.POST("/likes", h.CreateLike)
	write.DELETE("/likes/:id", h.DeleteLike)
}

// CreateLike likes a post on behalf of the requesting user. Duplicate
// likes are rejected by the storage-level unique constraint.
func (h *LikeHandler) CreateLike(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	like := &models.Like{
		PostID:      req.PostID,
		CreatedByID: userID,
	}

	if err := h.likeRepository.CreateLike(c.Request().Context(), like); err != nil {
		if errors.Is(err, repositories.ErrDuplicateLike) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, like)
}

func (h *LikeHandler) GetLike(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	like, err := h.likeRepository.GetLikeByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, like)
}

// DeleteLike removes a like. Owner only.
func (h *LikeHandler) DeleteLike(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	like, err := h.likeRepository.GetLikeByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if like.CreatedByID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only remove your own likes")
	}

	if err := h.likeRepository.DeleteLike(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *LikeHandler) ListLikes(c echo.Context) error {
	likes, err := h.likeRepository.ListLikes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, likes)
}
