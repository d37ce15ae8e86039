package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/olekh/social-media-api/internal/models"
	"github.com/olekh/social-media-api/internal/repositories"
)

// HashTagHandler handles HTTP requests related to hashtags
type HashTagHandler struct {
	hashtagRepository repositories.HashTagRepository
}

// NewHashTagHandler creates a new HashTagHandler
func NewHashTagHandler(hashtagRepo repositories.HashTagRepository) *HashTagHandler {
	return &HashTagHandler{hashtagRepository: hashtagRepo}
}

// RegisterHashTagRoutes registers hashtag-related routes
func (h *HashTagHandler) RegisterHashTagRoutes(read, write *echo.Group) {
	read.GET("/hash_tags", h.ListHashTags)
	read.GET("/hash_tags/:id", h.GetHashTag)
	write.POST("/hash_tags", h.CreateHashTag)
	write.PUT("/hash_tags/:id", h.UpdateHashTag)
	write.DELETE("/hash_tags/:id", h.DeleteHashTag)
}

func (h *HashTagHandler) CreateHashTag(c echo.Context) error {
	var req models.HashTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag := &models.HashTag{Name: req.Name}
	if err := h.hashtagRepository.CreateHashTag(c.Request().Context(), tag); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, tag)
}

func (h *HashTagHandler) GetHashTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tag, err := h.hashtagRepository.GetHashTagByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Hashtag not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tag)
}

func (h *HashTagHandler) UpdateHashTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tag, err := h.hashtagRepository.GetHashTagByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Hashtag not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.HashTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag.Name = req.Name
	if err := h.hashtagRepository.UpdateHashTag(c.Request().Context(), tag); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tag)
}

func (h *HashTagHandler) DeleteHashTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.hashtagRepository.DeleteHashTag(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Hashtag not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *HashTagHandler) ListHashTags(c echo.Context) error {
	tags, err := h.hashtagRepository.ListHashTags(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tags)
}
