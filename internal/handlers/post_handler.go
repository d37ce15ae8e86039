package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/olekh/social-media-api/internal/models"
	"github.com/olekh/social-media-api/internal/repositories"
	"github.com/olekh/social-media-api/internal/scheduler"
	"github.com/olekh/social-media-api/internal/storage"
	"go.uber.org/zap"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	profileRepository repositories.UserProfileRepository
	hashtagRepository repositories.HashTagRepository
	scheduler         scheduler.Scheduler
	mediaStore        storage.MediaStore
	log               *zap.Logger
	now               func() time.Time
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	profileRepo repositories.UserProfileRepository,
	hashtagRepo repositories.HashTagRepository,
	sched scheduler.Scheduler,
	mediaStore storage.MediaStore,
	log *zap.Logger,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		profileRepository: profileRepo,
		hashtagRepository: hashtagRepo,
		scheduler:         sched,
		mediaStore:        mediaStore,
		log:               log,
		now:               scheduler.Now,
	}
}

// RegisterPostRoutes registers post-related routes. Read routes allow
// anonymous access; write routes require authentication.
func (h *PostHandler) RegisterPostRoutes(read, write *echo.Group) {
	read.GET("/posts", h.ListPosts)
	read.GET("/posts/:id", h.GetPost)
	write.POST("/posts", h.CreatePost)
	write.PUT("/posts/:id", h.UpdatePost)
	write.DELETE("/posts/:id", h.DeletePost)
	write.POST("/posts/:id/upload-image", h.UploadImage)
}

// CreatePost creates a post for the requesting user's profile. A post
// carrying a future scheduled_time is created hidden and an activation is
// enqueued; schedule validation runs before anything is persisted.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)

	profile, err := h.profileRepository.GetProfileByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Create a profile before posting")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Unscheduled posts default to visible, scheduled ones to hidden;
	// an explicit is_visible always wins (and conflicts are rejected).
	visible := req.ScheduledTime == nil
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	if req.ScheduledTime != nil {
		if err := scheduler.Validate(*req.ScheduledTime, visible, h.now()); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	tags, err := h.resolveHashtags(c, req.Hashtags)
	if err != nil {
		return err
	}

	post := &models.Post{
		ProfileID:     profile.ID,
		CreatedByID:   userID,
		Title:         req.Title,
		Content:       req.Content,
		Hashtags:      tags,
		IsVisible:     visible,
		ScheduledTime: req.ScheduledTime,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.ScheduledTime != nil {
		if err := h.scheduler.Schedule(c.Request().Context(), post.ID, *req.ScheduledTime); err != nil {
			h.log.Error("failed to enqueue post activation",
				zap.Uint("post_id", post.ID), zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to schedule post activation")
		}
		h.log.Info("post activation scheduled",
			zap.Uint("post_id", post.ID), zap.Time("scheduled_time", *req.ScheduledTime))
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost returns the post detail. A hidden post exists only for its
// owner; everyone else gets a 404.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.postRepository.GetPostDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !detail.IsVisible && detail.CreatedByID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	return c.JSON(http.StatusOK, detail)
}

// UpdatePost updates a post's title, content or hashtags. Owner only.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.CreatedByID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own posts")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Hashtags != nil {
		tags, err := h.resolveHashtags(c, req.Hashtags)
		if err != nil {
			return err
		}
		if err := h.postRepository.ReplaceHashtags(c.Request().Context(), post, tags); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		post.Hashtags = tags
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and cancels any pending activation. Owner only.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.CreatedByID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own posts")
	}

	// Best-effort: the activator tolerates a missing post if the cancel
	// races the worker.
	if post.ScheduledTime != nil {
		if err := h.scheduler.Cancel(c.Request().Context(), post.ID); err != nil {
			h.log.Warn("failed to cancel post activation", zap.Uint("post_id", post.ID), zap.Error(err))
		}
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ListPosts returns a filtered, annotated, paginated post listing.
func (h *PostHandler) ListPosts(c echo.Context) error {
	filters, err := parsePostFilters(c)
	if err != nil {
		return err
	}

	page, pageSize := parsePagination(c)
	requester := getUserIDFromContext(c)

	results, total, err := h.postRepository.ListPosts(c.Request().Context(), filters, requester, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return paginated(c, total, results)
}

// UploadImage attaches an image to a post. Owner only.
func (h *PostHandler) UploadImage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.CreatedByID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only upload images to your own posts")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer src.Close()

	ref, err := h.mediaStore.Save("posts", post.Title, filepath.Ext(file.Filename), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	post.Image = ref
	if err := h.postRepository.UpdatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"id": post.ID, "image": post.Image})
}

// resolveHashtags loads the referenced hashtags and rejects unknown ids.
func (h *PostHandler) resolveHashtags(c echo.Context, ids []uint) ([]models.HashTag, error) {
	if len(ids) == 0 {
		return []models.HashTag{}, nil
	}

	tags, err := h.hashtagRepository.GetHashTagsByIDs(c.Request().Context(), ids)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	known := make(map[uint]bool, len(tags))
	for _, t := range tags {
		known[t.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Unknown hashtag id")
		}
	}
	return tags, nil
}

// parsePostFilters maps the recognized query parameters onto the typed
// filter set. Unknown parameters are ignored; nothing maps to arbitrary
// field lookups.
func parsePostFilters(c echo.Context) (repositories.PostFilters, error) {
	filters := repositories.PostFilters{
		Email:     c.QueryParam("email"),
		FirstName: c.QueryParam("first_name"),
		LastName:  c.QueryParam("last_name"),
		Username:  c.QueryParam("username"),
		Title:     c.QueryParam("title"),
		Liked:     isTruthy(c.QueryParam("liked")),
	}

	if raw := c.QueryParam("profile"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filters, echo.NewHTTPError(http.StatusBadRequest, "Invalid profile parameter")
		}
		filters.ProfileID = uint(id)
	}

	if raw := c.QueryParam("hashtags"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				return filters, echo.NewHTTPError(http.StatusBadRequest, "Invalid hashtags parameter")
			}
			filters.HashtagIDs = append(filters.HashtagIDs, uint(id))
		}
	}

	return filters, nil
}
