package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/olekh/social-media-api/internal/models"
	"github.com/olekh/social-media-api/internal/repositories"
	"github.com/olekh/social-media-api/internal/storage"
)

// UserProfileHandler handles HTTP requests related to user profiles
type UserProfileHandler struct {
	profileRepository repositories.UserProfileRepository
	followRepository  repositories.FollowRepository
	mediaStore        storage.MediaStore
}

// NewUserProfileHandler creates a new UserProfileHandler
func NewUserProfileHandler(
	profileRepo repositories.UserProfileRepository,
	followRepo repositories.FollowRepository,
	mediaStore storage.MediaStore,
) *UserProfileHandler {
	return &UserProfileHandler{
		profileRepository: profileRepo,
		followRepository:  followRepo,
		mediaStore:        mediaStore,
	}
}

// RegisterUserProfileRoutes registers profile-related routes
func (h *UserProfileHandler) RegisterUserProfileRoutes(read, write *echo.Group) {
	read.GET("/user_profiles", h.ListProfiles)
	read.GET("/user_profiles/:id", h.GetProfile)
	write.POST("/user_profiles", h.CreateProfile)
	write.PUT("/user_profiles/:id", h.UpdateProfile)
	write.DELETE("/user_profiles/:id", h.DeleteProfile)
	write.POST("/user_profiles/:id/upload-image", h.UploadImage)
}

// CreateProfile creates the requesting user's profile. One per user.
func (h *UserProfileHandler) CreateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateUserProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile := &models.UserProfile{
		CreatedByID: userID,
		Bio:         req.Bio,
	}

	if err := h.profileRepository.CreateProfile(c.Request().Context(), profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicateProfile) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, profile)
}

// GetProfile returns the profile detail with follower/following ids and
// post titles.
func (h *UserProfileHandler) GetProfile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.profileRepository.GetProfileByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followers, err := h.followRepository.FollowerIDs(c.Request().Context(), profile.CreatedByID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followings, err := h.followRepository.FollowingIDs(c.Request().Context(), profile.CreatedByID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	posts, err := h.profileRepository.PostTitles(c.Request().Context(), profile.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.UserProfileDetail{
		UserProfile: *profile,
		Followers:   followers,
		Followings:  followings,
		Posts:       posts,
	})
}

// UpdateProfile updates the profile bio. Owner only.
func (h *UserProfileHandler) UpdateProfile(c echo.Context) error {
	profile, err := h.ownedProfile(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Bio != "" {
		profile.Bio = req.Bio
	}

	if err := h.profileRepository.UpdateProfile(c.Request().Context(), profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}

// DeleteProfile deletes the profile. Owner only; posts cascade.
func (h *UserProfileHandler) DeleteProfile(c echo.Context) error {
	profile, err := h.ownedProfile(c)
	if err != nil {
		return err
	}

	if err := h.profileRepository.DeleteProfile(c.Request().Context(), profile.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ListProfiles returns a filtered, annotated, paginated profile listing.
// Profiles are always listable; there is no visibility restriction.
func (h *UserProfileHandler) ListProfiles(c echo.Context) error {
	filters := repositories.UserProfileFilters{
		Email:     c.QueryParam("email"),
		FirstName: c.QueryParam("first_name"),
		LastName:  c.QueryParam("last_name"),
		Username:  c.QueryParam("username"),
	}

	raw := c.QueryParam("user_id")
	if raw == "" {
		raw = c.QueryParam("created_by")
	}
	if raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id parameter")
		}
		filters.UserID = uint(id)
	}

	page, pageSize := parsePagination(c)

	results, total, err := h.profileRepository.ListProfiles(c.Request().Context(), filters, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return paginated(c, total, results)
}

// UploadImage attaches an image to a profile. Owner only.
func (h *UserProfileHandler) UploadImage(c echo.Context) error {
	profile, err := h.ownedProfile(c)
	if err != nil {
		return err
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

	ref, err := h.mediaStore.Save("user_profiles", strconv.FormatUint(uint64(profile.CreatedByID), 10), filepath.Ext(file.Filename), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	profile.Image = ref
	if err := h.profileRepository.UpdateProfile(c.Request().Context(), profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"id": profile.ID, "image": profile.Image})
}

// ownedProfile loads the profile in the path and verifies ownership.
func (h *UserProfileHandler) ownedProfile(c echo.Context) (*models.UserProfile, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}

	profile, err := h.profileRepository.GetProfileByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if profile.CreatedByID != getUserIDFromContext(c) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "You can only modify your own profile")
	}
	return profile, nil
}
