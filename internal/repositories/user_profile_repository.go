package repositories

import (
	"context"

	"github.com/olekh/social-media-api/internal/models"
	"gorm.io/gorm"
)

// UserProfileFilters is the enumerated set of recognized profile list
// filters. Substring fields match case-insensitively against the owning
// user's columns; UserID is an exact match.
type UserProfileFilters struct {
	Email     string
	FirstName string
	LastName  string
	Username  string
	UserID    uint
}

// UserProfileRepository defines the interface for profile data operations
type UserProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfileByID(ctx context.Context, id uint) (*models.UserProfile, error)
	GetProfileByUserID(ctx context.Context, userID uint) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error
	DeleteProfile(ctx context.Context, id uint) error
	ListProfiles(ctx context.Context, filters UserProfileFilters, page, pageSize int) ([]models.UserProfileWithCounts, int64, error)
	PostTitles(ctx context.Context, profileID uint) ([]string, error)
}

// PostgresUserProfileRepository implements UserProfileRepository for PostgreSQL
type PostgresUserProfileRepository struct {
	db *gorm.DB
}

// NewPostgresUserProfileRepository creates a new PostgresUserProfileRepository
func NewPostgresUserProfileRepository(db *gorm.DB) *PostgresUserProfileRepository {
	return &PostgresUserProfileRepository{db: db}
}

func (r *PostgresUserProfileRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateProfile
		}
		return err
	}
	return nil
}

func (r *PostgresUserProfileRepository) GetProfileByID(ctx context.Context, id uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresUserProfileRepository) GetProfileByUserID(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Where("created_by_id = ?", userID).First(&profile).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresUserProfileRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *PostgresUserProfileRepository) DeleteProfile(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.UserProfile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProfiles returns a page of profiles annotated with follower,
// following and post counts, applying the enumerated filters.
func (r *PostgresUserProfileRepository) ListProfiles(ctx context.Context, filters UserProfileFilters, page, pageSize int) ([]models.UserProfileWithCounts, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Joins("JOIN users ON users.id = user_profiles.created_by_id")

	q = applyUserFilters(q, filters.Email, filters.FirstName, filters.LastName, filters.Username)

	if filters.UserID != 0 {
		q = q.Where("user_profiles.created_by_id = ?", filters.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserProfileWithCounts
	err := q.
		Select(`user_profiles.*,
			(SELECT COUNT(DISTINCT f.id) FROM user_profile_follows f WHERE f.following_id = user_profiles.created_by_id) AS followers_count,
			(SELECT COUNT(DISTINCT f.id) FROM user_profile_follows f WHERE f.created_by_id = user_profiles.created_by_id) AS followings_count,
			(SELECT COUNT(DISTINCT p.id) FROM posts p WHERE p.profile_id = user_profiles.id) AS posts_count`).
		Order("user_profiles.created_at DESC, user_profiles.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// PostTitles returns the titles of a profile's posts, newest first.
func (r *PostgresUserProfileRepository) PostTitles(ctx context.Context, profileID uint) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("profile_id = ?", profileID).
		Order("created_at DESC, id DESC").
		Pluck("title", &titles).Error
	return titles, err
}

// applyUserFilters adds the case-insensitive substring clauses shared by
// post and profile listing. Only the four enumerated user columns are
// reachable; parameter names never map to arbitrary fields.
func applyUserFilters(q *gorm.DB, email, firstName, lastName, username string) *gorm.DB {
	if email != "" {
		q = q.Where("users.email ILIKE ?", "%"+email+"%")
	}
	if firstName != "" {
		q = q.Where("users.first_name ILIKE ?", "%"+firstName+"%")
	}
	if lastName != "" {
		q = q.Where("users.last_name ILIKE ?", "%"+lastName+"%")
	}
	if username != "" {
		q = q.Where("users.username ILIKE ?", "%"+username+"%")
	}
	return q
}
