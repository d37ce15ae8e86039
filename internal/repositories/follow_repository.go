package repositories

import (
	"context"

	"github.com/olekh/social-media-api/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.UserProfileFollow) error
	GetFollowByID(ctx context.Context, id uint) (*models.UserProfileFollow, error)
	DeleteFollow(ctx context.Context, id uint) error
	ListFollows(ctx context.Context) ([]models.UserProfileFollow, error)
	FollowerIDs(ctx context.Context, userID uint) ([]uint, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the relationship. Self-follows are rejected before
// touching storage; duplicate pairs surface the unique violation as a
// typed error.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.UserProfileFollow) error {
	if follow.CreatedByID == follow.FollowingID {
		return ErrSelfFollow
	}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateFollow
		}
		return err
	}
	return nil
}

func (r *PostgresFollowRepository) GetFollowByID(ctx context.Context, id uint) (*models.UserProfileFollow, error) {
	var follow models.UserProfileFollow
	if err := r.db.WithContext(ctx).First(&follow, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &follow, nil
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.UserProfileFollow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresFollowRepository) ListFollows(ctx context.Context) ([]models.UserProfileFollow, error) {
	var follows []models.UserProfileFollow
	err := r.db.WithContext(ctx).Order("id").Find(&follows).Error
	return follows, err
}

// FollowerIDs returns ids of users following the given user.
func (r *PostgresFollowRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.UserProfileFollow{}).
		Where("following_id = ?", userID).
		Pluck("created_by_id", &ids).Error
	return ids, err
}

// FollowingIDs returns ids of users the given user follows.
func (r *PostgresFollowRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.UserProfileFollow{}).
		Where("created_by_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}
