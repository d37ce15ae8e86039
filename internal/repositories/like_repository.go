package repositories

import (
	"context"

	"github.com/olekh/social-media-api/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	GetLikeByID(ctx context.Context, id uint) (*models.Like, error)
	DeleteLike(ctx context.Context, id uint) error
	ListLikes(ctx context.Context) ([]models.Like, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the like, relying on the (post, user) unique index
// rather than application-level mutual exclusion.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLike
		}
		return err
	}
	return nil
}

func (r *PostgresLikeRepository) GetLikeByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &like, nil
}

func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Like{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresLikeRepository) ListLikes(ctx context.Context) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).Order("id").Find(&likes).Error
	return likes, err
}
