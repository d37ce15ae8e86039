package repositories

import (
	"context"

	"github.com/olekh/social-media-api/internal/models"
	"gorm.io/gorm"
)

// HashTagRepository defines the interface for hashtag data operations
type HashTagRepository interface {
	CreateHashTag(ctx context.Context, tag *models.HashTag) error
	GetHashTagByID(ctx context.Context, id uint) (*models.HashTag, error)
	GetHashTagsByIDs(ctx context.Context, ids []uint) ([]models.HashTag, error)
	UpdateHashTag(ctx context.Context, tag *models.HashTag) error
	DeleteHashTag(ctx context.Context, id uint) error
	ListHashTags(ctx context.Context) ([]models.HashTag, error)
}

// PostgresHashTagRepository implements HashTagRepository for PostgreSQL
type PostgresHashTagRepository struct {
	db *gorm.DB
}

// NewPostgresHashTagRepository creates a new PostgresHashTagRepository
func NewPostgresHashTagRepository(db *gorm.DB) *PostgresHashTagRepository {
	return &PostgresHashTagRepository{db: db}
}

func (r *PostgresHashTagRepository) CreateHashTag(ctx context.Context, tag *models.HashTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *PostgresHashTagRepository) GetHashTagByID(ctx context.Context, id uint) (*models.HashTag, error) {
	var tag models.HashTag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *PostgresHashTagRepository) GetHashTagsByIDs(ctx context.Context, ids []uint) ([]models.HashTag, error) {
	var tags []models.HashTag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *PostgresHashTagRepository) UpdateHashTag(ctx context.Context, tag *models.HashTag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *PostgresHashTagRepository) DeleteHashTag(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.HashTag{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresHashTagRepository) ListHashTags(ctx context.Context) ([]models.HashTag, error) {
	var tags []models.HashTag
	err := r.db.WithContext(ctx).Order("id").Find(&tags).Error
	return tags, err
}
