package repositories

import (
	"context"

	"github.com/olekh/social-media-api/internal/models"
	"gorm.io/gorm"
)

// PostFilters is the enumerated set of recognized post list filters.
// All are optional and combined with AND; HashtagIDs matches posts tagged
// with any of the given ids (union). The visibility rule is not a filter:
// it is applied unconditionally by ListPosts.
type PostFilters struct {
	Email      string
	FirstName  string
	LastName   string
	Username   string
	Title      string
	HashtagIDs []uint
	ProfileID  uint
	Liked      bool
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostDetail(ctx context.Context, id uint) (*models.PostDetail, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	ReplaceHashtags(ctx context.Context, post *models.Post, hashtags []models.HashTag) error
	DeletePost(ctx context.Context, id uint) error
	SetPostVisible(ctx context.Context, id uint) error
	ListPosts(ctx context.Context, filters PostFilters, requestingUserID uint, page, pageSize int) ([]models.PostWithCounts, int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost persists the post together with its hashtag associations.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Hashtags").First(&post, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostDetail loads a post with its liker ids and comment bodies.
func (r *PostgresPostRepository) GetPostDetail(ctx context.Context, id uint) (*models.PostDetail, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Hashtags").
		Preload("Likes").
		Preload("Comments").
		First(&post, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &models.PostDetail{
		Post:         post,
		LikedBy:      make([]uint, 0, len(post.Likes)),
		CommentTexts: make([]string, 0, len(post.Comments)),
	}
	for _, like := range post.Likes {
		detail.LikedBy = append(detail.LikedBy, like.CreatedByID)
	}
	for _, comment := range post.Comments {
		detail.CommentTexts = append(detail.CommentTexts, comment.Content)
	}
	return detail, nil
}

func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Hashtags").Save(post).Error
}

// ReplaceHashtags swaps the post's hashtag set for the given one.
func (r *PostgresPostRepository) ReplaceHashtags(ctx context.Context, post *models.Post, hashtags []models.HashTag) error {
	return r.db.WithContext(ctx).Model(post).Association("Hashtags").Replace(hashtags)
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select("Likes", "Comments").Delete(&models.Post{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPostVisible marks the post visible. Missing rows surface as
// ErrNotFound so the caller can treat deleted posts as a no-op.
func (r *PostgresPostRepository) SetPostVisible(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_visible", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPosts returns a page of posts annotated with distinct like and
// comment counts. The enumerated filters are AND'd together; the final
// clause restricts results to visible posts or the requesting user's own,
// regardless of other filters. requestingUserID 0 means anonymous.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filters PostFilters, requestingUserID uint, page, pageSize int) ([]models.PostWithCounts, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN users ON users.id = posts.created_by_id")

	q = applyUserFilters(q, filters.Email, filters.FirstName, filters.LastName, filters.Username)

	if filters.Title != "" {
		q = q.Where("posts.title ILIKE ?", "%"+filters.Title+"%")
	}
	if filters.ProfileID != 0 {
		q = q.Where("posts.profile_id = ?", filters.ProfileID)
	}
	if len(filters.HashtagIDs) > 0 {
		q = q.Where("posts.id IN (SELECT post_id FROM post_hashtags WHERE hash_tag_id IN ?)", filters.HashtagIDs)
	}
	if filters.Liked {
		q = q.Where("EXISTS (SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.created_by_id = ?)", requestingUserID)
	}

	// Visibility rule, applied last and unconditionally.
	q = q.Where("posts.is_visible = ? OR posts.created_by_id = ?", true, requestingUserID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PostWithCounts
	err := q.
		Select(`posts.*,
			(SELECT COUNT(DISTINCT l.id) FROM likes l WHERE l.post_id = posts.id) AS likes_count,
			(SELECT COUNT(DISTINCT c.id) FROM comments c WHERE c.post_id = posts.id) AS comments_count`).
		Order("posts.created_at DESC, posts.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.preloadHashtags(ctx, rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// preloadHashtags fills the Hashtags association for scanned rows, since
// Scan into the annotated struct bypasses GORM's Preload machinery.
func (r *PostgresPostRepository) preloadHashtags(ctx context.Context, rows []models.PostWithCounts) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(rows))
	for i := range rows {
		rows[i].Hashtags = []models.HashTag{}
		ids = append(ids, rows[i].ID)
	}

	type tagged struct {
		models.HashTag
		PostID uint `gorm:"column:post_id"`
	}
	var tags []tagged
	err := r.db.WithContext(ctx).Model(&models.HashTag{}).
		Select("hash_tags.*, post_hashtags.post_id").
		Joins("JOIN post_hashtags ON post_hashtags.hash_tag_id = hash_tags.id").
		Where("post_hashtags.post_id IN ?", ids).
		Scan(&tags).Error
	if err != nil {
		return err
	}

	byPost := make(map[uint][]models.HashTag, len(rows))
	for _, t := range tags {
		byPost[t.PostID] = append(byPost[t.PostID], t.HashTag)
	}
	for i := range rows {
		if hts, ok := byPost[rows[i].ID]; ok {
			rows[i].Hashtags = hts
		}
	}
	return nil
}
