package models

import "time"

// Post is a publication owned by a profile. A post created with a future
// scheduled_time starts hidden (is_visible=false) and is flipped to visible
// exactly once by the scheduler when the time arrives.
type Post struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ProfileID     uint        `json:"profile" gorm:"index;not null"`
	Profile       UserProfile `json:"-" gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedByID   uint        `json:"created_by" gorm:"index;not null"`
	Title         string      `json:"title" gorm:"size:255"`
	Content       string      `json:"content" gorm:"type:text;not null"`
	Image         string      `json:"image,omitempty"`
	Hashtags      []HashTag   `json:"hashtags" gorm:"many2many:post_hashtags;"`
	IsVisible     bool        `json:"is_visible" gorm:"default:true"`
	ScheduledTime *time.Time  `json:"scheduled_time,omitempty"`
	Likes         []Like      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Comments      []Comment   `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// PostWithCounts is a post row annotated with distinct like/comment counts
// computed by the list query.
type PostWithCounts struct {
	Post
	LikesCount    int64 `json:"likes_count" gorm:"column:likes_count"`
	CommentsCount int64 `json:"comments_count" gorm:"column:comments_count"`
}

// PostDetail is the retrieve-time shape: liker user ids and comment bodies.
type PostDetail struct {
	Post
	LikedBy      []uint   `json:"likes"`
	CommentTexts []string `json:"comments"`
}

// CreatePostRequest defines the request body for creating a new post.
// IsVisible is a pointer so an omitted value can be told apart from an
// explicit false: an unscheduled post defaults to visible, a scheduled
// one to hidden.
type CreatePostRequest struct {
	Title         string     `json:"title" validate:"omitempty,max=255"`
	Content       string     `json:"content" validate:"required"`
	Hashtags      []uint     `json:"hashtags" validate:"omitempty,dive,min=1"`
	IsVisible     *bool      `json:"is_visible"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title    string `json:"title,omitempty" validate:"omitempty,max=255"`
	Content  string `json:"content,omitempty" validate:"omitempty"`
	Hashtags []uint `json:"hashtags,omitempty" validate:"omitempty,dive,min=1"`
}
