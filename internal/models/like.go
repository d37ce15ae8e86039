package models

import "time"

// Like records that a user liked a post. A user may like a post at most
// once, enforced by the composite unique index.
type Like struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"post" gorm:"index;not null;uniqueIndex:idx_post_liker"`
	CreatedByID uint      `json:"created_by" gorm:"index;not null;uniqueIndex:idx_post_liker"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateLikeRequest defines the request body for liking a post
type CreateLikeRequest struct {
	PostID uint `json:"post" validate:"required,min=1"`
}
