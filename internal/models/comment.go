package models

import "time"

// Comment is a reply to a post, owned by the commenting user.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"post" gorm:"index;not null"`
	CreatedByID uint      `json:"created_by" gorm:"index;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	PostID  uint   `json:"post" validate:"required,min=1"`
	Content string `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}
