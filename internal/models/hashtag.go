package models

// HashTag is a label attached to posts, many-to-many via post_hashtags.
type HashTag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

type HashTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
