package models

import "time"

// UserProfileFollow records that created_by follows following. The pair is
// unique and a user cannot follow themselves (checked before insert).
type UserProfileFollow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedByID uint      `json:"created_by" gorm:"index;not null;uniqueIndex:idx_follower_following"`
	CreatedBy   User      `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FollowingID uint      `json:"following" gorm:"index;not null;uniqueIndex:idx_follower_following"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateFollowRequest struct {
	FollowingID uint `json:"following" validate:"required,min=1"`
}
