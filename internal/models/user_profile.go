package models

import "time"

// UserProfile is the public profile owned by a user. Exactly one profile
// may exist per user, enforced by the unique index on created_by_id.
type UserProfile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedByID uint      `json:"created_by" gorm:"uniqueIndex"`
	CreatedBy   User      `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Bio         string    `json:"bio" gorm:"type:text"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserProfileWithCounts is a profile row annotated with relation counts
// computed by the list query.
type UserProfileWithCounts struct {
	UserProfile
	FollowersCount  int64 `json:"followers_count" gorm:"column:followers_count"`
	FollowingsCount int64 `json:"followings_count" gorm:"column:followings_count"`
	PostsCount      int64 `json:"posts_count" gorm:"column:posts_count"`
}

// UserProfileDetail is the retrieve-time shape with follower/following user ids.
type UserProfileDetail struct {
	UserProfile
	Followers  []uint   `json:"followers"`
	Followings []uint   `json:"followings"`
	Posts      []string `json:"posts"`
}

type CreateUserProfileRequest struct {
	Bio string `json:"bio" validate:"required"`
}

type UpdateUserProfileRequest struct {
	Bio string `json:"bio,omitempty" validate:"omitempty"`
}
