package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow your own profile")
	// ErrDuplicateFollow is returned when the (follower, following) pair already exists.
	ErrDuplicateFollow = errors.New("follow relationship already exists")
	// ErrDuplicateLike is returned when the user has already liked the post.
	ErrDuplicateLike = errors.New("post already liked by this user")
	// ErrDuplicateProfile is returned when the user already has a profile.
	ErrDuplicateProfile = errors.New("profile already exists for this user")
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// GORM v1.25+ wraps these as gorm.ErrDuplicatedKey when TranslateError is on.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isNotFound checks if the error is a "record not found" error.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
