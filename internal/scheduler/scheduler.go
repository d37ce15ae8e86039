// Package scheduler implements deferred post publication: a post created
// with a future scheduled_time stays hidden until a one-shot activation
// flips it visible. Validation runs before the post is persisted; the
// delayed queue is a Redis sorted set drained by a poll worker.
package scheduler

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPastScheduledTime is returned when the scheduled time is not
	// strictly in the future.
	ErrPastScheduledTime = errors.New("incorrect scheduled time")
	// ErrVisibilityConflict is returned when a schedule is requested for
	// a post that would already be visible.
	ErrVisibilityConflict = errors.New("scheduled time is not applicable if post is visible")
)

// referenceZoneName is the single fixed zone all schedule comparisons use.
// Callers must not depend on the server's local timezone.
const referenceZoneName = "Europe/Kyiv"

var referenceZone = mustLoadZone()

func mustLoadZone() *time.Location {
	loc, err := time.LoadLocation(referenceZoneName)
	if err != nil {
		panic("scheduler: load reference zone: " + err.Error())
	}
	return loc
}

// Now returns the current time in the fixed reference zone.
func Now() time.Time {
	return time.Now().In(referenceZone)
}

// Validate checks a requested schedule against the current time. visible
// is the visibility the post would be created with; a visible post cannot
// carry a schedule.
func Validate(scheduledTime time.Time, visible bool, now time.Time) error {
	if !scheduledTime.In(referenceZone).After(now.In(referenceZone)) {
		return ErrPastScheduledTime
	}
	if visible {
		return ErrVisibilityConflict
	}
	return nil
}

// Scheduler registers one-shot deferred activations keyed by post id.
// Delivery is at-least-once; the activation handler is idempotent, so
// duplicate firings are absorbed.
type Scheduler interface {
	Schedule(ctx context.Context, postID uint, at time.Time) error
	Cancel(ctx context.Context, postID uint) error
}
