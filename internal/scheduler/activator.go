package scheduler

import (
	"context"
	"errors"

	"github.com/olekh/social-media-api/internal/repositories"
	"go.uber.org/zap"
)

// Activator flips a post visible when its schedule fires. It runs outside
// any request context and receives only the post id.
type Activator struct {
	posts repositories.PostRepository
	log   *zap.Logger
}

// NewActivator creates a new Activator.
func NewActivator(posts repositories.PostRepository, log *zap.Logger) *Activator {
	return &Activator{posts: posts, log: log}
}

// Activate sets is_visible on the post. It is idempotent: a post that is
// already visible, or that was deleted before the schedule fired, is a
// logged no-op, never an error to the caller.
func (a *Activator) Activate(ctx context.Context, postID uint) error {
	post, err := a.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			a.log.Warn("scheduled post no longer exists, skipping activation", zap.Uint("post_id", postID))
			return nil
		}
		return err
	}

	if post.IsVisible {
		a.log.Info("post already visible, activation is a no-op", zap.Uint("post_id", postID))
		return nil
	}

	if err := a.posts.SetPostVisible(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Deleted between the load and the update.
			a.log.Warn("scheduled post deleted during activation", zap.Uint("post_id", postID))
			return nil
		}
		return err
	}

	a.log.Info("post set to visible successfully", zap.Uint("post_id", postID))
	return nil
}
