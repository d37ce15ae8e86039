package handlers

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/olekh/social-media-api/internal/models"
	"github.com/olekh/social-media-api/internal/repositories"
	"github.com/olekh/social-media-api/validators"
)

// fakeStore is an in-memory implementation of every repository interface,
// mirroring the Postgres implementations' semantics closely enough to
// exercise the handlers: unique pairs, visibility clause, substring
// filters, distinct counts, newest-first ordering.
type fakeStore struct {
	users    map[uint]*models.User
	profiles map[uint]*models.UserProfile
	posts    map[uint]*models.Post
	tags     map[uint]*models.HashTag
	likes    map[uint]*models.Like
	comments map[uint]*models.Comment
	follows  map[uint]*models.UserProfileFollow
	nextID   uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[uint]*models.User{},
		profiles: map[uint]*models.UserProfile{},
		posts:    map[uint]*models.Post{},
		tags:     map[uint]*models.HashTag{},
		likes:    map[uint]*models.Like{},
		comments: map[uint]*models.Comment{},
		follows:  map[uint]*models.UserProfileFollow{},
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

// --- UserRepository ---

func (s *fakeStore) CreateUser(user *models.User) error {
	if user.ID == 0 {
		user.ID = s.id()
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeStore) GetUserByID(id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) DeleteUser(id uint) error {
	if _, ok := s.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// --- UserProfileRepository ---

func (s *fakeStore) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	for _, p := range s.profiles {
		if p.CreatedByID == profile.CreatedByID {
			return repositories.ErrDuplicateProfile
		}
	}
	profile.ID = s.id()
	s.profiles[profile.ID] = profile
	return nil
}

func (s *fakeStore) GetProfileByID(_ context.Context, id uint) (*models.UserProfile, error) {
	if p, ok := s.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) GetProfileByUserID(_ context.Context, userID uint) (*models.UserProfile, error) {
	for _, p := range s.profiles {
		if p.CreatedByID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) UpdateProfile(_ context.Context, profile *models.UserProfile) error {
	s.profiles[profile.ID] = profile
	return nil
}

func (s *fakeStore) DeleteProfile(_ context.Context, id uint) error {
	if _, ok := s.profiles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *fakeStore) ListProfiles(_ context.Context, filters repositories.UserProfileFilters, page, pageSize int) ([]models.UserProfileWithCounts, int64, error) {
	var matched []models.UserProfileWithCounts
	for _, p := range s.profiles {
		owner := s.users[p.CreatedByID]
		if owner == nil {
			continue
		}
		if !matchUser(owner, filters.Email, filters.FirstName, filters.LastName, filters.Username) {
			continue
		}
		if filters.UserID != 0 && p.CreatedByID != filters.UserID {
			continue
		}

		row := models.UserProfileWithCounts{UserProfile: *p}
		for _, f := range s.follows {
			if f.FollowingID == p.CreatedByID {
				row.FollowersCount++
			}
			if f.CreatedByID == p.CreatedByID {
				row.FollowingsCount++
			}
		}
		for _, post := range s.posts {
			if post.ProfileID == p.ID {
				row.PostsCount++
			}
		}
		matched = append(matched, row)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	return pageProfiles(matched, page, pageSize)
}

func (s *fakeStore) PostTitles(_ context.Context, profileID uint) ([]string, error) {
	var titles []string
	for _, p := range s.posts {
		if p.ProfileID == profileID {
			titles = append(titles, p.Title)
		}
	}
	return titles, nil
}

// --- PostRepository ---

func (s *fakeStore) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = s.id()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	s.posts[post.ID] = post
	return nil
}

func (s *fakeStore) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	if p, ok := s.posts[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) GetPostDetail(ctx context.Context, id uint) (*models.PostDetail, error) {
	post, err := s.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.PostDetail{Post: *post, LikedBy: []uint{}, CommentTexts: []string{}}
	for _, l := range s.likes {
		if l.PostID == id {
			detail.LikedBy = append(detail.LikedBy, l.CreatedByID)
		}
	}
	for _, c := range s.comments {
		if c.PostID == id {
			detail.CommentTexts = append(detail.CommentTexts, c.Content)
		}
	}
	return detail, nil
}

func (s *fakeStore) UpdatePost(_ context.Context, post *models.Post) error {
	s.posts[post.ID] = post
	return nil
}

func (s *fakeStore) ReplaceHashtags(_ context.Context, post *models.Post, hashtags []models.HashTag) error {
	stored, ok := s.posts[post.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Hashtags = hashtags
	return nil
}

func (s *fakeStore) DeletePost(_ context.Context, id uint) error {
	if _, ok := s.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.posts, id)
	for lid, l := range s.likes {
		if l.PostID == id {
			delete(s.likes, lid)
		}
	}
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *fakeStore) SetPostVisible(_ context.Context, id uint) error {
	post, ok := s.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	post.IsVisible = true
	return nil
}

func (s *fakeStore) ListPosts(_ context.Context, filters repositories.PostFilters, requestingUserID uint, page, pageSize int) ([]models.PostWithCounts, int64, error) {
	var matched []models.PostWithCounts
	for _, p := range s.posts {
		owner := s.users[p.CreatedByID]
		if owner == nil {
			continue
		}
		if !matchUser(owner, filters.Email, filters.FirstName, filters.LastName, filters.Username) {
			continue
		}
		if filters.Title != "" && !icontains(p.Title, filters.Title) {
			continue
		}
		if filters.ProfileID != 0 && p.ProfileID != filters.ProfileID {
			continue
		}
		if len(filters.HashtagIDs) > 0 && !hasAnyTag(p, filters.HashtagIDs) {
			continue
		}
		if filters.Liked && !s.hasLike(p.ID, requestingUserID) {
			continue
		}
		// Visibility rule, applied last and unconditionally.
		if !p.IsVisible && p.CreatedByID != requestingUserID {
			continue
		}

		row := models.PostWithCounts{Post: *p}
		for _, l := range s.likes {
			if l.PostID == p.ID {
				row.LikesCount++
			}
		}
		for _, c := range s.comments {
			if c.PostID == p.ID {
				row.CommentsCount++
			}
		}
		matched = append(matched, row)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	return pagePosts(matched, page, pageSize)
}

func (s *fakeStore) hasLike(postID, userID uint) bool {
	for _, l := range s.likes {
		if l.PostID == postID && l.CreatedByID == userID {
			return true
		}
	}
	return false
}

// --- HashTagRepository ---

func (s *fakeStore) CreateHashTag(_ context.Context, tag *models.HashTag) error {
	tag.ID = s.id()
	s.tags[tag.ID] = tag
	return nil
}

func (s *fakeStore) GetHashTagByID(_ context.Context, id uint) (*models.HashTag, error) {
	if t, ok := s.tags[id]; ok {
		return t, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) GetHashTagsByIDs(_ context.Context, ids []uint) ([]models.HashTag, error) {
	var tags []models.HashTag
	for _, id := range ids {
		if t, ok := s.tags[id]; ok {
			tags = append(tags, *t)
		}
	}
	return tags, nil
}

func (s *fakeStore) UpdateHashTag(_ context.Context, tag *models.HashTag) error {
	s.tags[tag.ID] = tag
	return nil
}

func (s *fakeStore) DeleteHashTag(_ context.Context, id uint) error {
	if _, ok := s.tags[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.tags, id)
	return nil
}

func (s *fakeStore) ListHashTags(_ context.Context) ([]models.HashTag, error) {
	var tags []models.HashTag
	for _, t := range s.tags {
		tags = append(tags, *t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags, nil
}

// --- LikeRepository ---

func (s *fakeStore) CreateLike(_ context.Context, like *models.Like) error {
	if s.hasLike(like.PostID, like.CreatedByID) {
		return repositories.ErrDuplicateLike
	}
	like.ID = s.id()
	s.likes[like.ID] = like
	return nil
}

func (s *fakeStore) GetLikeByID(_ context.Context, id uint) (*models.Like, error) {
	if l, ok := s.likes[id]; ok {
		return l, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) DeleteLike(_ context.Context, id uint) error {
	if _, ok := s.likes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.likes, id)
	return nil
}

func (s *fakeStore) ListLikes(_ context.Context) ([]models.Like, error) {
	var likes []models.Like
	for _, l := range s.likes {
		likes = append(likes, *l)
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].ID < likes[j].ID })
	return likes, nil
}

// --- CommentRepository ---

func (s *fakeStore) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = s.id()
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeStore) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	if c, ok := s.comments[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) UpdateComment(_ context.Context, comment *models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeStore) DeleteComment(_ context.Context, id uint) error {
	if _, ok := s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *fakeStore) ListComments(_ context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	for _, c := range s.comments {
		comments = append(comments, *c)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

// --- FollowRepository ---

func (s *fakeStore) CreateFollow(_ context.Context, follow *models.UserProfileFollow) error {
	if follow.CreatedByID == follow.FollowingID {
		return repositories.ErrSelfFollow
	}
	for _, f := range s.follows {
		if f.CreatedByID == follow.CreatedByID && f.FollowingID == follow.FollowingID {
			return repositories.ErrDuplicateFollow
		}
	}
	follow.ID = s.id()
	s.follows[follow.ID] = follow
	return nil
}

func (s *fakeStore) GetFollowByID(_ context.Context, id uint) (*models.UserProfileFollow, error) {
	if f, ok := s.follows[id]; ok {
		return f, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeStore) DeleteFollow(_ context.Context, id uint) error {
	if _, ok := s.follows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.follows, id)
	return nil
}

func (s *fakeStore) ListFollows(_ context.Context) ([]models.UserProfileFollow, error) {
	var follows []models.UserProfileFollow
	for _, f := range s.follows {
		follows = append(follows, *f)
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].ID < follows[j].ID })
	return follows, nil
}

func (s *fakeStore) FollowerIDs(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for _, f := range s.follows {
		if f.FollowingID == userID {
			ids = append(ids, f.CreatedByID)
		}
	}
	return ids, nil
}

func (s *fakeStore) FollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for _, f := range s.follows {
		if f.CreatedByID == userID {
			ids = append(ids, f.FollowingID)
		}
	}
	return ids, nil
}

// --- helpers ---

func matchUser(u *models.User, email, firstName, lastName, username string) bool {
	if email != "" && !icontains(u.Email, email) {
		return false
	}
	if firstName != "" && !icontains(u.FirstName, firstName) {
		return false
	}
	if lastName != "" && !icontains(u.LastName, lastName) {
		return false
	}
	if username != "" && !icontains(u.Username, username) {
		return false
	}
	return true
}

func icontains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func hasAnyTag(p *models.Post, ids []uint) bool {
	for _, tag := range p.Hashtags {
		for _, id := range ids {
			if tag.ID == id {
				return true
			}
		}
	}
	return false
}

func pagePosts(rows []models.PostWithCounts, page, pageSize int) ([]models.PostWithCounts, int64, error) {
	total := int64(len(rows))
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []models.PostWithCounts{}, total, nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}

func pageProfiles(rows []models.UserProfileWithCounts, page, pageSize int) ([]models.UserProfileWithCounts, int64, error) {
	total := int64(len(rows))
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []models.UserProfileWithCounts{}, total, nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}

// fakeScheduler records schedule/cancel calls.
type fakeScheduler struct {
	scheduled map[uint]time.Time
	cancelled []uint
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: map[uint]time.Time{}}
}

func (f *fakeScheduler) Schedule(_ context.Context, postID uint, at time.Time) error {
	f.scheduled[postID] = at
	return nil
}

func (f *fakeScheduler) Cancel(_ context.Context, postID uint) error {
	f.cancelled = append(f.cancelled, postID)
	delete(f.scheduled, postID)
	return nil
}

// newTestEcho builds an echo instance with the production validator wired.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func authenticate(c echo.Context, userID uint) {
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
}
