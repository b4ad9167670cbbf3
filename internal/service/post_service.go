package service

import (
	"context"
	"time"

	"social_threads/internal/apperror"
	"social_threads/internal/models"
	"social_threads/internal/repository"
	"social_threads/internal/validation"

	"github.com/google/uuid"
)

// PostService implements post CRUD, like/reply, and feed aggregation.
type PostService struct {
	posts repository.Posts
	users repository.Users
}

func NewPostService(posts repository.Posts, users repository.Users) *PostService {
	return &PostService{posts: posts, users: users}
}

var _ Posts = (*PostService)(nil)

// Create persists a new post. A user may only post as themselves.
func (s *PostService) Create(ctx context.Context, callerID string, p CreatePostParams) (*models.Post, error) {
	errs := validation.Check(validation.CreatePostInput{
		PostedBy: p.PostedBy,
		Text:     p.Text,
		Img:      p.Img,
	})
	if len(errs) > 0 {
		return nil, apperror.Validation(validation.Summary(errs), validation.FieldNames(errs)...)
	}

	owner, err := s.users.GetByID(ctx, p.PostedBy)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if owner == nil {
		return nil, apperror.NotFound("user")
	}
	if p.PostedBy != callerID {
		return nil, apperror.Forbidden("you cannot create a post for another user")
	}

	post := models.Post{
		ID:        uuid.NewString(),
		PostedBy:  p.PostedBy,
		Text:      p.Text,
		Img:       p.Img,
		Likes:     []string{},
		Replies:   []models.Reply{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperror.Internal(err)
	}
	return &post, nil
}

// Get fetches a post by id.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if post == nil {
		return nil, apperror.NotFound("post")
	}
	return post, nil
}

// Delete permanently removes a post. Only its owner may delete it.
func (s *PostService) Delete(ctx context.Context, id, callerID string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if post == nil {
		return apperror.NotFound("post")
	}
	if post.PostedBy != callerID {
		return apperror.Forbidden("you are not allowed to delete this post")
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// LikeUnlike toggles the caller's like on a post and reports the resulting
// state. Repeated calls flip the state back and forth.
func (s *PostService) LikeUnlike(ctx context.Context, id, callerID string) (bool, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if post == nil {
		return false, apperror.NotFound("post")
	}

	liked, err := s.posts.HasLike(ctx, id, callerID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if liked {
		if err := s.posts.RemoveLike(ctx, id, callerID); err != nil {
			return false, apperror.Internal(err)
		}
		return false, nil
	}
	if err := s.posts.AddLike(ctx, id, callerID); err != nil {
		return false, apperror.Internal(err)
	}
	return true, nil
}

// Reply appends a reply snapshot to the post, capturing the caller's current
// username and profile picture. Later profile edits don't touch stored replies.
func (s *PostService) Reply(ctx context.Context, id, callerID, text string) (*models.Post, error) {
	errs := validation.Check(validation.ReplyInput{Text: text})
	if len(errs) > 0 {
		return nil, apperror.Validation(validation.Summary(errs), validation.FieldNames(errs)...)
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if post == nil {
		return nil, apperror.NotFound("post")
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if caller == nil {
		return nil, apperror.NotFound("user")
	}

	reply := models.Reply{
		UserID:     callerID,
		Text:       text,
		Username:   caller.Username,
		ProfilePic: caller.ProfilePic,
	}
	if err := s.posts.AppendReply(ctx, id, reply, time.Now().UTC()); err != nil {
		return nil, apperror.Internal(err)
	}

	updated, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if updated == nil {
		return nil, apperror.NotFound("post")
	}
	return updated, nil
}

// Feed returns posts authored by users the caller follows, newest first.
// An empty following set yields an empty feed.
func (s *PostService) Feed(ctx context.Context, callerID string) ([]models.Post, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if caller == nil {
		return nil, apperror.NotFound("user")
	}

	feed, err := s.posts.Feed(ctx, callerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return feed, nil
}
