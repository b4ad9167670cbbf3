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

// UserService implements account and follow-graph operations.
type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

var _ Users = (*UserService)(nil)

// SignUp validates the input, rejects duplicate email/username, and stores
// the user with a hashed password. The plaintext is never persisted.
func (s *UserService) SignUp(ctx context.Context, p SignUpParams) (*models.User, error) {
	errs := validation.Check(validation.SignupInput{
		Name:     p.Name,
		Username: p.Username,
		Email:    p.Email,
		Password: p.Password,
	})
	if len(errs) > 0 {
		return nil, apperror.Validation(validation.Summary(errs), validation.FieldNames(errs)...)
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, p.Email, p.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("user already exists")
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           uuid.NewString(),
		Name:         p.Name,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		Followers:    []string{},
		Following:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperror.Internal(err)
	}
	return &u, nil
}

// Login checks the credentials. Unknown email and wrong password produce the
// same error so callers cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.InvalidCredentials()
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, apperror.InvalidCredentials()
	}
	return u, nil
}

// FollowUnfollow toggles the caller's follow relationship with targetID and
// reports the resulting state. Repeated calls flip the state back and forth.
func (s *UserService) FollowUnfollow(ctx context.Context, callerID, targetID string) (bool, error) {
	if callerID == targetID {
		return false, apperror.Validation("you cannot follow/unfollow yourself")
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if target == nil || caller == nil {
		return false, apperror.NotFound("user")
	}

	following, err := s.users.IsFollowing(ctx, callerID, targetID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if following {
		if err := s.users.RemoveFollow(ctx, callerID, targetID); err != nil {
			return false, apperror.Internal(err)
		}
		return false, nil
	}
	if err := s.users.AddFollow(ctx, callerID, targetID, time.Now().UTC()); err != nil {
		return false, apperror.Internal(err)
	}
	return true, nil
}

// UpdateProfile applies a partial update to the caller's own profile. Empty
// fields keep the stored value; a provided password is re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID string, p UpdateProfileParams) (*models.User, error) {
	if callerID != targetID {
		return nil, apperror.Forbidden("you cannot update another user's profile")
	}

	errs := validation.Check(validation.UpdateProfileInput{
		Name:       p.Name,
		Username:   p.Username,
		Email:      p.Email,
		Password:   p.Password,
		ProfilePic: p.ProfilePic,
		Bio:        p.Bio,
	})
	if len(errs) > 0 {
		return nil, apperror.Validation(validation.Summary(errs), validation.FieldNames(errs)...)
	}

	u, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.NotFound("user")
	}

	if p.Password != "" {
		hash, err := hashPassword(p.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		u.PasswordHash = hash
	}
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Username != "" {
		u.Username = p.Username
	}
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.ProfilePic != "" {
		u.ProfilePic = p.ProfilePic
	}
	if p.Bio != "" {
		u.Bio = p.Bio
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, *u); err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// GetProfile fetches a public profile by username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.NotFound("user")
	}
	return u, nil
}
