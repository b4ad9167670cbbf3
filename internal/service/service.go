package service

import (
	"context"
	"time"

	"social_threads/internal/models"
	"social_threads/internal/repository"
)

// Authorization issues and checks session tokens.
type Authorization interface {
	IssueToken(userID string) (string, error)
	// Authenticate parses the token and verifies the identity still exists.
	Authenticate(ctx context.Context, token string) (string, error)
	TokenTTL() time.Duration
}

// Users exposes account and follow-graph operations. Callers are identified
// by an explicit callerID argument resolved by the auth middleware.
type Users interface {
	SignUp(ctx context.Context, p SignUpParams) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	FollowUnfollow(ctx context.Context, callerID, targetID string) (following bool, err error)
	UpdateProfile(ctx context.Context, callerID, targetID string, p UpdateProfileParams) (*models.User, error)
	GetProfile(ctx context.Context, username string) (*models.User, error)
}

// Posts exposes post CRUD, like/reply, and feed aggregation.
type Posts interface {
	Create(ctx context.Context, callerID string, p CreatePostParams) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id, callerID string) error
	LikeUnlike(ctx context.Context, id, callerID string) (liked bool, err error)
	Reply(ctx context.Context, id, callerID, text string) (*models.Post, error)
	Feed(ctx context.Context, callerID string) ([]models.Post, error)
}

// SignUpParams is the input for account creation.
type SignUpParams struct {
	Name     string
	Username string
	Email    string
	Password string
}

// UpdateProfileParams carries a partial update: empty fields keep the
// current value.
type UpdateProfileParams struct {
	Name       string
	Username   string
	Email      string
	Password   string
	ProfilePic string
	Bio        string
}

// CreatePostParams is the input for post creation.
type CreatePostParams struct {
	PostedBy string
	Text     string
	Img      string
}

// Service aggregates all sub-services behind embedded interfaces.
type Service struct {
	Authorization
	Users
	Posts
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, auth),
		Users:         NewUserService(repos.Users),
		Posts:         NewPostService(repos.Posts, repos.Users),
	}
}
