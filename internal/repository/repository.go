package repository

import (
	"context"
	"database/sql"
	"time"

	"social_threads/internal/models"
	"social_threads/internal/repository/db"
)

// Users is the persistence boundary for user records and the follow graph.
// Get* methods return (nil, nil) when no record exists.
// AddFollow/RemoveFollow are idempotent; the toggle lives in the service layer.
type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, u models.User) error
	AddFollow(ctx context.Context, followerID, followeeID string, at time.Time) error
	RemoveFollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

// Posts is the persistence boundary for posts, likes, and replies.
// AddLike/RemoveLike are idempotent; AppendReply is append-only.
type Posts interface {
	Create(ctx context.Context, p models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	HasLike(ctx context.Context, postID, userID string) (bool, error)
	AppendReply(ctx context.Context, postID string, r models.Reply, at time.Time) error
	Feed(ctx context.Context, userID string) ([]models.Post, error)
}

type Repository struct {
	Users Users
	Posts Posts
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Users: NewUserSQLite(conn),
		Posts: NewPostSQLite(conn),
	}
}

// InitDB opens the SQLite file and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
