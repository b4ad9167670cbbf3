package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"social_threads/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL = `
		INSERT INTO users (id, name, username, email, password_hash, profile_pic, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectUserColumns = `id, name, username, email, password_hash, profile_pic, bio, created_at, updated_at`

	selectUserByIDSQL       = `SELECT ` + selectUserColumns + ` FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT ` + selectUserColumns + ` FROM users WHERE username = ?`
	selectUserByEmailSQL    = `SELECT ` + selectUserColumns + ` FROM users WHERE email = ?`

	existsUserByEmailOrUsernameSQL = `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? OR username = ?)`

	updateUserSQL = `
		UPDATE users
		SET name = ?, username = ?, email = ?, password_hash = ?, profile_pic = ?, bio = ?, updated_at = ?
		WHERE id = ?
	`

	insertFollowSQL = `INSERT OR IGNORE INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`
	deleteFollowSQL = `DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`
	existsFollowSQL = `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?)`

	selectFollowerIDsSQL  = `SELECT follower_id FROM follows WHERE followee_id = ? ORDER BY created_at`
	selectFollowingIDsSQL = `SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY created_at`
)

// Create inserts a new user row.
func (r *UserSQLite) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Name, u.Username, u.Email, u.PasswordHash,
		u.ProfilePic, u.Bio, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

func (r *UserSQLite) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, username)
}

func (r *UserSQLite) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// getOne fetches a single user and hydrates its follower/following id lists.
// Returns (nil, nil) if not found.
func (r *UserSQLite) getOne(ctx context.Context, query, arg string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash,
		&u.ProfilePic, &u.Bio, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", arg, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()

	if u.Followers, err = r.idList(ctx, selectFollowerIDsSQL, u.ID); err != nil {
		return nil, err
	}
	if u.Following, err = r.idList(ctx, selectFollowingIDsSQL, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserSQLite) idList(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select follow ids for %q: %w", userID, err)
	}
	defer rows.Close()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ExistsByEmailOrUsername reports whether a user with the given email or
// username is already registered.
func (r *UserSQLite) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, existsUserByEmailOrUsernameSQL, email, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// Update overwrites the mutable columns of a user row.
func (r *UserSQLite) Update(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, updateUserSQL,
		u.Name, u.Username, u.Email, u.PasswordHash,
		u.ProfilePic, u.Bio, u.UpdatedAt.UTC(), u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user %q: %w", u.ID, err)
	}
	return nil
}

// AddFollow records follower -> followee. A no-op if the row already exists.
func (r *UserSQLite) AddFollow(ctx context.Context, followerID, followeeID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, insertFollowSQL, followerID, followeeID, at.UTC())
	if err != nil {
		return fmt.Errorf("insert follow %q -> %q: %w", followerID, followeeID, err)
	}
	return nil
}

// RemoveFollow deletes follower -> followee. A no-op if the row is absent.
func (r *UserSQLite) RemoveFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx, deleteFollowSQL, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("delete follow %q -> %q: %w", followerID, followeeID, err)
	}
	return nil
}

func (r *UserSQLite) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var following bool
	err := r.db.QueryRowContext(ctx, existsFollowSQL, followerID, followeeID).Scan(&following)
	if err != nil {
		return false, fmt.Errorf("check follow %q -> %q: %w", followerID, followeeID, err)
	}
	return following, nil
}
