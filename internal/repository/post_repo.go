package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"social_threads/internal/models"
)

type PostSQLite struct {
	db *sql.DB
}

func NewPostSQLite(db *sql.DB) *PostSQLite {
	return &PostSQLite{db: db}
}

var _ Posts = (*PostSQLite)(nil)

const (
	insertPostSQL = `
		INSERT INTO posts (id, posted_by, text, img, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	selectPostByIDSQL = `SELECT id, posted_by, text, img, created_at FROM posts WHERE id = ?`
	deletePostSQL     = `DELETE FROM posts WHERE id = ?`

	insertLikeSQL = `INSERT OR IGNORE INTO post_likes (post_id, user_id) VALUES (?, ?)`
	deleteLikeSQL = `DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`
	existsLikeSQL = `SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = ? AND user_id = ?)`

	selectLikesSQL = `SELECT user_id FROM post_likes WHERE post_id = ?`

	insertReplySQL = `
		INSERT INTO post_replies (post_id, user_id, text, username, profile_pic, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectRepliesSQL = `
		SELECT user_id, text, username, profile_pic
		FROM post_replies WHERE post_id = ? ORDER BY id
	`

	// Feed: every post authored by someone the user follows, newest first.
	selectFeedSQL = `
		SELECT id, posted_by, text, img, created_at
		FROM posts
		WHERE posted_by IN (SELECT followee_id FROM follows WHERE follower_id = ?)
		ORDER BY created_at DESC
	`
)

// Create inserts a new post row. Likes and replies start empty.
func (r *PostSQLite) Create(ctx context.Context, p models.Post) error {
	_, err := r.db.ExecContext(ctx, insertPostSQL,
		p.ID, p.PostedBy, p.Text, p.Img, p.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert post %q: %w", p.ID, err)
	}
	return nil
}

// GetByID fetches a post with its likes and replies hydrated.
// Returns (nil, nil) if not found.
func (r *PostSQLite) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostByIDSQL, id).Scan(
		&p.ID, &p.PostedBy, &p.Text, &p.Img, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %q: %w", id, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()

	if err := r.hydrate(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostSQLite) hydrate(ctx context.Context, p *models.Post) error {
	likes, err := r.likes(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Likes = likes

	replies, err := r.replies(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Replies = replies
	return nil
}

func (r *PostSQLite) likes(ctx context.Context, postID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectLikesSQL, postID)
	if err != nil {
		return nil, fmt.Errorf("select likes for post %q: %w", postID, err)
	}
	defer rows.Close()

	likes := make([]string, 0, 8)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		likes = append(likes, userID)
	}
	return likes, rows.Err()
}

func (r *PostSQLite) replies(ctx context.Context, postID string) ([]models.Reply, error) {
	rows, err := r.db.QueryContext(ctx, selectRepliesSQL, postID)
	if err != nil {
		return nil, fmt.Errorf("select replies for post %q: %w", postID, err)
	}
	defer rows.Close()

	replies := make([]models.Reply, 0, 8)
	for rows.Next() {
		var rep models.Reply
		if err := rows.Scan(&rep.UserID, &rep.Text, &rep.Username, &rep.ProfilePic); err != nil {
			return nil, err
		}
		replies = append(replies, rep)
	}
	return replies, rows.Err()
}

// Delete removes a post permanently; likes and replies cascade.
func (r *PostSQLite) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deletePostSQL, id)
	if err != nil {
		return fmt.Errorf("delete post %q: %w", id, err)
	}
	return nil
}

// AddLike records userID's like. A no-op if already present.
func (r *PostSQLite) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.db.ExecContext(ctx, insertLikeSQL, postID, userID)
	if err != nil {
		return fmt.Errorf("insert like %q on post %q: %w", userID, postID, err)
	}
	return nil
}

// RemoveLike deletes userID's like. A no-op if absent.
func (r *PostSQLite) RemoveLike(ctx context.Context, postID, userID string) error {
	_, err := r.db.ExecContext(ctx, deleteLikeSQL, postID, userID)
	if err != nil {
		return fmt.Errorf("delete like %q on post %q: %w", userID, postID, err)
	}
	return nil
}

func (r *PostSQLite) HasLike(ctx context.Context, postID, userID string) (bool, error) {
	var liked bool
	err := r.db.QueryRowContext(ctx, existsLikeSQL, postID, userID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("check like %q on post %q: %w", userID, postID, err)
	}
	return liked, nil
}

// AppendReply stores a reply snapshot at the end of the post's reply sequence.
func (r *PostSQLite) AppendReply(ctx context.Context, postID string, rep models.Reply, at time.Time) error {
	_, err := r.db.ExecContext(ctx, insertReplySQL,
		postID, rep.UserID, rep.Text, rep.Username, rep.ProfilePic, at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert reply on post %q: %w", postID, err)
	}
	return nil
}

// Feed returns posts authored by users that userID follows, newest first.
func (r *PostSQLite) Feed(ctx context.Context, userID string) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectFeedSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select feed for %q: %w", userID, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, 32)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.PostedBy, &p.Text, &p.Img, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if err := r.hydrate(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}
