package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"social_threads/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockPostRepo(t *testing.T) (*PostSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewPostSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func postColumns() []string {
	return []string{"id", "posted_by", "text", "img", "created_at"}
}

func expectHydration(mock sqlmock.Sqlmock, postID string, likes []string, replies []models.Reply) {
	likeRows := sqlmock.NewRows([]string{"user_id"})
	for _, l := range likes {
		likeRows.AddRow(l)
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectLikesSQL)).WithArgs(postID).WillReturnRows(likeRows)

	replyRows := sqlmock.NewRows([]string{"user_id", "text", "username", "profile_pic"})
	for _, r := range replies {
		replyRows.AddRow(r.UserID, r.Text, r.Username, r.ProfilePic)
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectRepliesSQL)).WithArgs(postID).WillReturnRows(replyRows)
}

func TestPostSQLite_Create(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := models.Post{ID: "p1", PostedBy: "u1", Text: "hello", Img: "", CreatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta(insertPostSQL)).
		WithArgs("p1", "u1", "hello", "", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestPostSQLite_GetByID(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found with likes and replies", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectPostByIDSQL)).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(postColumns()).
				AddRow("p1", "u1", "hello", "img.png", now))
		expectHydration(mock, "p1", []string{"u2", "u3"}, []models.Reply{
			{UserID: "u2", Text: "nice", Username: "bob", ProfilePic: "b.png"},
		})

		p, err := repo.GetByID(context.Background(), "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p == nil {
			t.Fatal("expected post, got nil")
		}
		if p.Text != "hello" || p.Img != "img.png" {
			t.Fatalf("unexpected post: %+v", p)
		}
		if len(p.Likes) != 2 || p.Likes[0] != "u2" {
			t.Fatalf("unexpected likes: %v", p.Likes)
		}
		if len(p.Replies) != 1 || p.Replies[0].Username != "bob" {
			t.Fatalf("unexpected replies: %+v", p.Replies)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectPostByIDSQL)).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(postColumns()))

		p, err := repo.GetByID(context.Background(), "ghost")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != nil {
			t.Fatalf("expected nil post, got %+v", p)
		}
	})
}

func TestPostSQLite_Delete(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deletePostSQL)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestPostSQLite_LikeLifecycle(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertLikeSQL)).
		WithArgs("p1", "u2").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(existsLikeSQL)).
		WithArgs("p1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta(deleteLikeSQL)).
		WithArgs("p1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	if err := repo.AddLike(ctx, "p1", "u2"); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	liked, err := repo.HasLike(ctx, "p1", "u2")
	if err != nil {
		t.Fatalf("HasLike: %v", err)
	}
	if !liked {
		t.Fatal("expected liked=true")
	}
	if err := repo.RemoveLike(ctx, "p1", "u2"); err != nil {
		t.Fatalf("RemoveLike: %v", err)
	}
}

func TestPostSQLite_AppendReply(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)
	rep := models.Reply{UserID: "u2", Text: "nice", Username: "bob", ProfilePic: "b.png"}

	mock.ExpectExec(regexp.QuoteMeta(insertReplySQL)).
		WithArgs("p1", "u2", "nice", "bob", "b.png", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.AppendReply(context.Background(), "p1", rep, at); err != nil {
		t.Fatalf("AppendReply: %v", err)
	}
}

func TestPostSQLite_Feed_PreservesNewestFirstOrder(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	t3 := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectFeedSQL)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(postColumns()).
			AddRow("p3", "uC", "newest", "", t3).
			AddRow("p1", "uB", "oldest", "", t1))
	expectHydration(mock, "p3", nil, nil)
	expectHydration(mock, "p1", []string{"u1"}, nil)

	feed, err := repo.Feed(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(feed))
	}
	if feed[0].ID != "p3" || feed[1].ID != "p1" {
		t.Fatalf("wrong order: %s, %s", feed[0].ID, feed[1].ID)
	}
	if len(feed[1].Likes) != 1 {
		t.Fatalf("expected hydrated likes on second post, got %v", feed[1].Likes)
	}
}

func TestPostSQLite_Feed_QueryError(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectFeedSQL)).
		WithArgs("u1").
		WillReturnError(errors.New("db down"))

	_, err := repo.Feed(context.Background(), "u1")
	if err == nil || !strings.Contains(err.Error(), "select feed") {
		t.Fatalf("expected feed error, got %v", err)
	}
}
