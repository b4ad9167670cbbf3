package service

import (
	"context"
	"sort"
	"time"

	"social_threads/internal/models"
	"social_threads/internal/repository"
)

// ---- In-memory repository fakes ----

type fakeUsersRepo struct {
	users   map[string]models.User
	follows map[string]map[string]bool // follower id -> set of followee ids
	err     error                      // when set, every method fails with it
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		users:   make(map[string]models.User),
		follows: make(map[string]map[string]bool),
	}
}

var _ repository.Users = (*fakeUsersRepo)(nil)

func (f *fakeUsersRepo) Create(_ context.Context, u models.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return f.hydrate(u), nil
}

func (f *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			return f.hydrate(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return f.hydrate(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUsersRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsersRepo) Update(_ context.Context, u models.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsersRepo) AddFollow(_ context.Context, followerID, followeeID string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.follows[followerID] == nil {
		f.follows[followerID] = make(map[string]bool)
	}
	f.follows[followerID][followeeID] = true
	return nil
}

func (f *fakeUsersRepo) RemoveFollow(_ context.Context, followerID, followeeID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.follows[followerID], followeeID)
	return nil
}

func (f *fakeUsersRepo) IsFollowing(_ context.Context, followerID, followeeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.follows[followerID][followeeID], nil
}

// hydrate returns a copy with follower/following lists computed from the
// follows map, sorted for deterministic assertions.
func (f *fakeUsersRepo) hydrate(u models.User) *models.User {
	out := u
	out.Followers = []string{}
	out.Following = []string{}
	for followee := range f.follows[u.ID] {
		out.Following = append(out.Following, followee)
	}
	for follower, set := range f.follows {
		if set[u.ID] {
			out.Followers = append(out.Followers, follower)
		}
	}
	sort.Strings(out.Followers)
	sort.Strings(out.Following)
	return &out
}

type fakePostsRepo struct {
	posts map[string]models.Post
	users *fakeUsersRepo // for the feed's follow filter
	err   error
}

func newFakePostsRepo(users *fakeUsersRepo) *fakePostsRepo {
	return &fakePostsRepo{posts: make(map[string]models.Post), users: users}
}

var _ repository.Posts = (*fakePostsRepo)(nil)

func (f *fakePostsRepo) Create(_ context.Context, p models.Post) error {
	if f.err != nil {
		return f.err
	}
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostsRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	out := p
	out.Likes = append([]string{}, p.Likes...)
	out.Replies = append([]models.Reply{}, p.Replies...)
	return &out, nil
}

func (f *fakePostsRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostsRepo) AddLike(_ context.Context, postID, userID string) error {
	if f.err != nil {
		return f.err
	}
	p := f.posts[postID]
	for _, l := range p.Likes {
		if l == userID {
			return nil
		}
	}
	p.Likes = append(p.Likes, userID)
	f.posts[postID] = p
	return nil
}

func (f *fakePostsRepo) RemoveLike(_ context.Context, postID, userID string) error {
	if f.err != nil {
		return f.err
	}
	p := f.posts[postID]
	kept := p.Likes[:0]
	for _, l := range p.Likes {
		if l != userID {
			kept = append(kept, l)
		}
	}
	p.Likes = kept
	f.posts[postID] = p
	return nil
}

func (f *fakePostsRepo) HasLike(_ context.Context, postID, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, l := range f.posts[postID].Likes {
		if l == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostsRepo) AppendReply(_ context.Context, postID string, r models.Reply, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	p := f.posts[postID]
	p.Replies = append(p.Replies, r)
	f.posts[postID] = p
	return nil
}

// Feed mirrors the SQL contract: posts whose author is followed by userID,
// newest first.
func (f *fakePostsRepo) Feed(_ context.Context, userID string) ([]models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	following := f.users.follows[userID]
	out := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		if following[p.PostedBy] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
