package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"social_threads/internal/models"
	"social_threads/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service mocks ----

type mockAuth struct {
	issueToken string
	issueErr   error
	authID     string
	authErr    error
	ttl        time.Duration

	lastIssueUserID string
	lastAuthToken   string
}

func (m *mockAuth) IssueToken(userID string) (string, error) {
	m.lastIssueUserID = userID
	return m.issueToken, m.issueErr
}

func (m *mockAuth) Authenticate(_ context.Context, token string) (string, error) {
	m.lastAuthToken = token
	return m.authID, m.authErr
}

func (m *mockAuth) TokenTTL() time.Duration {
	if m.ttl == 0 {
		return service.DefaultTokenTTL
	}
	return m.ttl
}

type mockUsers struct {
	signUpUser *models.User
	signUpErr  error
	lastSignUp service.SignUpParams

	loginUser         *models.User
	loginErr          error
	lastLoginEmail    string
	lastLoginPassword string

	followResult     bool
	followErr        error
	lastFollowCaller string
	lastFollowTarget string

	updateUser       *models.User
	updateErr        error
	lastUpdateCaller string
	lastUpdateTarget string
	lastUpdate       service.UpdateProfileParams

	profileUser         *models.User
	profileErr          error
	lastProfileUsername string
}

func (m *mockUsers) SignUp(_ context.Context, p service.SignUpParams) (*models.User, error) {
	m.lastSignUp = p
	return m.signUpUser, m.signUpErr
}

func (m *mockUsers) Login(_ context.Context, email, password string) (*models.User, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginUser, m.loginErr
}

func (m *mockUsers) FollowUnfollow(_ context.Context, callerID, targetID string) (bool, error) {
	m.lastFollowCaller = callerID
	m.lastFollowTarget = targetID
	return m.followResult, m.followErr
}

func (m *mockUsers) UpdateProfile(_ context.Context, callerID, targetID string, p service.UpdateProfileParams) (*models.User, error) {
	m.lastUpdateCaller = callerID
	m.lastUpdateTarget = targetID
	m.lastUpdate = p
	return m.updateUser, m.updateErr
}

func (m *mockUsers) GetProfile(_ context.Context, username string) (*models.User, error) {
	m.lastProfileUsername = username
	return m.profileUser, m.profileErr
}

type mockPosts struct {
	createPost *models.Post
	createErr  error
	lastCreate service.CreatePostParams
	lastCaller string

	getPost *models.Post
	getErr  error
	lastGet string

	deleteErr        error
	lastDeleteID     string
	lastDeleteCaller string

	likeResult   bool
	likeErr      error
	lastLikeID   string
	lastLikeUser string

	replyPost *models.Post
	replyErr  error
	lastReply string

	feedPosts []models.Post
	feedErr   error
}

func (m *mockPosts) Create(_ context.Context, callerID string, p service.CreatePostParams) (*models.Post, error) {
	m.lastCaller = callerID
	m.lastCreate = p
	return m.createPost, m.createErr
}

func (m *mockPosts) Get(_ context.Context, id string) (*models.Post, error) {
	m.lastGet = id
	return m.getPost, m.getErr
}

func (m *mockPosts) Delete(_ context.Context, id, callerID string) error {
	m.lastDeleteID = id
	m.lastDeleteCaller = callerID
	return m.deleteErr
}

func (m *mockPosts) LikeUnlike(_ context.Context, id, callerID string) (bool, error) {
	m.lastLikeID = id
	m.lastLikeUser = callerID
	return m.likeResult, m.likeErr
}

func (m *mockPosts) Reply(_ context.Context, id, callerID, text string) (*models.Post, error) {
	m.lastReply = text
	return m.replyPost, m.replyErr
}

func (m *mockPosts) Feed(_ context.Context, callerID string) ([]models.Post, error) {
	return m.feedPosts, m.feedErr
}

// ---- Shared test helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func newBody(s string) io.Reader {
	return bytes.NewBufferString(s)
}

func withSession(req *http.Request, token string) {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, newBody(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		withSession(req, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
