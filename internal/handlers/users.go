package handlers

import (
	"net/http"

	"social_threads/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTOs. Field rules are enforced in the service layer, binding only
// deserializes.
type signupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProfilePic string `json:"profilePic"`
	Bio        string `json:"bio"`
}

// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account fields"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users/signup [post]
func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.SignUp(c.Request.Context(), service.SignUpParams{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, "signup_failed", err)
		return
	}

	token, err := h.services.IssueToken(u.ID)
	if err != nil {
		h.respondError(c, "signup_issue_token_failed", err)
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, u)
}

// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, "login_failed", err)
		return
	}

	token, err := h.services.IssueToken(u.ID)
	if err != nil {
		h.respondError(c, "login_issue_token_failed", err)
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, u)
}

// @Summary      Log out
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /users/logout [post]
func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "user logged out successfully"})
}

// @Summary      Follow or unfollow a user (toggle)
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Target user id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/follow/{id} [post]
func (h *Handler) followUnfollow(c *gin.Context) {
	following, err := h.services.FollowUnfollow(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, "follow_unfollow_failed", err)
		return
	}

	msg := "user unfollowed successfully"
	if following {
		msg = "user followed successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// @Summary      Update own profile (partial)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "User id (must match caller)"
// @Param        body  body      updateProfileRequest  true  "Fields to change; empty fields are kept"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.UpdateProfile(c.Request.Context(), callerID(c), c.Param("id"), service.UpdateProfileParams{
		Name:       req.Name,
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: req.ProfilePic,
		Bio:        req.Bio,
	})
	if err != nil {
		h.respondError(c, "update_profile_failed", err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary      Get a public profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  models.User
// @Failure      404       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /users/profile/{username} [get]
func (h *Handler) getProfile(c *gin.Context) {
	u, err := h.services.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, "get_profile_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
