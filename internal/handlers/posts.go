package handlers

import (
	"net/http"

	"social_threads/internal/service"

	"github.com/gin-gonic/gin"
)

type createPostRequest struct {
	PostedBy string `json:"postedBy"`
	Text     string `json:"text"`
	Img      string `json:"img"`
}

type replyRequest struct {
	Text string `json:"text"`
}

// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post fields"
// @Success      201   {object}  models.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /posts/create [post]
func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	post, err := h.services.Posts.Create(c.Request.Context(), callerID(c), service.CreatePostParams{
		PostedBy: req.PostedBy,
		Text:     req.Text,
		Img:      req.Img,
	})
	if err != nil {
		h.respondError(c, "create_post_failed", err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *Handler) getPost(c *gin.Context) {
	post, err := h.services.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "get_post_failed", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Delete own post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/delete/{id} [delete]
func (h *Handler) deletePost(c *gin.Context) {
	if err := h.services.Posts.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		h.respondError(c, "delete_post_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

// @Summary      Like or unlike a post (toggle)
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/like/{id} [post]
func (h *Handler) likeUnlikePost(c *gin.Context) {
	liked, err := h.services.Posts.LikeUnlike(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		h.respondError(c, "like_unlike_failed", err)
		return
	}

	msg := "post unliked successfully"
	if liked {
		msg = "post liked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// @Summary      Reply to a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Post id"
// @Param        body  body      replyRequest  true  "Reply text"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /posts/reply/{id} [post]
func (h *Handler) replyToPost(c *gin.Context) {
	var req replyRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	post, err := h.services.Posts.Reply(c.Request.Context(), c.Param("id"), callerID(c), req.Text)
	if err != nil {
		h.respondError(c, "reply_failed", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Feed of followed users' posts, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   models.Post
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/feed [get]
func (h *Handler) getFeed(c *gin.Context) {
	feed, err := h.services.Posts.Feed(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, "feed_failed", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}
