package handlers

import (
	"net/http"

	"social_threads/internal/apperror"
	"social_threads/internal/logger"
	"social_threads/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerPostRoutes(router)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("/signup", h.signup)
		users.POST("/login", h.login)
		users.POST("/logout", h.logout)
		users.GET("/profile/:username", h.getProfile)
		users.POST("/follow/:id", h.authRequired, h.followUnfollow)
		users.PUT("/:id", h.authRequired, h.updateProfile)
	}
}

func (h *Handler) registerPostRoutes(r *gin.Engine) {
	posts := r.Group("/posts")
	{
		posts.GET("/feed", h.authRequired, h.getFeed)
		posts.GET("/:id", h.getPost)
		posts.POST("/create", h.authRequired, h.createPost)
		posts.DELETE("/delete/:id", h.authRequired, h.deletePost)
		posts.POST("/like/:id", h.authRequired, h.likeUnlikePost)
		posts.POST("/reply/:id", h.authRequired, h.replyToPost)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSONOrBadRequest binds the request body into dst and writes a 400 JSON
// on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return false
	}
	return true
}

// respondError maps a service error to its HTTP status. Internal failures are
// logged at error level, expected outcomes at info.
func (h *Handler) respondError(c *gin.Context, logKey string, err error) {
	status := apperror.HTTPStatus(err)
	if h.log != nil {
		if status == http.StatusInternalServerError {
			h.log.Errorw(logKey, "err", err)
		} else {
			h.log.Infow(logKey, "err", err)
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
