package handlers

import (
	"errors"
	"net/http"

	"wishlink/internal/logger"
	"wishlink/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
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
	router.Use(gin.Recovery(), h.requestLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Token endpoint (form-encoded, OAuth2 password style)
	router.POST("/authenticate", h.authenticate)

	h.registerUserRoutes(router)
	h.registerWishlistRoutes(router)
	h.registerFriendRoutes(router)

	// Live wishlist stream (HTTP upgrade) — same port
	router.GET("/ws", h.currentUserMiddleware, h.wsWishlist)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("/create", h.createUser)
		users.GET("/me", h.currentUserMiddleware, h.me)
	}
}

func (h *Handler) registerWishlistRoutes(r *gin.Engine) {
	wishlist := r.Group("/wishlist", h.currentUserMiddleware)
	{
		wishlist.POST("/add", h.addToWishlist)
		wishlist.GET("/mine", h.myWishlist)
		wishlist.PATCH("/mine", h.updateWishlistItem)
		wishlist.DELETE("/mine/:item_name", h.deleteFromWishlist)
	}
}

func (h *Handler) registerFriendRoutes(r *gin.Engine) {
	friends := r.Group("/friends", h.currentUserMiddleware)
	{
		friends.GET("/make_token", h.makeFriendToken)
		friends.POST("/make_friend", h.makeFriend)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondServiceError maps a service error onto an HTTP status. Domain errors
// keep their message; anything unmatched is a store failure and stays opaque.
func (h *Handler) respondServiceError(c *gin.Context, logKey string, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenTimedOut):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrDuplicateItem):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNoSuchCode),
		errors.Is(err, service.ErrSelfFriend),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrItemNotFound):
		status = http.StatusNotFound
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if h.log != nil {
		h.log.Infow(logKey, "status", status, "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
