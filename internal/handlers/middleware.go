package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"wishlink/internal/models"
	"wishlink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userCtxKey = "currentUser"

// currentUserMiddleware resolves the bearer token into a user and stores it
// in the gin context for downstream handlers.
func (h *Handler) currentUserMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	user, err := h.services.ParseToken(c.Request.Context(), parts[1])
	if err != nil {
		msg := "invalid or expired token"
		if errors.Is(err, service.ErrTokenTimedOut) {
			msg = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// currentUser pulls the authenticated user set by currentUserMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// requestLog tags every request with an id and writes one access-log line.
func (h *Handler) requestLog(c *gin.Context) {
	reqID := uuid.NewString()
	c.Writer.Header().Set("X-Request-Id", reqID)

	start := time.Now()
	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
