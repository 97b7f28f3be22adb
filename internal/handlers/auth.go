package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authenticate exchanges form-encoded credentials for a bearer token
// (OAuth2 password-flow shape: username/password form fields).
func (h *Handler) authenticate(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password form fields are required"})
		return
	}

	token, err := h.services.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		h.respondServiceError(c, "authenticate_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) createUser(c *gin.Context) {
	var input createUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondServiceError(c, "create_user_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

func (h *Handler) me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}
