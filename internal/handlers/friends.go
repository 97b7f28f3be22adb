package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type makeFriendRequest struct {
	Token string `json:"token" binding:"required"`
}

// makeFriendToken mints a short-lived invite token for the caller. Anyone who
// presents it before it expires becomes the caller's friend.
func (h *Handler) makeFriendToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	token, err := h.services.Friends.CreateInvite(c.Request.Context(), user.Username)
	if err != nil {
		h.respondServiceError(c, "friend_token_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) makeFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input makeFriendRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	friendship, err := h.services.Friends.Redeem(c.Request.Context(), input.Token, user.Username)
	if err != nil {
		h.respondServiceError(c, "make_friend_failed", err)
		return
	}

	c.JSON(http.StatusOK, friendship)
}
