package handlers

import (
	"net/http"

	"wishlink/internal/models"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ItemName   string   `json:"item_name" binding:"required"`
	ItemLink   *string  `json:"item_link"`
	ItemPrice  *float64 `json:"item_price"`
	WantRating *int     `json:"want_rating"`
}

type patchItemRequest struct {
	ItemName   string                `json:"item_name" binding:"required"`
	UpdateInfo models.WishlistUpdate `json:"update_info"`
}

func (h *Handler) addToWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input addItemRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	item, err := h.services.Wishlist.Add(c.Request.Context(), user.Username, models.WishlistItem{
		ItemName:   input.ItemName,
		ItemLink:   input.ItemLink,
		ItemPrice:  input.ItemPrice,
		WantRating: input.WantRating,
	})
	if err != nil {
		h.respondServiceError(c, "wishlist_add_failed", err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) myWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	items, err := h.services.Wishlist.List(c.Request.Context(), user.Username)
	if err != nil {
		h.respondServiceError(c, "wishlist_list_failed", err)
		return
	}
	if items == nil {
		items = []models.WishlistItem{} // [] over null for empty lists
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) updateWishlistItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input patchItemRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.Wishlist.Update(c.Request.Context(), user.Username, input.ItemName, input.UpdateInfo); err != nil {
		h.respondServiceError(c, "wishlist_update_failed", err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) deleteFromWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.services.Wishlist.Delete(c.Request.Context(), user.Username, c.Param("item_name")); err != nil {
		h.respondServiceError(c, "wishlist_delete_failed", err)
		return
	}

	c.Status(http.StatusOK)
}
