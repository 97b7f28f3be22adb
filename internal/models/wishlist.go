package models

// WishlistItem is one wanted item on a user's list.
// Optional fields are pointers so a PATCH can tell "absent" from "zero".
type WishlistItem struct {
	ID         int      `json:"id"`
	Username   string   `json:"username"`
	ItemName   string   `json:"item_name"`
	ItemLink   *string  `json:"item_link,omitempty"`
	ItemPrice  *float64 `json:"item_price,omitempty"`
	WantRating *int     `json:"want_rating,omitempty"`
	Bought     bool     `json:"bought"`
}

// WishlistUpdate carries the fields of a partial update. A nil field is left
// untouched by the update.
type WishlistUpdate struct {
	ItemLink   *string  `json:"item_link,omitempty"`
	ItemPrice  *float64 `json:"item_price,omitempty"`
	WantRating *int     `json:"want_rating,omitempty"`
	Bought     *bool    `json:"bought,omitempty"`
}

// IsEmpty reports whether the update touches no fields at all.
func (u WishlistUpdate) IsEmpty() bool {
	return u.ItemLink == nil && u.ItemPrice == nil && u.WantRating == nil && u.Bought == nil
}
