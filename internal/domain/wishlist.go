package domain

import "time"

// WishlistEntry - элемент подколлекции users/{uid}/wishlist
type WishlistEntry struct {
	UserID  string    `json:"user_id" db:"user_id"`
	PlaceID string    `json:"place_id" db:"place_id"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
}
