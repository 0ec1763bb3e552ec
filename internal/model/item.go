package model

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   *int64    `json:"request_id,omitempty"` // запрос, по которому вещь добавлена
	CreatedAt   time.Time `json:"created_at"`

	// Видны только владельцу вещи
	LastBooking *BookingShort `json:"last_booking"`
	NextBooking *BookingShort `json:"next_booking"`

	Comments []*Comment `json:"comments,omitempty"`
}

// IsOwnedBy checks if the user listed the item
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.OwnerID == userID
}
