package model

import "time"

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"  // Ожидает решения владельца
	BookingStatusApproved BookingStatus = "APPROVED" // Подтверждено владельцем
	BookingStatusRejected BookingStatus = "REJECTED" // Отклонено владельцем
)

type Booking struct {
	ID        int64         `json:"id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
	ItemID    int64         `json:"item_id"`
	BookerID  int64         `json:"booker_id"`
	CreatedAt time.Time     `json:"created_at"`

	// Снимки связанных сущностей (заполняются из JOIN, не хранятся в bookings)
	Item   *Item `json:"item,omitempty"`
	Booker *User `json:"booker,omitempty"`
}

// OwnerID возвращает владельца забронированной вещи
func (b *Booking) OwnerID() int64 {
	if b.Item == nil {
		return 0
	}
	return b.Item.OwnerID
}

// IsApproved checks if booking is approved
func (b *Booking) IsApproved() bool {
	return b.Status == BookingStatusApproved
}

// BookingShort is the compact form attached to an item listing.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Short сворачивает бронирование до краткой формы
func (b *Booking) Short() *BookingShort {
	return &BookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
