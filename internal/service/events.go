package service

import "context"

// Ключи событий жизненного цикла бронирования
const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
)

// EventPublisher отправляет событие во внешнюю шину
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// NopPublisher используется, когда шина не настроена
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }

// BookingEvent is the payload published for every booking state change.
type BookingEvent struct {
	BookingID int64  `json:"booking_id"`
	ItemID    int64  `json:"item_id"`
	BookerID  int64  `json:"booker_id"`
	OwnerID   int64  `json:"owner_id"`
	Status    string `json:"status"`
	Start     int64  `json:"start"`
	End       int64  `json:"end"`
}
