package rest

import (
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
)

type pageQuery struct {
	From *int `form:"from"`
	Size *int `form:"size" validate:"omitempty,max=100"`
}

// resolve подставляет значения по умолчанию; отрицательные значения проверяет сервис
func (q pageQuery) resolve(defaultSize int) (from, size int) {
	from, size = 0, defaultSize
	if q.From != nil {
		from = *q.From
	}
	if q.Size != nil {
		size = *q.Size
	}
	return from, size
}

type bookingListQuery struct {
	pageQuery
	State string `form:"state"`
}

type createBookingRequest struct {
	ItemID int64      `json:"item_id" validate:"required,gt=0"`
	Start  *time.Time `json:"start" validate:"required"`
	End    *time.Time `json:"end" validate:"required"`
}

type itemSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookingResponse struct {
	ID     int64               `json:"id"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Status model.BookingStatus `json:"status"`
	Item   *itemSummary        `json:"item"`
	Booker *userSummary        `json:"booker"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	resp := bookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   &itemSummary{ID: b.ItemID},
		Booker: &userSummary{ID: b.BookerID},
	}
	if b.Item != nil {
		resp.Item.Name = b.Item.Name
	}
	if b.Booker != nil {
		resp.Booker.Name = b.Booker.Name
	}
	return resp
}

func toBookingResponses(bookings []*model.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"request_id" validate:"omitempty,gt=0"`
}

type updateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=2000"`
}

type createRequestRequest struct {
	Description string `json:"description" validate:"required,notblank,max=2000"`
}

type createUserRequest struct {
	Name       string `json:"name" validate:"required,notblank"`
	Email      string `json:"email" validate:"required,email"`
	TelegramID *int64 `json:"telegram_id" validate:"omitempty,gt=0"`
}

type updateUserRequest struct {
	Name       *string `json:"name" validate:"omitempty,notblank"`
	Email      *string `json:"email" validate:"omitempty,email"`
	TelegramID *int64  `json:"telegram_id" validate:"omitempty,gt=0"`
}
