package model

import "time"

type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	TelegramID *int64    `json:"telegram_id,omitempty"` // nil - бот не привязан
	CreatedAt  time.Time `json:"created_at"`
}
