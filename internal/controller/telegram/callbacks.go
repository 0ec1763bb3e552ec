package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/shareit/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data: approve_booking:<id>, reject_booking:<id>
const (
	ApproveBooking = "approve_booking:"
	RejectBooking  = "reject_booking:"
)

// ParseDecision разбирает callback data решения по бронированию
func ParseDecision(data string) (bookingID int64, approved bool, err error) {
	var raw string
	switch {
	case strings.HasPrefix(data, ApproveBooking):
		raw, approved = strings.TrimPrefix(data, ApproveBooking), true
	case strings.HasPrefix(data, RejectBooking):
		raw, approved = strings.TrimPrefix(data, RejectBooking), false
	default:
		return 0, false, fmt.Errorf("unknown callback %q", data)
	}

	bookingID, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || bookingID <= 0 {
		return 0, false, fmt.Errorf("invalid booking id in callback %q", data)
	}
	return bookingID, approved, nil
}

// HandleCallbackQuery обрабатывает нажатия на кнопки подтверждения/отклонения
func (c *BotController) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	c.logger.Info("Routing callback",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	bookingID, approved, err := ParseDecision(callback.Data)
	if err != nil {
		c.answerCallback(ctx, b, callback.ID, "❌ Неверный формат", true)
		return
	}

	user, err := c.users.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || user == nil {
		c.answerCallback(ctx, b, callback.ID, "❌ Пользователь не найден", true)
		return
	}

	booking, err := c.bookings.Decide(ctx, user.ID, bookingID, &approved)
	if err != nil {
		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			c.answerCallback(ctx, b, callback.ID, "❌ "+svcErr.Message, true)
			return
		}
		c.logger.Error("Failed to decide booking",
			zap.Int64("booking_id", bookingID),
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		c.answerCallback(ctx, b, callback.ID, "❌ Не удалось сохранить решение", true)
		return
	}

	display := StatusDisplay(booking.Status)
	c.answerCallback(ctx, b, callback.ID, display.Emoji+" "+display.Text, false)

	// Обновляем сообщение: кнопки больше не нужны
	if msg := callback.Message.Message; msg != nil {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      FormatBooking(booking),
		})
		if err != nil {
			c.logger.Warn("Failed to edit message", zap.Int64("booking_id", bookingID), zap.Error(err))
		}
	}
}
