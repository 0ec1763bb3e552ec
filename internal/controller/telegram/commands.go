package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	waitingPageSize = 20
	myBookingsLimit = 10
)

// HandleStart обрабатывает команду /start
func (c *BotController) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	user, err := c.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		c.logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		c.sendMessage(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return
	}

	if user == nil {
		c.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"👋 Привет!\n\n"+
				"Этот Telegram ещё не привязан к аккаунту ShareIt.\n"+
				"Укажите telegram_id = %d в профиле (PATCH /users/{id}) и повторите /start.",
			telegramID,
		), nil)
		return
	}

	c.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Доступные команды:\n"+
			"/waiting - бронирования ваших вещей, ждущие решения\n"+
			"/mybookings - ваши бронирования",
		user.Name,
	), nil)
}

// HandleWaiting показывает владельцу бронирования в статусе WAITING с кнопками решения
func (c *BotController) HandleWaiting(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := c.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	bookings, err := c.bookings.ListByOwner(ctx, user.ID, string(model.StateWaiting), 0, waitingPageSize)
	if err != nil {
		c.logger.Error("Failed to list waiting bookings", zap.Int64("user_id", user.ID), zap.Error(err))
		c.sendMessage(ctx, b, chatID, "❌ Не удалось загрузить бронирования.", nil)
		return
	}

	if len(bookings) == 0 {
		c.sendMessage(ctx, b, chatID, "✅ Нет бронирований, ждущих решения.", nil)
		return
	}

	for _, booking := range bookings {
		c.sendMessage(ctx, b, chatID, FormatBooking(booking), DecisionKeyboard(booking.ID))
	}
}

// HandleMyBookings показывает последние бронирования пользователя
func (c *BotController) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := c.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	bookings, err := c.bookings.ListByBooker(ctx, user.ID, string(model.StateAll), 0, myBookingsLimit)
	if err != nil {
		c.logger.Error("Failed to list user bookings", zap.Int64("user_id", user.ID), zap.Error(err))
		c.sendMessage(ctx, b, chatID, "❌ Не удалось загрузить бронирования.", nil)
		return
	}

	if len(bookings) == 0 {
		c.sendMessage(ctx, b, chatID, "📭 У вас пока нет бронирований.", nil)
		return
	}

	parts := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		parts = append(parts, FormatBooking(booking))
	}

	c.sendMessage(ctx, b, chatID, "📅 Ваши бронирования:\n\n"+strings.Join(parts, "\n\n"), nil)
}
