package telegram

import (
	"context"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UserFinder находит пользователя, привязанного к Telegram (nil, nil - не привязан)
type UserFinder interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

// BookingDecider - операции бронирований, доступные из бота
type BookingDecider interface {
	Decide(ctx context.Context, ownerID, bookingID int64, approved *bool) (*model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*model.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*model.Booking, error)
}

type BotController struct {
	bot      *bot.Bot
	users    UserFinder
	bookings BookingDecider
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	users UserFinder,
	bookings BookingDecider,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		users:    users,
		bookings: bookings,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/waiting", bot.MatchTypeExact, c.HandleWaiting)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.HandleMyBookings)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "waiting", Description: "⏳ Бронирования моих вещей, ждущие решения"},
		{Command: "mybookings", Description: "📅 Мои бронирования"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling; блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
