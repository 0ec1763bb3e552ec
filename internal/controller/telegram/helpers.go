package telegram

import (
	"context"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser возвращает привязанного к Telegram пользователя или отвечает ошибкой
func (c *BotController) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	user, err := c.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		c.logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		c.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return nil, false
	}

	if user == nil {
		c.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Аккаунт не привязан. Используйте /start.", nil)
		return nil, false
	}

	return user, true
}

// sendMessage отправляет сообщение и логирует если не удалось
func (c *BotController) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markup *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		c.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (c *BotController) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		c.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}
