package telegram

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/go-telegram/bot/models"
)

// Display - emoji и текст для статуса бронирования
type Display struct {
	Emoji string
	Text  string
}

func StatusDisplay(status model.BookingStatus) Display {
	displays := map[model.BookingStatus]Display{
		model.BookingStatusWaiting:  {"⏳", "Ожидает решения"},
		model.BookingStatusApproved: {"✅", "Подтверждено"},
		model.BookingStatusRejected: {"🚫", "Отклонено"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return Display{"❓", "Неизвестно"}
}

func formatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatBooking форматирует бронирование для отображения
func FormatBooking(booking *model.Booking) string {
	display := StatusDisplay(booking.Status)

	itemName := "#" + strconv.FormatInt(booking.ItemID, 10)
	if booking.Item != nil {
		itemName = booking.Item.Name
	}
	bookerName := "#" + strconv.FormatInt(booking.BookerID, 10)
	if booking.Booker != nil {
		bookerName = booking.Booker.Name
	}

	return fmt.Sprintf(
		"%s Бронирование #%d\n"+
			"📦 Вещь: %s\n"+
			"👤 Арендатор: %s\n"+
			"📅 %s - %s\n"+
			"📊 Статус: %s",
		display.Emoji,
		booking.ID,
		itemName,
		bookerName,
		formatDateTime(booking.Start),
		formatDateTime(booking.End),
		display.Text,
	)
}

// DecisionKeyboard - кнопки подтверждения и отклонения бронирования
func DecisionKeyboard(bookingID int64) *models.InlineKeyboardMarkup {
	id := strconv.FormatInt(bookingID, 10)
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Подтвердить", CallbackData: ApproveBooking + id},
				{Text: "🚫 Отклонить", CallbackData: RejectBooking + id},
			},
		},
	}
}
