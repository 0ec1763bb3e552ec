package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// UserDirectory отдаёт пользователя по ID (nil, nil - не найден)
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// ItemDirectory отдаёт вещь по ID (nil, nil - не найдена)
type ItemDirectory interface {
	GetByID(ctx context.Context, id int64) (*model.Item, error)
}

// BookingLister выбирает бронирования по фильтру
type BookingLister interface {
	List(ctx context.Context, filter repository.BookingFilter) ([]*model.Booking, error)
}

// BookingStore is the persistence the booking lifecycle needs.
type BookingStore interface {
	BookingLister
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatusUnlessApproved(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// BookingInput - данные для создания бронирования
type BookingInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type BookingService struct {
	users    UserDirectory
	items    ItemDirectory
	bookings BookingStore
	events   EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	users UserDirectory,
	items ItemDirectory,
	bookings BookingStore,
	events EventPublisher,
	logger *zap.Logger,
	now func() time.Time,
) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		users:    users,
		items:    items,
		bookings: bookings,
		events:   events,
		logger:   logger,
		now:      now,
	}
}

// Create бронирует вещь для арендатора. Бронирование создаётся в статусе WAITING.
func (s *BookingService) Create(ctx context.Context, bookerID int64, input BookingInput) (booking *model.Booking, err error) {
	ctx, span := startSpan(ctx, "BookingService.Create",
		attribute.Int64("booker_id", bookerID),
		attribute.Int64("item_id", input.ItemID),
	)
	defer func() { endSpan(span, err) }()

	now := s.now()

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, fmt.Errorf("get booker: %w", err)
	}
	if booker == nil {
		return nil, notFound("user with id = %d not found", bookerID)
	}

	item, err := s.items.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, notFound("item with id = %d not found", input.ItemID)
	}

	// Владелец не отличает "вещи нет" от "свою вещь бронировать нельзя"
	if item.IsOwnedBy(bookerID) {
		return nil, notFound("owner cannot book own item")
	}

	if !item.Available {
		return nil, invalid("item with id = %d is not available for booking", item.ID)
	}

	if err := validateWindow(input.Start, input.End, now); err != nil {
		return nil, err
	}

	booking = &model.Booking{
		Start:    input.Start,
		End:      input.End,
		Status:   model.BookingStatusWaiting,
		ItemID:   item.ID,
		BookerID: booker.ID,
	}

	err = s.bookings.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("item with id = %d not found", input.ItemID)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	booking.Item = item
	booking.Booker = booker

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("booker_id", bookerID),
		zap.Int64("item_id", item.ID),
		zap.Time("start", booking.Start),
		zap.Time("end", booking.End),
	)

	s.publish(ctx, EventBookingCreated, booking)

	return booking, nil
}

// Decide подтверждает (approved=true) или отклоняет бронирование владельцем вещи.
// Повторно подтвердить или отклонить APPROVED нельзя; REJECTED можно подтвердить.
func (s *BookingService) Decide(ctx context.Context, ownerID, bookingID int64, approved *bool) (booking *model.Booking, err error) {
	ctx, span := startSpan(ctx, "BookingService.Decide",
		attribute.Int64("owner_id", ownerID),
		attribute.Int64("booking_id", bookingID),
	)
	defer func() { endSpan(span, err) }()

	now := s.now()

	booking, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking with id = %d not found", bookingID)
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	if owner == nil {
		return nil, notFound("user with id = %d not found", ownerID)
	}

	if approved == nil {
		return nil, invalid("approval decision is missing")
	}

	// Окно проверяется повторно относительно текущего момента
	if err := validateWindow(booking.Start, booking.End, now); err != nil {
		return nil, err
	}

	if booking.OwnerID() != ownerID {
		return nil, notFound("user with id = %d is not the owner of the item", ownerID)
	}

	if booking.IsApproved() {
		return nil, invalid("booking with id = %d is already approved", bookingID)
	}

	status := model.BookingStatusRejected
	if *approved {
		status = model.BookingStatusApproved
	}

	updated, err := s.bookings.UpdateStatusUnlessApproved(ctx, bookingID, status)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if !updated {
		// Параллельный запрос успел подтвердить бронирование
		return nil, invalid("booking with id = %d is already approved", bookingID)
	}

	booking.Status = status

	s.logger.Info("Booking decided",
		zap.Int64("booking_id", bookingID),
		zap.Int64("owner_id", ownerID),
		zap.String("status", string(status)),
	)

	event := EventBookingRejected
	if status == model.BookingStatusApproved {
		event = EventBookingApproved
	}
	s.publish(ctx, event, booking)

	return booking, nil
}

// FindByID отдаёт бронирование его арендатору или владельцу вещи
func (s *BookingService) FindByID(ctx context.Context, callerID, bookingID int64) (booking *model.Booking, err error) {
	ctx, span := startSpan(ctx, "BookingService.FindByID",
		attribute.Int64("caller_id", callerID),
		attribute.Int64("booking_id", bookingID),
	)
	defer func() { endSpan(span, err) }()

	booking, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking with id = %d not found", bookingID)
	}

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user with id = %d not found", callerID)
	}

	if booking.OwnerID() != user.ID && booking.BookerID != user.ID {
		return nil, notFound("user with id = %d is neither the owner nor the booker", callerID)
	}

	return booking, nil
}

// Delete удаляет бронирование без проверки прав
func (s *BookingService) Delete(ctx context.Context, bookingID int64) (err error) {
	ctx, span := startSpan(ctx, "BookingService.Delete", attribute.Int64("booking_id", bookingID))
	defer func() { endSpan(span, err) }()

	err = s.bookings.Delete(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("booking with id = %d not found", bookingID)
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("Booking deleted", zap.Int64("booking_id", bookingID))

	return nil
}

// validateWindow проверяет интервал бронирования; порядок проверок фиксирован,
// клиент получает первое нарушенное правило
func validateWindow(start, end, now time.Time) error {
	if start.After(end) {
		return invalid("booking start is after its end")
	}
	if start.Equal(end) {
		return invalid("booking start equals its end")
	}
	if start.Before(now) {
		return invalid("booking cannot start in the past")
	}
	if end.Before(now) {
		return invalid("booking cannot end in the past")
	}
	return nil
}

// publish отправляет событие; ошибка шины не отменяет операцию
func (s *BookingService) publish(ctx context.Context, key string, booking *model.Booking) {
	event := BookingEvent{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		OwnerID:   booking.OwnerID(),
		Status:    string(booking.Status),
		Start:     booking.Start.Unix(),
		End:       booking.End.Unix(),
	}

	if err := s.events.PublishJSON(ctx, key, event); err != nil {
		s.logger.Warn("Failed to publish booking event",
			zap.String("event", key),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err),
		)
	}
}
