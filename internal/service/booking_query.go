package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

type viewpoint string

const (
	viewBooker viewpoint = "booker"
	viewOwner  viewpoint = "owner"
)

// ListByBooker отдаёт бронирования арендатора в корзине state.
// from - смещение первой записи, size - размер страницы.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*model.Booking, error) {
	return s.list(ctx, viewBooker, bookerID, state, from, size)
}

// ListByOwner отдаёт бронирования вещей владельца в корзине state
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*model.Booking, error) {
	return s.list(ctx, viewOwner, ownerID, state, from, size)
}

func (s *BookingService) list(ctx context.Context, view viewpoint, actorID int64, rawState string, from, size int) (bookings []*model.Booking, err error) {
	ctx, span := startSpan(ctx, "BookingService.List",
		attribute.String("viewpoint", string(view)),
		attribute.Int64("actor_id", actorID),
		attribute.String("state", rawState),
	)
	defer func() { endSpan(span, err) }()

	now := s.now()

	state, err := model.ParseState(rawState)
	if err != nil {
		return nil, invalid("%s", model.ErrUnknownState)
	}

	if err := validatePage(from, size); err != nil {
		return nil, err
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if actor == nil {
		return nil, notFound("user with id = %d not found", actorID)
	}

	filter, err := stateFilter(state, now)
	if err != nil {
		return nil, err
	}

	switch view {
	case viewOwner:
		filter.OwnerID = actorID
	default:
		filter.BookerID = actorID
	}
	filter.Offset = from
	filter.Limit = size

	bookings, err = s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s bookings: %w", view, err)
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}

	return bookings, nil
}

// stateFilter переводит корзину в условия выборки относительно now
func stateFilter(state model.State, now time.Time) (repository.BookingFilter, error) {
	var filter repository.BookingFilter

	switch state {
	case model.StateAll:
	case model.StateCurrent:
		filter.StartBefore = &now
		filter.EndAfter = &now
	case model.StatePast:
		filter.EndBefore = &now
	case model.StateFuture:
		filter.StartAfter = &now
	case model.StateWaiting:
		filter.Status = model.BookingStatusWaiting
	case model.StateRejected:
		filter.Status = model.BookingStatusRejected
	default:
		return filter, invalid("%s", model.ErrUnknownState)
	}

	return filter, nil
}

func validatePage(from, size int) error {
	if from < 0 {
		return invalid("from must not be negative")
	}
	if size <= 0 {
		return invalid("size must be positive")
	}
	return nil
}
