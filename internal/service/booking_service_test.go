package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture()
	owner := f.users.add("Owner")
	booker := f.users.add("Booker")
	item := f.items.add(owner, "Drill", true)

	booking, err := f.bookingSvc.Create(context.Background(), booker.ID, BookingInput{
		ItemID: item.ID,
		Start:  refNow.Add(day),
		End:    refNow.Add(2 * day),
	})
	require.NoError(t, err)

	assert.NotZero(t, booking.ID)
	assert.Equal(t, model.BookingStatusWaiting, booking.Status)
	require.NotNil(t, booking.Item)
	require.NotNil(t, booking.Booker)
	assert.Equal(t, "Drill", booking.Item.Name)
	assert.Equal(t, owner.ID, booking.OwnerID())
	assert.Equal(t, "Booker", booking.Booker.Name)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, EventBookingCreated, f.publisher.events[0].key)
	assert.Equal(t, booking.ID, f.publisher.events[0].payload.BookingID)
	assert.Equal(t, "WAITING", f.publisher.events[0].payload.Status)
}

func TestCreateBooking_OwnItemIsNotFound(t *testing.T) {
	for _, available := range []bool{true, false} {
		f := newFixture()
		owner := f.users.add("Owner")
		item := f.items.add(owner, "Drill", available)

		_, err := f.bookingSvc.Create(context.Background(), owner.ID, BookingInput{
			ItemID: item.ID,
			Start:  refNow.Add(day),
			End:    refNow.Add(2 * day),
		})
		require.ErrorIs(t, err, ErrNotFound, "available=%v", available)
	}
}

func TestCreateBooking_UnavailableItem(t *testing.T) {
	f := newFixture()
	owner := f.users.add("Owner")
	booker := f.users.add("Booker")
	item := f.items.add(owner, "Drill", false)

	_, err := f.bookingSvc.Create(context.Background(), booker.ID, BookingInput{
		ItemID: item.ID,
		Start:  refNow.Add(day),
		End:    refNow.Add(2 * day),
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, f.bookings.byID)
}

func TestCreateBooking_UnknownReferences(t *testing.T) {
	f := newFixture()
	owner := f.users.add("Owner")
	booker := f.users.add("Booker")
	item := f.items.add(owner, "Drill", true)
	window := BookingInput{ItemID: item.ID, Start: refNow.Add(day), End: refNow.Add(2 * day)}

	_, err := f.bookingSvc.Create(context.Background(), 999, window)
	require.ErrorIs(t, err, ErrNotFound)

	window.ItemID = 999
	_, err = f.bookingSvc.Create(context.Background(), booker.ID, window)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBooking_WindowValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		message string
	}{
		{
			name:    "start after end is reported first even in the past",
			start:   refNow.Add(-day),
			end:     refNow.Add(-2 * day),
			message: "booking start is after its end",
		},
		{
			name:    "start equals end",
			start:   refNow.Add(day),
			end:     refNow.Add(day),
			message: "booking start equals its end",
		},
		{
			name:    "start in the past",
			start:   refNow.Add(-time.Hour),
			end:     refNow.Add(day),
			message: "booking cannot start in the past",
		},
		{
			name:    "whole window in the past",
			start:   refNow.Add(-2 * day),
			end:     refNow.Add(-day),
			message: "booking cannot start in the past",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			owner := f.users.add("Owner")
			booker := f.users.add("Booker")
			item := f.items.add(owner, "Drill", true)

			_, err := f.bookingSvc.Create(context.Background(), booker.ID, BookingInput{
				ItemID: item.ID, Start: tt.start, End: tt.end,
			})
			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestCreateBooking_StartingExactlyNowIsAccepted(t *testing.T) {
	f := newFixture()
	owner := f.users.add("Owner")
	booker := f.users.add("Booker")
	item := f.items.add(owner, "Drill", true)

	_, err := f.bookingSvc.Create(context.Background(), booker.ID, BookingInput{
		ItemID: item.ID, Start: refNow, End: refNow.Add(time.Hour),
	})
	require.NoError(t, err)
}

func TestCreateBooking_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")
	owner := f.users.add("Owner")
	booker := f.users.add("Booker")
	item := f.items.add(owner, "Drill", true)

	booking, err := f.bookingSvc.Create(context.Background(), booker.ID, BookingInput{
		ItemID: item.ID, Start: refNow.Add(day), End: refNow.Add(2 * day),
	})
	require.NoError(t, err)
	assert.Contains(t, f.bookings.byID, booking.ID)
}

func newWaitingBooking(t *testing.T, f *fixture) (owner, booker *model.User, booking *model.Booking) {
	t.Helper()

	owner = f.users.add("Owner")
	booker = f.users.add("Booker")
	item := f.items.add(owner, "Drill", true)

	booking, err := f.bookingSvc.Create(context.Background(), booker.ID, BookingInput{
		ItemID: item.ID, Start: refNow.Add(day), End: refNow.Add(2 * day),
	})
	require.NoError(t, err)
	return owner, booker, booking
}

func TestDecide_ApproveTwiceFails(t *testing.T) {
	f := newFixture()
	owner, _, booking := newWaitingBooking(t, f)

	approved, err := f.bookingSvc.Decide(context.Background(), owner.ID, booking.ID, ptr(true))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusApproved, approved.Status)

	_, err = f.bookingSvc.Decide(context.Background(), owner.ID, booking.ID, ptr(true))
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.bookingSvc.Decide(context.Background(), owner.ID, booking.ID, ptr(false))
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, model.BookingStatusApproved, f.bookings.byID[booking.ID].Status)
}

func TestDecide_RejectedCanBeApproved(t *testing.T) {
	f := newFixture()
	owner, _, booking := newWaitingBooking(t, f)

	rejected, err := f.bookingSvc.Decide(context.Background(), owner.ID, booking.ID, ptr(false))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusRejected, rejected.Status)

	approved, err := f.bookingSvc.Decide(context.Background(), owner.ID, booking.ID, ptr(true))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusApproved, approved.Status)

	keys := make([]string, 0, len(f.publisher.events))
	for _, e := range f.publisher.events {
		keys = append(keys, e.key)
	}
	assert.Equal(t, []string{EventBookingCreated, EventBookingRejected, EventBookingApproved}, keys)
}

func TestDecide_RequiresOwner(t *testing.T) {
	f := newFixture()
	_, booker, booking := newWaitingBooking(t, f)
	stranger := f.users.add("Stranger")

	_, err := f.bookingSvc.Decide(context.Background(), booker.ID, booking.ID, ptr(true))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.bookingSvc.Decide(context.Background(), stranger.ID, booking.ID, ptr(true))
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, model.BookingStatusWaiting, f.bookings.byID[booking.ID].Status)
}

func TestDecide_MissingReferencesAndDecision(t *testing.T) {
	f := newFixture()
	owner, _, booking := newWaitingBooking(t, f)

	_, err := f.bookingSvc.Decide(context.Background(), owner.ID, 999, ptr(true))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.bookingSvc.Decide(context.Background(), 999, booking.ID, ptr(true))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.bookingSvc.Decide(context.Background(), owner.ID, booking.ID, nil)
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, "approval decision is missing", err.Error())
}

func TestDecide_RevalidatesWindowAgainstNow(t *testing.T) {
	f := newFixture()
	owner, _, booking := newWaitingBooking(t, f)

	// Бронирование уже началось к моменту решения
	f.clock.Advance(day + time.Hour)

	_, err := f.bookingSvc.Decide(context.Background(), owner.ID, booking.ID, ptr(true))
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, "booking cannot start in the past", err.Error())
	assert.Equal(t, model.BookingStatusWaiting, f.bookings.byID[booking.ID].Status)
}

// racingStore approves the booking right before the conditional update lands.
type racingStore struct {
	*fakeBookings
}

func (r racingStore) UpdateStatusUnlessApproved(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	r.byID[id].Status = model.BookingStatusApproved
	return r.fakeBookings.UpdateStatusUnlessApproved(ctx, id, status)
}

func TestDecide_LostRaceReportsAlreadyApproved(t *testing.T) {
	f := newFixture()
	owner, _, booking := newWaitingBooking(t, f)

	svc := NewBookingService(f.users, f.items, racingStore{f.bookings}, nil, nil, f.clock.Now)

	_, err := svc.Decide(context.Background(), owner.ID, booking.ID, ptr(false))
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, model.BookingStatusApproved, f.bookings.byID[booking.ID].Status)
}

func TestFindByID(t *testing.T) {
	f := newFixture()
	owner, booker, booking := newWaitingBooking(t, f)
	stranger := f.users.add("Stranger")

	got, err := f.bookingSvc.FindByID(context.Background(), booker.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	got, err = f.bookingSvc.FindByID(context.Background(), owner.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booker.ID, got.Booker.ID)

	for _, status := range []model.BookingStatus{model.BookingStatusWaiting, model.BookingStatusApproved, model.BookingStatusRejected} {
		f.bookings.byID[booking.ID].Status = status
		_, err = f.bookingSvc.FindByID(context.Background(), stranger.ID, booking.ID)
		require.ErrorIs(t, err, ErrNotFound, "status=%s", status)
	}

	_, err = f.bookingSvc.FindByID(context.Background(), booker.ID, 999)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.bookingSvc.FindByID(context.Background(), 999, booking.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture()
	_, _, booking := newWaitingBooking(t, f)

	require.NoError(t, f.bookingSvc.Delete(context.Background(), booking.ID))
	assert.NotContains(t, f.bookings.byID, booking.ID)

	err := f.bookingSvc.Delete(context.Background(), booking.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, "not_found", ErrorKind(notFound("x")))
	assert.Equal(t, "invalid_request", ErrorKind(invalid("y")))
	assert.Equal(t, "unexpected", ErrorKind(errors.New("z")))
}
