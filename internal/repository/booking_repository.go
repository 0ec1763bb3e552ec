package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingFilter описывает выборку бронирований. Нулевые поля не фильтруют.
type BookingFilter struct {
	BookerID    int64
	OwnerID     int64
	ItemIDs     []int64
	Status      model.BookingStatus
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Offset      int
	Limit       int // 0 - без ограничения
}

const bookingColumns = `
	b.id, b.start_at, b.end_at, b.status, b.created_at,
	i.id, i.name, i.description, i.available, i.owner_id, i.request_id, i.created_at,
	u.id, u.name, u.email, u.telegram_id, u.created_at
`

const bookingFrom = `
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id
`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новое бронирование
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (start_at, end_at, status, item_id, booker_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.Start,
		booking.End,
		booking.Status,
		booking.ItemID,
		booking.BookerID,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с вещью и арендатором
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = $1`

	booking, err := scanBooking(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, новые по дате начала первыми
func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]*model.Booking, error) {
	var where base.Where
	if filter.BookerID != 0 {
		where.Add("b.booker_id = ?", filter.BookerID)
	}
	if filter.OwnerID != 0 {
		where.Add("i.owner_id = ?", filter.OwnerID)
	}
	if filter.ItemIDs != nil {
		where.Add("b.item_id = ANY(?)", filter.ItemIDs)
	}
	if filter.Status != "" {
		where.Add("b.status = ?", filter.Status)
	}
	if filter.StartBefore != nil {
		where.Add("b.start_at < ?", *filter.StartBefore)
	}
	if filter.StartAfter != nil {
		where.Add("b.start_at > ?", *filter.StartAfter)
	}
	if filter.EndBefore != nil {
		where.Add("b.end_at < ?", *filter.EndBefore)
	}
	if filter.EndAfter != nil {
		where.Add("b.end_at > ?", *filter.EndAfter)
	}

	query := `SELECT ` + bookingColumns + bookingFrom + where.SQL() + `
		ORDER BY b.start_at DESC, b.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + where.Arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ` + where.Arg(filter.Offset)
	}

	rows, err := r.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatusUnlessApproved меняет статус, если бронирование ещё не подтверждено.
// Возвращает false, если строка уже в статусе APPROVED (или исчезла).
func (r *BookingRepository) UpdateStatusUnlessApproved(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status <> $3
	`

	affected, err := r.ExecAffected(ctx, query, status, id, model.BookingStatusApproved)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}

	return affected > 0, nil
}

// Delete удаляет бронирование
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var (
		booking model.Booking
		item    model.Item
		booker  model.User
	)

	err := row.Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&booking.CreatedAt,
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&item.RequestID,
		&item.CreatedAt,
		&booker.ID,
		&booker.Name,
		&booker.Email,
		&booker.TelegramID,
		&booker.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ItemID = item.ID
	booking.BookerID = booker.ID
	booking.Item = &item
	booking.Booker = &booker

	return &booking, nil
}
