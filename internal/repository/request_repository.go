package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestColumns = `id, description, requestor_id, created_at`

type RequestRepository struct {
	*base.Repository
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт запрос на вещь
func (r *RequestRepository) Create(ctx context.Context, request *model.Request) error {
	query := `
		INSERT INTO requests (description, requestor_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, request.Description, request.RequestorID, request.Created).Scan(&request.ID)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return nil
}

// GetByID получает запрос по ID
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	request, err := scanRequest(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request by id: %w", err)
	}

	return request, nil
}

// ListByRequestor получает запросы пользователя, новые первыми
func (r *RequestRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]*model.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE requestor_id = $1
		ORDER BY created_at DESC, id DESC
	`

	return r.list(ctx, "list requests by requestor", query, requestorID)
}

// ListOthers получает запросы остальных пользователей, новые первыми
func (r *RequestRepository) ListOthers(ctx context.Context, userID int64, offset, limit int) ([]*model.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE requestor_id <> $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "list other requests", query, userID, limit, offset)
}

// Delete удаляет запрос
func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *RequestRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Request, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	requests := make([]*model.Request, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return requests, nil
}

func scanRequest(row pgx.Row) (*model.Request, error) {
	var request model.Request
	err := row.Scan(
		&request.ID,
		&request.Description,
		&request.RequestorID,
		&request.Created,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}
