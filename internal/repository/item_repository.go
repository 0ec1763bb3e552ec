package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id, name, description, available, owner_id, request_id, created_at`

type ItemRepository struct {
	*base.Repository
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую вещь
func (r *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.RequestID,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("create item: %w", err)
	}

	return nil
}

// Update обновляет вещь
func (r *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID получает вещь по ID
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}

	return item, nil
}

// ListByOwner получает вещи владельца в порядке добавления
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "list items by owner", query, ownerID, limit, offset)
}

// Search ищет доступные вещи по подстроке в названии или описании
func (r *ItemRepository) Search(ctx context.Context, text string, offset, limit int) ([]*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE available = true
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "search items", query, text, limit, offset)
}

// ListByRequestIDs получает вещи, добавленные в ответ на запросы
func (r *ItemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*model.Item, error) {
	if len(requestIDs) == 0 {
		return []*model.Item{}, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY id
	`

	return r.list(ctx, "list items by requests", query, requestIDs)
}

func (r *ItemRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Item, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]*model.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

func scanItem(row pgx.Row) (*model.Item, error) {
	var item model.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&item.RequestID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
