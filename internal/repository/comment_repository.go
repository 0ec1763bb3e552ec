package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	*base.Repository
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет отзыв о вещи
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (text, item_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, comment.Text, comment.ItemID, comment.AuthorID, comment.Created).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// ListByItemIDs получает отзывы для набора вещей
func (r *CommentRepository) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*model.Comment, error) {
	if len(itemIDs) == 0 {
		return []*model.Comment{}, nil
	}

	query := `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ANY($1)
		ORDER BY c.created_at, c.id
	`

	rows, err := r.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.ItemID,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.Created,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}
