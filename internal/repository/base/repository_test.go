package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereBuildsPositionalPlaceholders(t *testing.T) {
	var w Where
	require.Equal(t, "", w.SQL())

	w.Add("b.booker_id = ?", int64(7))
	w.Add("b.status = ?", "WAITING")
	limit := w.Arg(10)

	assert.Equal(t, "WHERE b.booker_id = $1 AND b.status = $2", w.SQL())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{int64(7), "WAITING", 10}, w.Args())
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get booking: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(errors.New("boom")))

	unique := fmt.Errorf("create user: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	assert.True(t, IsForeignKeyViolation(fk))
}
