package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	pid := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"product_id", "quantity", "name", "price", "offer_price", "stock", "images"}).
			AddRow(pid.String(), 2, "Urea", 120, 100, 5, "{https://img/u.png}")

		mock.ExpectQuery("SELECT (.+) FROM cart_items c JOIN products p").
			WithArgs(uint(4)).
			WillReturnRows(rows)

		lines, err := repo.GetLines(context.Background(), 4)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, pid, lines[0].ProductID)
		assert.Equal(t, int64(100), lines[0].UnitPrice())
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cart_items").
			WillReturnError(errors.New("db down"))

		_, err := repo.GetLines(context.Background(), 4)
		assert.Error(t, err)
	})
}

func TestRepository_Replace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	a, b := uuid.New(), uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cart_items WHERE user_id = \\$1").
			WithArgs(uint(4)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("INSERT INTO cart_items").
			WithArgs(uint(4), a, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO cart_items").
			WithArgs(uint(4), b, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Replace(context.Background(), 4, []Item{{ProductID: a, Quantity: 1}, {ProductID: b, Quantity: 2}})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertFailsRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cart_items").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO cart_items").
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		err := repo.Replace(context.Background(), 4, []Item{{ProductID: a, Quantity: 1}})
		assert.ErrorIs(t, err, ErrFailedReplaceCart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	pid := uuid.New()

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id = \\$1 AND product_id = \\$2").
		WithArgs(uint(4), pid).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Remove(context.Background(), 4, pid), ErrCartItemNotFound)
}

func TestRepository_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items WHERE user_id = \\$1").
			WithArgs(uint(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Clear(context.Background(), 4))
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WillReturnError(errors.New("db down"))

		assert.ErrorIs(t, repo.Clear(context.Background(), 4), ErrFailedClearCart)
	})
}
