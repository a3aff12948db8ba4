package storage

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return sqlx.NewDb(db, "postgres"), mock
}

func TestSaveEvent(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO cart_events").
		WillReturnResult(sqlmock.NewResult(1, 1))

	s := NewEventStorage(db, slog.Default())
	event := &domain.CartEvent{
		UserID:    uuid.New(),
		ProductID: 42,
		Action:    domain.CartActionAdd,
		Quantity:  2,
		CreatedAt: time.Now(),
	}

	err := s.SaveEvent(context.Background(), event)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEventDBError(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO cart_events").
		WillReturnError(errors.New("connection reset"))

	s := NewEventStorage(db, slog.Default())
	err := s.SaveEvent(context.Background(), &domain.CartEvent{
		UserID: uuid.New(),
		Action: domain.CartActionRemove,
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
