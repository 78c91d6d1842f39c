package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectSlotsByArea = `SELECT id, slot_number, area, is_booked, booked_by, booked_by_username, parking_hours
		 FROM slots WHERE area = ? ORDER BY slot_number`
	selectUsername = "SELECT username FROM users WHERE id=? LIMIT 1"
	updateBooking  = `UPDATE slots
		 SET is_booked = 1, booked_by = ?, booked_by_username = ?, parking_hours = ?
		 WHERE id = ? AND is_booked = 0`
	selectIsBooked = "SELECT is_booked FROM slots WHERE id=? LIMIT 1"
)

func newSlotRepo(t *testing.T) (*SlotRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSlotRepo(db), mock
}

func slotColumns() []string {
	return []string{"id", "slot_number", "area", "is_booked", "booked_by", "booked_by_username", "parking_hours"}
}

func TestListByArea_OrderedAndNullHandling(t *testing.T) {
	repo, mock := newSlotRepo(t)

	rows := sqlmock.NewRows(slotColumns()).
		AddRow(1, 1, "Delhi", false, nil, nil, nil).
		AddRow(2, 2, "Delhi", true, 1, "user1", 3).
		AddRow(3, 3, "Delhi", false, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectSlotsByArea)).
		WithArgs("Delhi").
		WillReturnRows(rows)

	slots, err := repo.ListByArea(context.Background(), "Delhi")
	require.NoError(t, err)
	require.Len(t, slots, 3)

	// Free slots carry none of the booking fields; booked slots carry all.
	free := slots[0]
	assert.False(t, free.IsBooked)
	assert.Nil(t, free.BookedBy)
	assert.Nil(t, free.BookedByUsername)
	assert.Nil(t, free.ParkingHours)

	booked := slots[1]
	assert.True(t, booked.IsBooked)
	require.NotNil(t, booked.BookedBy)
	require.NotNil(t, booked.BookedByUsername)
	require.NotNil(t, booked.ParkingHours)
	assert.Equal(t, uint64(1), *booked.BookedBy)
	assert.Equal(t, "user1", *booked.BookedByUsername)
	assert.Equal(t, uint32(3), *booked.ParkingHours)

	// Ordering follows slot_number.
	assert.Equal(t, uint32(1), slots[0].SlotNumber)
	assert.Equal(t, uint32(2), slots[1].SlotNumber)
	assert.Equal(t, uint32(3), slots[2].SlotNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByArea_UnknownAreaIsEmpty(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSlotsByArea)).
		WithArgs("Atlantis").
		WillReturnRows(sqlmock.NewRows(slotColumns()))

	slots, err := repo.ListByArea(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBooking_Success(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsername)).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("navreet"))
	mock.ExpectExec(regexp.QuoteMeta(updateBooking)).
		WithArgs(uint64(42), "navreet", 2, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CommitBooking(context.Background(), 7, 42, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBooking_ConflictWhenAlreadyBooked(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsername)).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("latecomer"))
	// Conditional write touches zero rows: the slot is taken.
	mock.ExpectExec(regexp.QuoteMeta(updateBooking)).
		WithArgs(uint64(99), "latecomer", 1, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectIsBooked)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"is_booked"}).AddRow(true))

	err := repo.CommitBooking(context.Background(), 7, 99, 1)
	assert.ErrorIs(t, err, ErrSlotBooked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBooking_NotFound(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUsername)).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("navreet"))
	mock.ExpectExec(regexp.QuoteMeta(updateBooking)).
		WithArgs(uint64(42), "navreet", 2, uint64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectIsBooked)).
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"is_booked"}))

	err := repo.CommitBooking(context.Background(), 999, 42, 2)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBooking_InvalidHoursSkipsStorage(t *testing.T) {
	repo, mock := newSlotRepo(t)

	// No expectations registered: the validation failure must not reach
	// the database at all.
	err := repo.CommitBooking(context.Background(), 7, 42, 0)
	assert.ErrorIs(t, err, ErrInvalidHours)

	err = repo.CommitBooking(context.Background(), 7, 42, -3)
	assert.ErrorIs(t, err, ErrInvalidHours)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, slot_number, area, is_booked, booked_by, booked_by_username, parking_hours")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(slotColumns()))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
