package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/navreet111/quickpark/internal/model"
)

// SlotRepo is the authoritative store of booking state. Every booking
// decision goes through CommitBooking; listings are read-only and carry
// no locks. All methods operate in UTC and respect the caller's context.
type SlotRepo struct{ DB *sql.DB }

func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{DB: db} }

// ListByArea returns all slots for an area ordered by slot_number. An
// unknown area yields an empty slice, not an error.
func (r *SlotRepo) ListByArea(ctx context.Context, area string) ([]model.Slot, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, slot_number, area, is_booked, booked_by, booked_by_username, parking_hours
		 FROM slots WHERE area = ? ORDER BY slot_number`,
		area)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]model.Slot, 0, 16)
	for rows.Next() {
		var (
			s        model.Slot
			bookedBy sql.NullInt64
			username sql.NullString
			hours    sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.SlotNumber, &s.Area, &s.IsBooked, &bookedBy, &username, &hours); err != nil {
			return nil, err
		}
		if bookedBy.Valid {
			v := uint64(bookedBy.Int64)
			s.BookedBy = &v
		}
		if username.Valid {
			v := username.String
			s.BookedByUsername = &v
		}
		if hours.Valid {
			v := uint32(hours.Int64)
			s.ParkingHours = &v
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetByID fetches a single slot row. Used by handlers to echo details
// back after a booking; a missing row maps to ErrSlotNotFound.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (model.Slot, error) {
	var (
		s        model.Slot
		bookedBy sql.NullInt64
		username sql.NullString
		hours    sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, slot_number, area, is_booked, booked_by, booked_by_username, parking_hours
		 FROM slots WHERE id = ? LIMIT 1`,
		id).Scan(&s.ID, &s.SlotNumber, &s.Area, &s.IsBooked, &bookedBy, &username, &hours)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Slot{}, ErrSlotNotFound
	}
	if err != nil {
		return model.Slot{}, err
	}
	if bookedBy.Valid {
		v := uint64(bookedBy.Int64)
		s.BookedBy = &v
	}
	if username.Valid {
		v := username.String
		s.BookedByUsername = &v
	}
	if hours.Valid {
		v := uint32(hours.Int64)
		s.ParkingHours = &v
	}
	return s, nil
}

// CommitBooking marks a slot as booked by the given user. The booking
// columns are written in a single conditional UPDATE guarded on
// is_booked = 0, so that of any number of concurrent commits on the
// same slot exactly one affects a row; the rest observe ErrSlotBooked.
// A separate read-check-write sequence would admit a lost update
// between two concurrent bookers and must not be reintroduced here.
//
// parkingHours must be positive; ErrInvalidHours is returned before any
// storage access otherwise. The booker's username is resolved from the
// users table so the denormalized copy on the slot is never stale at
// commit time.
func (r *SlotRepo) CommitBooking(ctx context.Context, slotID, userID uint64, parkingHours int) error {
	if parkingHours <= 0 {
		return ErrInvalidHours
	}

	var username string
	err := r.DB.QueryRowContext(ctx,
		"SELECT username FROM users WHERE id=? LIMIT 1", userID).Scan(&username)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx,
		`UPDATE slots
		 SET is_booked = 1, booked_by = ?, booked_by_username = ?, parking_hours = ?
		 WHERE id = ? AND is_booked = 0`,
		userID, username, parkingHours, slotID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// Zero rows affected: the slot is either taken or missing. Re-read
	// once to pick the right sentinel; the answer only affects the error
	// reported, not the stored state.
	var isBooked bool
	err = r.DB.QueryRowContext(ctx,
		"SELECT is_booked FROM slots WHERE id=? LIMIT 1", slotID).Scan(&isBooked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return err
	}
	return ErrSlotBooked
}
