package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// InitSchema creates the users and slots tables when they do not exist.
// The UNIQUE (slot_number, area) constraint backs the invariant that no
// two slots share a number within an area; the three nullable booking
// columns are only ever written together by the booking commit.
func InitSchema(ctx context.Context, db *sql.DB) error {
	const users = `
	CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(100) NOT NULL UNIQUE,
		email         VARCHAR(150) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`
	if _, err := db.ExecContext(ctx, users); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	const slots = `
	CREATE TABLE IF NOT EXISTS slots (
		id                 BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		slot_number        INT UNSIGNED NOT NULL,
		area               VARCHAR(100) NOT NULL,
		is_booked          BOOLEAN NOT NULL DEFAULT FALSE,
		booked_by          BIGINT UNSIGNED NULL,
		booked_by_username VARCHAR(100) NULL,
		parking_hours      INT UNSIGNED NULL,
		UNIQUE KEY uq_slot_area (slot_number, area),
		CONSTRAINT fk_slots_booked_by FOREIGN KEY (booked_by) REFERENCES users(id)
	) ENGINE=InnoDB`
	if _, err := db.ExecContext(ctx, slots); err != nil {
		return fmt.Errorf("create slots table: %w", err)
	}
	return nil
}

// seedAreas lists the demo cities, each of which gets slots 1..10.
var seedAreas = []string{"Delhi", "Mumbai", "Bengaluru", "Chandigarh"}

// SeedSlots inserts the demo slot grid (every area gets ten free slots).
// INSERT IGNORE keeps the seed idempotent against the unique
// (slot_number, area) key, so restarts never duplicate or reset rows —
// in particular an already-booked slot keeps its booking.
func SeedSlots(ctx context.Context, db *sql.DB) error {
	var (
		values []string
		args   []interface{}
	)
	for _, area := range seedAreas {
		for n := 1; n <= 10; n++ {
			values = append(values, "(?, ?)")
			args = append(args, n, area)
		}
	}
	query := "INSERT IGNORE INTO slots (slot_number, area) VALUES " + strings.Join(values, ",")
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed slots: %w", err)
	}
	return nil
}
