// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish between
// failure scenarios without inspecting error strings: ErrSlotBooked marks
// a booking attempt that lost the race for a slot, ErrSlotNotFound marks
// a commit against a slot id that does not exist, and ErrUserExists marks
// a registration against a taken username or email. ErrInvalidHours is a
// validation failure raised before any storage access.
package repository

import "errors"

// ErrUserExists is returned when registration collides with an existing
// username or email. Handlers translate this into HTTP 400 with the
// "User already exists" message of the public API contract.
var ErrUserExists = errors.New("user already exists")

// ErrSlotNotFound is returned when a commit references a slot id with no
// backing row. Handlers translate this into HTTP 404.
var ErrSlotNotFound = errors.New("slot not found")

// ErrSlotBooked is returned when the conditional booking write affects
// zero rows because the slot is already taken. Exactly one of any set of
// concurrent commits on the same slot avoids this error. Handlers
// translate it into HTTP 400 with "Slot already booked".
var ErrSlotBooked = errors.New("slot already booked")

// ErrInvalidHours is returned when the requested parking duration is not
// a positive integer. The check runs before any storage round trip.
var ErrInvalidHours = errors.New("parking hours must be a positive integer")
