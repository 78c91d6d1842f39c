// Package queue defines message payloads exchanged over the message broker.
package queue

// SlotBookedEvent is published when a slot booking commit succeeds. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type SlotBookedEvent struct {
	SlotID       uint64 `json:"slot_id"`
	SlotNumber   uint32 `json:"slot_number"`
	Area         string `json:"area"`
	UserID       uint64 `json:"user_id"`
	Username     string `json:"username"`
	ParkingHours int    `json:"parking_hours"`
	BookedAt     string `json:"booked_at"`
}
