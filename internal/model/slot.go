package model

// Slot describes a bookable parking space. Slots are uniquely
// identified by their area together with their display number.
// When a slot is free the three booking columns are NULL; when it
// is booked all three are set in the same write. BookedByUsername
// is a denormalized copy of the booker's name resolved at commit
// time so that listings need no JOIN.
//
// Fields:
//  ID               – primary key identifier.
//  SlotNumber       – display number, unique within an area.
//  Area             – location grouping (city name).
//  IsBooked         – whether the slot is currently taken.
//  BookedBy         – user who booked the slot (nil when free).
//  BookedByUsername – display name of the booker (nil when free).
//  ParkingHours     – requested parking duration (nil when free).
type Slot struct {
	ID               uint64  `json:"id"`                 // slots.id
	SlotNumber       uint32  `json:"slot_number"`        // slots.slot_number
	Area             string  `json:"area"`               // slots.area
	IsBooked         bool    `json:"is_booked"`          // slots.is_booked
	BookedBy         *uint64 `json:"booked_by"`          // slots.booked_by (nullable)
	BookedByUsername *string `json:"booked_by_username"` // slots.booked_by_username (nullable)
	ParkingHours     *uint32 `json:"parking_hours"`      // slots.parking_hours (nullable)
}
