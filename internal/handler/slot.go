package handler

import (
	"context"  // detached context for the fire-and-forget event publish
	"errors"   // for errors.Is comparisons
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // working with timestamps

	"github.com/labstack/echo/v4"

	"github.com/navreet111/quickpark/internal/queue"
	"github.com/navreet111/quickpark/internal/repository"
)

// SlotHandler serves the slot browser and the booking commit. Booking
// assumes JWT authentication has already run; listing is public. The
// PublishBooked hook is called after a successful commit with a
// slot.booked event and may be nil when no broker is configured.
type SlotHandler struct {
	Slots         *repository.SlotRepo
	PublishBooked func(ctx context.Context, ev queue.SlotBookedEvent) error
}

func NewSlotHandler(slots *repository.SlotRepo) *SlotHandler {
	if slots == nil {
		panic("nil repository passed to NewSlotHandler")
	}
	return &SlotHandler{Slots: slots}
}

// ListByArea handles GET /slots/:area. It returns every slot in the
// area ordered by slot number; an unknown area yields an empty array.
func (h *SlotHandler) ListByArea(c echo.Context) error {
	area := c.Param("area")
	if area == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "area is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.Slots.ListByArea(ctx, area)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, slots)
}

type bookReq struct {
	ParkingHours int `json:"parkingHours"`
}

// Book handles POST /book/:slotId. The booker is taken from the JWT,
// never from the body, so one user cannot book on behalf of another.
// The commit itself is a single conditional write in the repository;
// this handler only maps its outcome onto the API contract:
// 404 "Slot not found", 400 "Slot already booked", 400 invalid hours.
func (h *SlotHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, err := strconv.ParseUint(c.Param("slotId"), 10, 64)
	if err != nil || slotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Slots.CommitBooking(ctx, slotID, userID, req.ParkingHours); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidHours):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "parkingHours must be a positive integer"})
		case errors.Is(err, repository.ErrSlotNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Slot not found"})
		case errors.Is(err, repository.ErrSlotBooked):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Slot already booked"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
	}

	if h.PublishBooked != nil {
		if slot, err := h.Slots.GetByID(ctx, slotID); err == nil {
			ev := queue.SlotBookedEvent{
				SlotID:       slot.ID,
				SlotNumber:   slot.SlotNumber,
				Area:         slot.Area,
				UserID:       userID,
				ParkingHours: req.ParkingHours,
				BookedAt:     time.Now().UTC().Format(time.RFC3339),
			}
			if slot.BookedByUsername != nil {
				ev.Username = *slot.BookedByUsername
			}
			// Publishing is best effort; a broker outage must not fail
			// a booking that is already committed.
			go func() { _ = h.PublishBooked(context.Background(), ev) }()
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Slot booked successfully"})
}
