package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusDeclined EventStatus = "declined"
)

// Event carries both catalog metadata and the ticket inventory counters.
// RemainingTickets is mutated only through the event repository's atomic
// reserve/release operations, never by plain entity updates.
type Event struct {
	Base
	OrganizerID      uuid.UUID   `db:"organizer_id"`
	Title            string      `db:"title"`
	Description      *string     `db:"description"`
	Date             time.Time   `db:"date"`
	Location         string      `db:"location"`
	Category         string      `db:"category"`
	Image            *string     `db:"image"`
	TicketPrice      float64     `db:"ticket_price"`
	TotalTickets     int         `db:"total_tickets"`
	RemainingTickets int         `db:"remaining_tickets"`
	Status           EventStatus `db:"status"`
}
