package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// Booking is a ledger entry: created confirmed, and the only permitted
// mutation is the one-way transition to canceled. Prices are snapshots
// taken at booking time.
type Booking struct {
	Base
	Reference  string        `db:"reference"`
	UserID     uuid.UUID     `db:"user_id"`
	EventID    uuid.UUID     `db:"event_id"`
	Quantity   int           `db:"quantity"`
	UnitPrice  float64       `db:"unit_price"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}
