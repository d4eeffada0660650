package request

import "time"

type CreateEventRequest struct {
	Title        string    `json:"title" validate:"required,min=3,max=200"`
	Description  *string   `json:"description,omitempty"`
	Date         time.Time `json:"date" validate:"required"`
	Location     string    `json:"location" validate:"required,min=2,max=200"`
	Category     string    `json:"category" validate:"required,min=2,max=100"`
	Image        *string   `json:"image,omitempty" validate:"omitempty,url"`
	TicketPrice  float64   `json:"ticket_price" validate:"gte=0"`
	TotalTickets int       `json:"total_tickets" validate:"required,min=1"`
}

// UpdateEventRequest carries only the fields the organizer wants to
// change. TotalTickets goes through the inventory resize path, not a
// plain column update.
type UpdateEventRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description  *string    `json:"description,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	Location     *string    `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Category     *string    `json:"category,omitempty" validate:"omitempty,min=2,max=100"`
	Image        *string    `json:"image,omitempty" validate:"omitempty,url"`
	TicketPrice  *float64   `json:"ticket_price,omitempty" validate:"omitempty,gte=0"`
	TotalTickets *int       `json:"total_tickets,omitempty" validate:"omitempty,min=1"`
}

type BrowseEventsRequest struct {
	PaginatedRequest
	Category string `json:"category,omitempty"`
}
