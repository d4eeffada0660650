package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type EventResponse struct {
	ID               string             `json:"id"`
	OrganizerID      string             `json:"organizer_id"`
	Title            string             `json:"title"`
	Description      *string            `json:"description,omitempty"`
	Date             time.Time          `json:"date"`
	Location         string             `json:"location"`
	Category         string             `json:"category"`
	Image            *string            `json:"image,omitempty"`
	TicketPrice      float64            `json:"ticket_price"`
	TotalTickets     int                `json:"total_tickets"`
	RemainingTickets int                `json:"remaining_tickets"`
	Status           entity.EventStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
}

type EventAnalyticsResponse struct {
	EventID          string  `json:"event_id"`
	Title            string  `json:"title"`
	TotalTickets     int     `json:"total_tickets"`
	RemainingTickets int     `json:"remaining_tickets"`
	TicketsSold      int     `json:"tickets_sold"`
	Revenue          float64 `json:"revenue"`
	OccupancyRate    float64 `json:"occupancy_rate"`
}

func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:               event.ID.String(),
		OrganizerID:      event.OrganizerID.String(),
		Title:            event.Title,
		Description:      event.Description,
		Date:             event.Date,
		Location:         event.Location,
		Category:         event.Category,
		Image:            event.Image,
		TicketPrice:      event.TicketPrice,
		TotalTickets:     event.TotalTickets,
		RemainingTickets: event.RemainingTickets,
		Status:           event.Status,
		CreatedAt:        event.CreatedAt,
	}
}
