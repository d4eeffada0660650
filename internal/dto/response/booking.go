package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	Reference  string               `json:"reference"`
	UserID     string               `json:"user_id"`
	EventID    string               `json:"event_id"`
	EventTitle string               `json:"event_title,omitempty"`
	EventDate  *time.Time           `json:"event_date,omitempty"`
	Quantity   int                  `json:"quantity"`
	UnitPrice  float64              `json:"unit_price"`
	TotalPrice float64              `json:"total_price"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, event *entity.Event) BookingResponse {
	resp := BookingResponse{
		ID:         booking.ID.String(),
		Reference:  booking.Reference,
		UserID:     booking.UserID.String(),
		EventID:    booking.EventID.String(),
		Quantity:   booking.Quantity,
		UnitPrice:  booking.UnitPrice,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}

	if event != nil {
		resp.EventTitle = event.Title
		date := event.Date
		resp.EventDate = &date
	}

	return resp
}
