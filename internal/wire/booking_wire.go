package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/v1/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// POST /api/v1/bookings - Reserve tickets; standard users only,
		// rate limited per caller
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, string(entity.RoleStandard)))
			r.Use(middleware.RateLimit(config.RateLimit, rdb, log))
			r.Post("/", bookingHandler.CreateBooking)
		})

		// GET /api/v1/bookings - Own booking history
		r.Get("/", bookingHandler.GetUserBookings)

		// GET /api/v1/bookings/{id} - Booking detail (owner or admin)
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// DELETE /api/v1/bookings/{id} - Cancel and release tickets
		r.Delete("/{id}", bookingHandler.CancelBooking)
	})
}
