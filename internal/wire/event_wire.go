package wire

import (
	"net/http"

	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	invalidate := middleware.InvalidateCache(config.Cache, rdb)

	// ==================== PUBLIC ROUTES (cached) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Cache(config.Cache, rdb, log))

		// GET /api/v1/events - Browse approved events
		r.Get("/api/v1/events", eventHandler.Browse)

		// GET /api/v1/events/{id} - Event detail
		r.Get("/api/v1/events/{id}", eventHandler.GetByID)
	})

	// ==================== ORGANIZER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleOrganizer), string(entity.RoleAdmin)))

		// GET /api/v1/events/mine - Organizer's own events
		r.Get("/api/v1/events/mine", eventHandler.ListMine)

		// GET /api/v1/events/{id}/analytics - Sales figures for own event
		r.Get("/api/v1/events/{id}/analytics", eventHandler.Analytics)

		r.Group(func(r chi.Router) {
			r.Use(afterWrite(invalidate))

			// POST /api/v1/events - Submit a new event (starts pending)
			r.Post("/api/v1/events", eventHandler.Create)

			// PUT /api/v1/events/{id} - Edit own event
			r.Put("/api/v1/events/{id}", eventHandler.Update)

			// DELETE /api/v1/events/{id} - Remove own event and its bookings
			r.Delete("/api/v1/events/{id}", eventHandler.Delete)
		})
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/v1/admin/events", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))
		r.Use(afterWrite(invalidate))

		// PUT /api/v1/admin/events/{id}/approve - Open event for booking
		r.Put("/{id}/approve", eventHandler.Approve)

		// PUT /api/v1/admin/events/{id}/reject - Decline a pending event
		r.Put("/{id}/reject", eventHandler.Reject)
	})
}

// afterWrite runs the cache invalidation hook once the handler has
// finished, so stale listings disappear right after a mutation.
func afterWrite(invalidate func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			invalidate()
		})
	}
}
