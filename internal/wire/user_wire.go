package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// GET /api/v1/users/me - Own profile
		r.Get("/me", userHandler.GetProfile)

		// PUT /api/v1/users/me - Update own profile
		r.Put("/me", userHandler.UpdateProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/v1/admin/users", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))

		// GET /api/v1/admin/users - List all users (admin)
		r.Get("/", userHandler.GetAllUsers)

		// PUT /api/v1/admin/users/{id}/role - Change a user's role (admin)
		r.Put("/{id}/role", userHandler.UpdateUserRole)

		// DELETE /api/v1/admin/users/{id} - Remove a user (admin)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
