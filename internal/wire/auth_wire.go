package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/v1/auth", func(r chi.Router) {
		// POST /api/v1/auth/register - Create a new account
		r.Post("/register", authHandler.Register)

		// POST /api/v1/auth/login - Exchange credentials for a JWT
		r.Post("/login", authHandler.Login)

		// POST /api/v1/auth/forgot-password - Request a reset OTP
		r.Post("/forgot-password", authHandler.ForgotPassword)

		// POST /api/v1/auth/reset-password - Redeem OTP for a new password
		r.Post("/reset-password", authHandler.ResetPassword)
	})
}
