package usecase

import (
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Event     EventService
	Booking   BookingService
	Inventory InventoryService
}

func NewService(repo *repository.Repository, config *utils.Config, mailer *utils.Mailer, log *zap.Logger) *Service {
	inventory := NewInventoryService(repo.Event, config, log)

	return &Service{
		Auth:      NewAuthService(repo, config, mailer, log),
		User:      NewUserService(repo.User, log),
		Event:     NewEventService(repo, inventory, log),
		Booking:   NewBookingService(repo, inventory, config, log),
		Inventory: inventory,
	}
}
