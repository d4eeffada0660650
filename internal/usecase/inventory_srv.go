package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService is the only mutation path for ticket counters.
// Every operation on a single event is atomic: concurrent reserves
// against the same event serialize at the database row, so remaining
// never goes negative and never exceeds total.
type InventoryService interface {
	Reserve(ctx context.Context, eventID uuid.UUID, quantity int) error
	Release(ctx context.Context, eventID uuid.UUID, quantity int) error
	ResizeTotal(ctx context.Context, eventID uuid.UUID, newTotal int) error
}

type inventoryService struct {
	events  repository.EventRepository
	timeout time.Duration
	log     *zap.Logger
}

func NewInventoryService(events repository.EventRepository, config *utils.Config, log *zap.Logger) InventoryService {
	return &inventoryService{
		events:  events,
		timeout: config.Booking.ReserveTimeout,
		log:     log.With(zap.String("service", "inventory")),
	}
}

func (s *inventoryService) Reserve(ctx context.Context, eventID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.events.ReserveTickets(opCtx, eventID, quantity)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.log.Warn("Reserve timed out",
				zap.String("event_id", eventID.String()),
				zap.Int("quantity", quantity),
			)
			return ErrTimeout
		}
		return fmt.Errorf("reserve %d tickets for event %s: %w", quantity, eventID.String(), err)
	}

	if !ok {
		// The conditional update matched no row: either the event is
		// gone or remaining is below the requested quantity.
		event, err := s.events.FindByID(opCtx, eventID)
		if err != nil {
			return fmt.Errorf("probe event %s after failed reserve: %w", eventID.String(), err)
		}
		if event == nil {
			return ErrEventNotFound
		}
		return ErrInsufficientInventory
	}

	s.log.Info("Tickets reserved",
		zap.String("event_id", eventID.String()),
		zap.Int("quantity", quantity),
	)
	return nil
}

func (s *inventoryService) Release(ctx context.Context, eventID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.events.ReleaseTickets(opCtx, eventID, quantity)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return fmt.Errorf("release %d tickets for event %s: %w", quantity, eventID.String(), err)
	}

	if !ok {
		return ErrEventNotFound
	}

	s.log.Info("Tickets released",
		zap.String("event_id", eventID.String()),
		zap.Int("quantity", quantity),
	)
	return nil
}

func (s *inventoryService) ResizeTotal(ctx context.Context, eventID uuid.UUID, newTotal int) error {
	if newTotal < 1 {
		return ErrInvalidQuantity
	}

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.events.ResizeTotal(opCtx, eventID, newTotal)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrEventNotFound
		case errors.Is(err, repository.ErrBelowBooked):
			return ErrResizeBelowBooked
		case errors.Is(err, context.DeadlineExceeded):
			return ErrTimeout
		default:
			return fmt.Errorf("resize event %s to %d tickets: %w", eventID.String(), newTotal, err)
		}
	}

	s.log.Info("Event capacity resized",
		zap.String("event_id", eventID.String()),
		zap.Int("new_total", newTotal),
	)
	return nil
}
