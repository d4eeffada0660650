package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, role, bookingID string) error
}

type bookingService struct {
	repo      *repository.Repository
	inventory InventoryService
	config    *utils.Config
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, inventory InventoryService, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		inventory: inventory,
		config:    config,
		log:       log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves inventory first, then writes the booking row.
// If the write fails the reservation is compensated with a bounded
// number of release retries. A compensation that still fails after the
// last retry is surfaced as ErrCompensationFailed so it can be alerted
// on: at that point the counter has leaked reserved tickets.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", ErrValidation, userID)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID %s", ErrValidation, req.EventID)
	}

	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		s.log.Error("Failed to load event for booking", zap.Error(err), zap.String("event_id", req.EventID))
		return nil, fmt.Errorf("load event %s: %w", req.EventID, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.Status != entity.EventStatusApproved {
		return nil, ErrEventNotAvailable
	}
	if event.Date.Before(time.Now()) {
		return nil, ErrEventExpired
	}

	if err := s.inventory.Reserve(ctx, eventID, req.Quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:  utils.GenerateBookingRef(),
		UserID:     userUUID,
		EventID:    eventID,
		Quantity:   req.Quantity,
		UnitPrice:  event.TicketPrice,
		TotalPrice: event.TicketPrice * float64(req.Quantity),
		Status:     entity.BookingStatusConfirmed,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to persist booking, compensating reservation",
			zap.Error(err),
			zap.String("event_id", req.EventID),
			zap.String("user_id", userID),
			zap.Int("quantity", req.Quantity),
		)

		if compErr := s.compensate(ctx, eventID, req.Quantity); compErr != nil {
			return nil, compErr
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("event_id", req.EventID),
		zap.String("user_id", userID),
		zap.Int("quantity", req.Quantity),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking, event)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", ErrValidation, userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		event, _ := s.repo.Event.FindByID(ctx, booking.EventID)
		bookingResponses[i] = response.BookingToResponse(booking, event)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadOwnedBooking(ctx, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	event, _ := s.repo.Event.FindByID(ctx, booking.EventID)
	resp := response.BookingToResponse(booking, event)
	return &resp, nil
}

// CancelBooking releases the tickets before flipping the status so a
// crash between the two steps leaves inventory available rather than
// stranded. The flip is conditional on the row still being confirmed,
// so of two racing cancels exactly one wins; the loser (and any failed
// flip) reverts its release.
func (s *bookingService) CancelBooking(ctx context.Context, userID, role, bookingID string) error {
	booking, err := s.loadOwnedBooking(ctx, userID, role, bookingID)
	if err != nil {
		return err
	}

	if booking.Status == entity.BookingStatusCanceled {
		return ErrAlreadyCanceled
	}

	released := true
	if err := s.inventory.Release(ctx, booking.EventID, booking.Quantity); err != nil {
		// A deleted event has no counter left to credit; the booking
		// still gets canceled.
		if !errors.Is(err, ErrEventNotFound) {
			return err
		}
		released = false
	}

	flipped, err := s.repo.Booking.MarkCanceled(ctx, booking.ID)
	if err != nil {
		s.log.Error("Failed to mark booking canceled, reverting release",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		if released {
			if revErr := s.revertRelease(ctx, booking); revErr != nil {
				return revErr
			}
		}
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !flipped {
		// A concurrent cancel won the flip; take this call's credit back
		// so the tickets are released exactly once.
		if released {
			if revErr := s.revertRelease(ctx, booking); revErr != nil {
				return revErr
			}
		}
		return ErrAlreadyCanceled
	}

	s.log.Info("Booking canceled",
		zap.String("booking_id", bookingID),
		zap.String("reference", booking.Reference),
		zap.Int("quantity", booking.Quantity),
	)
	return nil
}

func (s *bookingService) loadOwnedBooking(ctx context.Context, userID, role, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.UserID.String() != userID && role != string(entity.RoleAdmin) {
		return nil, ErrForbidden
	}

	return booking, nil
}

// revertRelease re-reserves tickets credited by a cancel whose status
// flip did not land.
func (s *bookingService) revertRelease(ctx context.Context, booking *entity.Booking) error {
	if err := s.inventory.Reserve(ctx, booking.EventID, booking.Quantity); err != nil {
		s.log.Error("Failed to revert ticket release after cancel failure",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("event_id", booking.EventID.String()),
			zap.Int("quantity", booking.Quantity),
		)
		return ErrCompensationFailed
	}
	return nil
}

func (s *bookingService) compensate(ctx context.Context, eventID uuid.UUID, quantity int) error {
	retries := s.config.Booking.CompensationRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		lastErr = s.inventory.Release(ctx, eventID, quantity)
		if lastErr == nil || errors.Is(lastErr, ErrEventNotFound) {
			return nil
		}
		s.log.Warn("Compensating release failed",
			zap.Error(lastErr),
			zap.String("event_id", eventID.String()),
			zap.Int("quantity", quantity),
			zap.Int("attempt", attempt),
		)
	}

	s.log.Error("Compensation exhausted, tickets leaked",
		zap.Error(lastErr),
		zap.String("event_id", eventID.String()),
		zap.Int("quantity", quantity),
		zap.Int("retries", retries),
	)
	return ErrCompensationFailed
}
