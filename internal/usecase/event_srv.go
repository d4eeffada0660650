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

type EventService interface {
	// Public endpoints
	Browse(ctx context.Context, req *request.BrowseEventsRequest) (*response.PaginatedResponse[response.EventResponse], error)
	GetByID(ctx context.Context, eventID string) (*response.EventResponse, error)

	// Organizer endpoints
	Create(ctx context.Context, organizerID string, req *request.CreateEventRequest) (*response.EventResponse, error)
	Update(ctx context.Context, organizerID, role, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error)
	Delete(ctx context.Context, organizerID, role, eventID string) error
	ListByOrganizer(ctx context.Context, organizerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	Analytics(ctx context.Context, organizerID, role, eventID string) (*response.EventAnalyticsResponse, error)

	// Admin endpoints
	Approve(ctx context.Context, eventID string) error
	Reject(ctx context.Context, eventID string) error
}

type eventService struct {
	repo      *repository.Repository
	inventory InventoryService
	log       *zap.Logger
}

func NewEventService(repo *repository.Repository, inventory InventoryService, log *zap.Logger) EventService {
	return &eventService{
		repo:      repo,
		inventory: inventory,
		log:       log.With(zap.String("service", "event")),
	}
}

func (s *eventService) Browse(ctx context.Context, req *request.BrowseEventsRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	events, err := s.repo.Event.FindApproved(ctx, req.Category, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to browse events", zap.Error(err), zap.String("category", req.Category))
		return nil, fmt.Errorf("browse events: %w", err)
	}

	total, err := s.repo.Event.CountApproved(ctx, req.Category)
	if err != nil {
		s.log.Error("Failed to count approved events", zap.Error(err))
		return nil, fmt.Errorf("count approved events: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event)
	}

	return response.NewPaginatedResponse(eventResponses, req.Page, req.Limit(), total), nil
}

func (s *eventService) GetByID(ctx context.Context, eventID string) (*response.EventResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) Create(ctx context.Context, organizerID string, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	organizerUUID, err := uuid.Parse(organizerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid organizer ID %s", ErrValidation, organizerID)
	}

	if req.Date.Before(time.Now()) {
		return nil, ErrEventExpired
	}

	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrganizerID:      organizerUUID,
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Location:         req.Location,
		Category:         req.Category,
		Image:            req.Image,
		TicketPrice:      req.TicketPrice,
		TotalTickets:     req.TotalTickets,
		RemainingTickets: req.TotalTickets,
		Status:           entity.EventStatusPending,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event", zap.Error(err), zap.String("organizer_id", organizerID))
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("organizer_id", organizerID),
		zap.String("title", event.Title),
		zap.Int("total_tickets", event.TotalTickets),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

// Update applies catalog edits directly; a ticket-capacity change is
// routed through the inventory resize path so booked tickets are
// preserved and shrinking below sold quantity is rejected.
func (s *eventService) Update(ctx context.Context, organizerID, role, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	event, err := s.loadOwnedEvent(ctx, organizerID, role, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Image != nil {
		event.Image = req.Image
	}
	if req.TicketPrice != nil {
		event.TicketPrice = *req.TicketPrice
	}
	event.UpdatedAt = time.Now()

	// Resize before the catalog write so a rejected shrink leaves the
	// event untouched rather than half-updated.
	if req.TotalTickets != nil && *req.TotalTickets != event.TotalTickets {
		if err := s.inventory.ResizeTotal(ctx, event.ID, *req.TotalTickets); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Event.UpdateDetails(ctx, event); err != nil {
		s.log.Error("Failed to update event", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("update event %s: %w", eventID, err)
	}

	updated, err := s.repo.Event.FindByID(ctx, event.ID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("reload event %s: %w", eventID, err)
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))

	resp := response.EventToResponse(updated)
	return &resp, nil
}

func (s *eventService) Delete(ctx context.Context, organizerID, role, eventID string) error {
	event, err := s.loadOwnedEvent(ctx, organizerID, role, eventID)
	if err != nil {
		return err
	}

	if err := s.repo.Event.Delete(ctx, event.ID); err != nil {
		s.log.Error("Failed to delete event", zap.Error(err), zap.String("event_id", eventID))
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}

	s.log.Info("Event deleted",
		zap.String("event_id", eventID),
		zap.String("organizer_id", organizerID),
	)
	return nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	organizerUUID, err := uuid.Parse(organizerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid organizer ID %s", ErrValidation, organizerID)
	}

	events, err := s.repo.Event.FindByOrganizerID(ctx, organizerUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list organizer events", zap.Error(err), zap.String("organizer_id", organizerID))
		return nil, fmt.Errorf("list organizer events: %w", err)
	}

	total, err := s.repo.Event.CountByOrganizerID(ctx, organizerUUID)
	if err != nil {
		s.log.Error("Failed to count organizer events", zap.Error(err))
		return nil, fmt.Errorf("count organizer events: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event)
	}

	return response.NewPaginatedResponse(eventResponses, req.Page, req.Limit(), total), nil
}

func (s *eventService) Analytics(ctx context.Context, organizerID, role, eventID string) (*response.EventAnalyticsResponse, error) {
	event, err := s.loadOwnedEvent(ctx, organizerID, role, eventID)
	if err != nil {
		return nil, err
	}

	sold, revenue, err := s.repo.Booking.ConfirmedStatsByEvent(ctx, event.ID)
	if err != nil {
		s.log.Error("Failed to aggregate event analytics", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("event analytics %s: %w", eventID, err)
	}

	occupancy := 0.0
	if event.TotalTickets > 0 {
		occupancy = float64(sold) / float64(event.TotalTickets)
	}

	return &response.EventAnalyticsResponse{
		EventID:          event.ID.String(),
		Title:            event.Title,
		TotalTickets:     event.TotalTickets,
		RemainingTickets: event.RemainingTickets,
		TicketsSold:      sold,
		Revenue:          revenue,
		OccupancyRate:    occupancy,
	}, nil
}

func (s *eventService) Approve(ctx context.Context, eventID string) error {
	return s.setStatus(ctx, eventID, entity.EventStatusApproved)
}

func (s *eventService) Reject(ctx context.Context, eventID string) error {
	return s.setStatus(ctx, eventID, entity.EventStatusDeclined)
}

// ==================== HELPER METHODS ====================

func (s *eventService) setStatus(ctx context.Context, eventID string, status entity.EventStatus) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("%w: invalid event ID %s", ErrValidation, eventID)
	}

	if err := s.repo.Event.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		s.log.Error("Failed to update event status",
			zap.Error(err),
			zap.String("event_id", eventID),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("set event %s status to %s: %w", eventID, string(status), err)
	}

	s.log.Info("Event status updated",
		zap.String("event_id", eventID),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *eventService) findEvent(ctx context.Context, eventID string) (*entity.Event, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID %s", ErrValidation, eventID)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load event", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("load event %s: %w", eventID, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	return event, nil
}

func (s *eventService) loadOwnedEvent(ctx context.Context, organizerID, role, eventID string) (*entity.Event, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.OrganizerID.String() != organizerID && role != string(entity.RoleAdmin) {
		return nil, ErrForbidden
	}

	return event, nil
}
