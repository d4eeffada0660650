package repository

import (
	"context"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindApproved(ctx context.Context, category string, limit, offset int) ([]*entity.Event, error)
	CountApproved(ctx context.Context, category string) (int64, error)
	FindByOrganizerID(ctx context.Context, organizerID uuid.UUID, limit, offset int) ([]*entity.Event, error)
	CountByOrganizerID(ctx context.Context, organizerID uuid.UUID) (int64, error)
	UpdateDetails(ctx context.Context, event *entity.Event) error
	UpdateStatus(ctx context.Context, eventID uuid.UUID, status entity.EventStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Inventory operations. These are the only statements in the
	// codebase that touch remaining_tickets, and each one is a single
	// atomic conditional update so concurrent callers on the same
	// event serialize inside the database.
	ReserveTickets(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error)
	ReleaseTickets(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error)
	ResizeTotal(ctx context.Context, eventID uuid.UUID, newTotal int) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, organizer_id, title, description, date, location, category, image,
	ticket_price, total_tickets, remaining_tickets, status, created_at, updated_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.Category,
		&event.Image,
		&event.TicketPrice,
		&event.TotalTickets,
		&event.RemainingTickets,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, organizer_id, title, description, date, location, category, image,
		                    ticket_price, total_tickets, remaining_tickets, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.OrganizerID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Category,
		event.Image,
		event.TicketPrice,
		event.TotalTickets,
		event.RemainingTickets,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("title", event.Title),
			zap.String("organizer_id", event.OrganizerID.String()),
		)
		return fmt.Errorf("create event %s: %w", event.Title, err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindApproved(ctx context.Context, category string, limit, offset int) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE status = 'approved' AND ($1 = '' OR category = $1)
		ORDER BY date
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, category, limit, offset)
	if err != nil {
		r.log.Error("Failed to find approved events",
			zap.Error(err),
			zap.String("category", category),
		)
		return nil, fmt.Errorf("find approved events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) CountApproved(ctx context.Context, category string) (int64, error) {
	query := `SELECT COUNT(*) FROM events WHERE status = 'approved' AND ($1 = '' OR category = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, category).Scan(&count); err != nil {
		r.log.Error("Failed to count approved events", zap.Error(err))
		return 0, fmt.Errorf("count approved events: %w", err)
	}

	return count, nil
}

func (r *eventRepository) FindByOrganizerID(ctx context.Context, organizerID uuid.UUID, limit, offset int) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, organizerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find events by organizer",
			zap.Error(err),
			zap.String("organizer_id", organizerID.String()),
		)
		return nil, fmt.Errorf("find events by organizer %s: %w", organizerID.String(), err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) CountByOrganizerID(ctx context.Context, organizerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM events WHERE organizer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, organizerID).Scan(&count); err != nil {
		r.log.Error("Failed to count events by organizer",
			zap.Error(err),
			zap.String("organizer_id", organizerID.String()),
		)
		return 0, fmt.Errorf("count events by organizer %s: %w", organizerID.String(), err)
	}

	return count, nil
}

// UpdateDetails writes catalog fields only. Ticket counters are owned by
// ReserveTickets/ReleaseTickets/ResizeTotal and never appear here.
func (r *eventRepository) UpdateDetails(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, location = $5,
		    category = $6, image = $7, ticket_price = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Category,
		event.Image,
		event.TicketPrice,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, eventID uuid.UUID, status entity.EventStatus) error {
	query := `UPDATE events SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, eventID, status)
	if err != nil {
		r.log.Error("Failed to update event status",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update event %s status to %s: %w", eventID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the event and its booking ledger in one transaction.
// Ledger rows are otherwise never deleted; the cascade is the single
// exception.
func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete event %s: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE event_id = $1`, id); err != nil {
		r.log.Error("Failed to delete bookings for event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete bookings for event %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete event %s: %w", id.String(), err)
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

// ReserveTickets decrements remaining_tickets only when enough remain.
// Returns false with no mutation when the row is missing or inventory
// is short; the caller decides which of the two it was.
func (r *eventRepository) ReserveTickets(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE events
		SET remaining_tickets = remaining_tickets - $2, updated_at = NOW()
		WHERE id = $1 AND remaining_tickets >= $2
	`

	result, err := r.db.Exec(ctx, query, eventID, quantity)
	if err != nil {
		r.log.Error("Failed to reserve tickets",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.Int("quantity", quantity),
		)
		return false, fmt.Errorf("reserve %d tickets for event %s: %w", quantity, eventID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// ReleaseTickets returns quantity to the pool, clamped at total_tickets
// so a replayed release cannot push the counter past capacity.
func (r *eventRepository) ReleaseTickets(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE events
		SET remaining_tickets = LEAST(remaining_tickets + $2, total_tickets), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, eventID, quantity)
	if err != nil {
		r.log.Error("Failed to release tickets",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.Int("quantity", quantity),
		)
		return false, fmt.Errorf("release %d tickets for event %s: %w", quantity, eventID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// ResizeTotal changes capacity under a row lock. The booked quantity
// (total - remaining) is preserved; remaining is recomputed from the new
// total. Shrinking below booked fails with ErrBelowBooked.
func (r *eventRepository) ResizeTotal(ctx context.Context, eventID uuid.UUID, newTotal int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin resize event %s: %w", eventID.String(), err)
	}
	defer tx.Rollback(ctx)

	var total, remaining int
	err = tx.QueryRow(ctx,
		`SELECT total_tickets, remaining_tickets FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&total, &remaining)

	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock event for resize",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return fmt.Errorf("lock event %s for resize: %w", eventID.String(), err)
	}

	booked := total - remaining
	if newTotal < booked {
		return ErrBelowBooked
	}

	_, err = tx.Exec(ctx,
		`UPDATE events SET total_tickets = $2, remaining_tickets = $3, updated_at = NOW() WHERE id = $1`,
		eventID, newTotal, newTotal-booked,
	)
	if err != nil {
		r.log.Error("Failed to resize event capacity",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.Int("new_total", newTotal),
		)
		return fmt.Errorf("resize event %s to %d: %w", eventID.String(), newTotal, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit resize event %s: %w", eventID.String(), err)
	}

	r.log.Info("Event capacity resized",
		zap.String("event_id", eventID.String()),
		zap.Int("new_total", newTotal),
		zap.Int("booked", booked),
	)
	return nil
}

func collectEvents(rows pgx.Rows) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}
