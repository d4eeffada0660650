package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"

	"github.com/google/uuid"
)

func newBookingService(events *MockEventRepository, bookings *MockBookingRepository) BookingService {
	repo := &repository.Repository{
		Event:   events,
		Booking: bookings,
	}
	inventory := NewInventoryService(events, testConfig(), testLogger())
	return NewBookingService(repo, inventory, testConfig(), testLogger())
}

func TestBookingService_CreateBooking(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()

	t.Run("successful booking decrements inventory and snapshots price", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 10))

		var created *entity.Booking
		bookings := &MockBookingRepository{
			CreateFunc: func(ctx context.Context, b *entity.Booking) error {
				created = b
				return nil
			},
		}

		svc := newBookingService(store.repo(), bookings)

		resp, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 3,
		})
		if err != nil {
			t.Fatalf("CreateBooking() error = %v", err)
		}

		if got := store.remaining(eventID); got != 7 {
			t.Errorf("remaining = %d, want 7", got)
		}
		if created == nil {
			t.Fatal("booking row was not written")
		}
		if created.Status != entity.BookingStatusConfirmed {
			t.Errorf("status = %s, want confirmed", created.Status)
		}
		if created.UnitPrice != 25.0 || created.TotalPrice != 75.0 {
			t.Errorf("prices = %.2f/%.2f, want 25.00/75.00", created.UnitPrice, created.TotalPrice)
		}
		if resp.Reference == "" {
			t.Error("booking reference is empty")
		}
	})

	t.Run("oversell rejected after partial sales", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 10))
		bookings := &MockBookingRepository{}
		svc := newBookingService(store.repo(), bookings)

		if _, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 3,
		}); err != nil {
			t.Fatalf("first booking error = %v", err)
		}

		_, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 8,
		})
		if !errors.Is(err, ErrInsufficientInventory) {
			t.Fatalf("second booking error = %v, want %v", err, ErrInsufficientInventory)
		}
		if got := store.remaining(eventID); got != 7 {
			t.Errorf("remaining = %d, want 7 (failed attempt must not change it)", got)
		}
	})

	t.Run("pending event rejected", func(t *testing.T) {
		event := approvedEvent(eventID, uuid.New(), 10, 10)
		event.Status = entity.EventStatusPending
		store := newMemEventStore(event)
		svc := newBookingService(store.repo(), &MockBookingRepository{})

		_, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 1,
		})
		if !errors.Is(err, ErrEventNotAvailable) {
			t.Fatalf("error = %v, want %v", err, ErrEventNotAvailable)
		}
	})

	t.Run("past event rejected", func(t *testing.T) {
		event := approvedEvent(eventID, uuid.New(), 10, 10)
		event.Date = time.Now().Add(-time.Hour)
		store := newMemEventStore(event)
		svc := newBookingService(store.repo(), &MockBookingRepository{})

		_, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 1,
		})
		if !errors.Is(err, ErrEventExpired) {
			t.Fatalf("error = %v, want %v", err, ErrEventExpired)
		}
	})

	t.Run("unknown event rejected", func(t *testing.T) {
		store := newMemEventStore()
		svc := newBookingService(store.repo(), &MockBookingRepository{})

		_, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  uuid.New().String(),
			Quantity: 1,
		})
		if !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("error = %v, want %v", err, ErrEventNotFound)
		}
	})

	t.Run("zero quantity rejected by validation", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 10))
		svc := newBookingService(store.repo(), &MockBookingRepository{})

		_, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 0,
		})
		if !IsValidation(err) {
			t.Fatalf("error = %v, want a validation error", err)
		}
		if got := store.remaining(eventID); got != 10 {
			t.Errorf("remaining = %d, want 10", got)
		}
	})
}

func TestBookingService_CreateBooking_Compensation(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()

	t.Run("ledger failure releases the reservation", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 10))
		bookings := &MockBookingRepository{
			CreateFunc: func(ctx context.Context, b *entity.Booking) error {
				return fmt.Errorf("insert failed")
			},
		}
		svc := newBookingService(store.repo(), bookings)

		_, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 4,
		})
		if err == nil {
			t.Fatal("CreateBooking() expected error")
		}
		if errors.Is(err, ErrCompensationFailed) {
			t.Fatalf("error = %v, compensation should have succeeded", err)
		}
		if got := store.remaining(eventID); got != 10 {
			t.Errorf("remaining = %d, want 10 (reservation compensated)", got)
		}
	})

	t.Run("exhausted release retries surface compensation failure", func(t *testing.T) {
		releaseAttempts := 0
		events := &MockEventRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
				return approvedEvent(eventID, uuid.New(), 10, 10), nil
			},
			ReserveTicketsFunc: func(ctx context.Context, id uuid.UUID, q int) (bool, error) {
				return true, nil
			},
			ReleaseTicketsFunc: func(ctx context.Context, id uuid.UUID, q int) (bool, error) {
				releaseAttempts++
				return false, fmt.Errorf("connection refused")
			},
		}
		bookings := &MockBookingRepository{
			CreateFunc: func(ctx context.Context, b *entity.Booking) error {
				return fmt.Errorf("insert failed")
			},
		}
		svc := newBookingService(events, bookings)

		_, err := svc.CreateBooking(context.Background(), userID.String(), &request.CreateBookingRequest{
			EventID:  eventID.String(),
			Quantity: 2,
		})
		if !errors.Is(err, ErrCompensationFailed) {
			t.Fatalf("error = %v, want %v", err, ErrCompensationFailed)
		}
		if releaseAttempts != testConfig().Booking.CompensationRetries {
			t.Errorf("release attempts = %d, want %d", releaseAttempts, testConfig().Booking.CompensationRetries)
		}
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()
	bookingID := uuid.New()

	confirmed := func() *entity.Booking {
		now := time.Now()
		return &entity.Booking{
			Base:       entity.Base{ID: bookingID, CreatedAt: now, UpdatedAt: now},
			Reference:  "TIX-20260831-120000-AB12",
			UserID:     userID,
			EventID:    eventID,
			Quantity:   3,
			UnitPrice:  25.0,
			TotalPrice: 75.0,
			Status:     entity.BookingStatusConfirmed,
		}
	}

	t.Run("cancel releases tickets and flips status", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 7))

		flipped := false
		bookings := &MockBookingRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return confirmed(), nil
			},
			MarkCanceledFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
				flipped = true
				return true, nil
			},
		}
		svc := newBookingService(store.repo(), bookings)

		if err := svc.CancelBooking(context.Background(), userID.String(), string(entity.RoleStandard), bookingID.String()); err != nil {
			t.Fatalf("CancelBooking() error = %v", err)
		}
		if !flipped {
			t.Error("booking status was not flipped")
		}
		if got := store.remaining(eventID); got != 10 {
			t.Errorf("remaining = %d, want 10", got)
		}
	})

	t.Run("double cancel rejected", func(t *testing.T) {
		canceled := confirmed()
		canceled.Status = entity.BookingStatusCanceled

		bookings := &MockBookingRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return canceled, nil
			},
		}
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 10))
		svc := newBookingService(store.repo(), bookings)

		err := svc.CancelBooking(context.Background(), userID.String(), string(entity.RoleStandard), bookingID.String())
		if !errors.Is(err, ErrAlreadyCanceled) {
			t.Fatalf("error = %v, want %v", err, ErrAlreadyCanceled)
		}
		if got := store.remaining(eventID); got != 10 {
			t.Errorf("remaining = %d, want 10 (no release on rejected cancel)", got)
		}
	})

	t.Run("racing cancels release inventory once", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 20, 7))

		// FindByID always reports confirmed, so both callers pass the
		// status precheck on a stale read; only the conditional flip
		// decides the winner.
		var mu sync.Mutex
		canceled := false
		bookings := &MockBookingRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return confirmed(), nil
			},
			MarkCanceledFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
				mu.Lock()
				defer mu.Unlock()
				if canceled {
					return false, nil
				}
				canceled = true
				return true, nil
			},
		}
		svc := newBookingService(store.repo(), bookings)

		start := make(chan struct{})
		errs := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				<-start
				errs <- svc.CancelBooking(context.Background(), userID.String(), string(entity.RoleStandard), bookingID.String())
			}()
		}
		close(start)

		var succeeded, rejected int
		for i := 0; i < 2; i++ {
			switch err := <-errs; {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrAlreadyCanceled):
				rejected++
			default:
				t.Fatalf("unexpected cancel error: %v", err)
			}
		}
		if succeeded != 1 || rejected != 1 {
			t.Errorf("cancels = %d succeeded / %d rejected, want 1/1", succeeded, rejected)
		}
		if got := store.remaining(eventID); got != 10 {
			t.Errorf("remaining = %d, want 10 (canceled tickets credited exactly once)", got)
		}
	})

	t.Run("other user forbidden, admin allowed", func(t *testing.T) {
		bookings := &MockBookingRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return confirmed(), nil
			},
		}
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 7))
		svc := newBookingService(store.repo(), bookings)

		err := svc.CancelBooking(context.Background(), uuid.New().String(), string(entity.RoleStandard), bookingID.String())
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("error = %v, want %v", err, ErrForbidden)
		}

		if err := svc.CancelBooking(context.Background(), uuid.New().String(), string(entity.RoleAdmin), bookingID.String()); err != nil {
			t.Fatalf("admin cancel error = %v", err)
		}
	})

	t.Run("cancel of booking for deleted event still succeeds", func(t *testing.T) {
		store := newMemEventStore()

		flipped := false
		bookings := &MockBookingRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return confirmed(), nil
			},
			MarkCanceledFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
				flipped = true
				return true, nil
			},
		}
		svc := newBookingService(store.repo(), bookings)

		if err := svc.CancelBooking(context.Background(), userID.String(), string(entity.RoleStandard), bookingID.String()); err != nil {
			t.Fatalf("CancelBooking() error = %v", err)
		}
		if !flipped {
			t.Error("booking status was not flipped")
		}
	})

	t.Run("failed status write reverts the release", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 7))

		bookings := &MockBookingRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return confirmed(), nil
			},
			MarkCanceledFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return false, fmt.Errorf("write failed")
			},
		}
		svc := newBookingService(store.repo(), bookings)

		err := svc.CancelBooking(context.Background(), userID.String(), string(entity.RoleStandard), bookingID.String())
		if err == nil {
			t.Fatal("CancelBooking() expected error")
		}
		if got := store.remaining(eventID); got != 7 {
			t.Errorf("remaining = %d, want 7 (release reverted)", got)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		store := newMemEventStore()
		svc := newBookingService(store.repo(), &MockBookingRepository{})

		err := svc.CancelBooking(context.Background(), userID.String(), string(entity.RoleStandard), uuid.New().String())
		if !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("error = %v, want %v", err, ErrBookingNotFound)
		}
	})
}

func TestBookingService_GetBookingByID_Ownership(t *testing.T) {
	eventID := uuid.New()
	ownerID := uuid.New()
	bookingID := uuid.New()

	bookings := &MockBookingRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			now := time.Now()
			return &entity.Booking{
				Base:    entity.Base{ID: bookingID, CreatedAt: now, UpdatedAt: now},
				UserID:  ownerID,
				EventID: eventID,
				Status:  entity.BookingStatusConfirmed,
			}, nil
		},
	}
	store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 10))
	svc := newBookingService(store.repo(), bookings)

	if _, err := svc.GetBookingByID(context.Background(), ownerID.String(), string(entity.RoleStandard), bookingID.String()); err != nil {
		t.Fatalf("owner read error = %v", err)
	}

	_, err := svc.GetBookingByID(context.Background(), uuid.New().String(), string(entity.RoleStandard), bookingID.String())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger read error = %v, want %v", err, ErrForbidden)
	}

	if _, err := svc.GetBookingByID(context.Background(), uuid.New().String(), string(entity.RoleAdmin), bookingID.String()); err != nil {
		t.Fatalf("admin read error = %v", err)
	}
}
