package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"

	"github.com/google/uuid"
)

// memEventStore backs the mock with the same semantics the SQL layer
// provides: conditional decrement, clamped increment, resize under a
// single lock.
type memEventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]*entity.Event
}

func newMemEventStore(events ...*entity.Event) *memEventStore {
	s := &memEventStore{events: make(map[uuid.UUID]*entity.Event)}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *memEventStore) repo() *MockEventRepository {
	return &MockEventRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			e, ok := s.events[id]
			if !ok {
				return nil, nil
			}
			copied := *e
			return &copied, nil
		},
		ReserveTicketsFunc: func(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			e, ok := s.events[eventID]
			if !ok || e.RemainingTickets < quantity {
				return false, nil
			}
			e.RemainingTickets -= quantity
			return true, nil
		},
		ReleaseTicketsFunc: func(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			e, ok := s.events[eventID]
			if !ok {
				return false, nil
			}
			e.RemainingTickets += quantity
			if e.RemainingTickets > e.TotalTickets {
				e.RemainingTickets = e.TotalTickets
			}
			return true, nil
		},
		ResizeTotalFunc: func(ctx context.Context, eventID uuid.UUID, newTotal int) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			e, ok := s.events[eventID]
			if !ok {
				return repository.ErrNotFound
			}
			booked := e.TotalTickets - e.RemainingTickets
			if newTotal < booked {
				return repository.ErrBelowBooked
			}
			e.TotalTickets = newTotal
			e.RemainingTickets = newTotal - booked
			return nil
		},
	}
}

func (s *memEventStore) remaining(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id].RemainingTickets
}

func TestInventoryService_Reserve(t *testing.T) {
	eventID := uuid.New()

	tests := []struct {
		name      string
		remaining int
		quantity  int
		wantErr   error
		wantLeft  int
	}{
		{name: "full stock", remaining: 10, quantity: 4, wantErr: nil, wantLeft: 6},
		{name: "exact stock", remaining: 4, quantity: 4, wantErr: nil, wantLeft: 0},
		{name: "insufficient stock", remaining: 3, quantity: 4, wantErr: ErrInsufficientInventory, wantLeft: 3},
		{name: "zero quantity", remaining: 10, quantity: 0, wantErr: ErrInvalidQuantity, wantLeft: 10},
		{name: "negative quantity", remaining: 10, quantity: -2, wantErr: ErrInvalidQuantity, wantLeft: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemEventStore(approvedEvent(eventID, uuid.New(), 100, tt.remaining))
			svc := NewInventoryService(store.repo(), testConfig(), testLogger())

			err := svc.Reserve(context.Background(), eventID, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Reserve() error = %v, want %v", err, tt.wantErr)
			}
			if got := store.remaining(eventID); got != tt.wantLeft {
				t.Errorf("remaining = %d, want %d", got, tt.wantLeft)
			}
		})
	}
}

func TestInventoryService_Reserve_UnknownEvent(t *testing.T) {
	store := newMemEventStore()
	svc := NewInventoryService(store.repo(), testConfig(), testLogger())

	err := svc.Reserve(context.Background(), uuid.New(), 1)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("Reserve() error = %v, want %v", err, ErrEventNotFound)
	}
}

// Twenty concurrent single-ticket reserves against five remaining must
// admit exactly five and leave the counter at zero, never negative.
func TestInventoryService_Reserve_Concurrent(t *testing.T) {
	eventID := uuid.New()
	store := newMemEventStore(approvedEvent(eventID, uuid.New(), 20, 5))
	svc := NewInventoryService(store.repo(), testConfig(), testLogger())

	const callers = 20
	results := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Reserve(context.Background(), eventID, 1)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientInventory):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 5 {
		t.Errorf("succeeded = %d, want 5", succeeded)
	}
	if rejected != 15 {
		t.Errorf("rejected = %d, want 15", rejected)
	}
	if got := store.remaining(eventID); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
}

func TestInventoryService_Release(t *testing.T) {
	eventID := uuid.New()

	t.Run("round trip restores remaining", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 10))
		svc := NewInventoryService(store.repo(), testConfig(), testLogger())

		if err := svc.Reserve(context.Background(), eventID, 7); err != nil {
			t.Fatalf("Reserve() error = %v", err)
		}
		if err := svc.Release(context.Background(), eventID, 7); err != nil {
			t.Fatalf("Release() error = %v", err)
		}
		if got := store.remaining(eventID); got != 10 {
			t.Errorf("remaining = %d, want 10", got)
		}
	})

	t.Run("release clamps at total", func(t *testing.T) {
		store := newMemEventStore(approvedEvent(eventID, uuid.New(), 10, 9))
		svc := NewInventoryService(store.repo(), testConfig(), testLogger())

		if err := svc.Release(context.Background(), eventID, 5); err != nil {
			t.Fatalf("Release() error = %v", err)
		}
		if got := store.remaining(eventID); got != 10 {
			t.Errorf("remaining = %d, want 10 (clamped)", got)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		store := newMemEventStore()
		svc := NewInventoryService(store.repo(), testConfig(), testLogger())

		err := svc.Release(context.Background(), uuid.New(), 1)
		if !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("Release() error = %v, want %v", err, ErrEventNotFound)
		}
	})
}

func TestInventoryService_ResizeTotal(t *testing.T) {
	eventID := uuid.New()

	tests := []struct {
		name          string
		total         int
		remaining     int
		newTotal      int
		wantErr       error
		wantRemaining int
	}{
		{name: "grow keeps booked", total: 10, remaining: 4, newTotal: 20, wantErr: nil, wantRemaining: 14},
		{name: "shrink above booked", total: 10, remaining: 4, newTotal: 8, wantErr: nil, wantRemaining: 2},
		{name: "shrink to booked", total: 10, remaining: 4, newTotal: 6, wantErr: nil, wantRemaining: 0},
		{name: "shrink below booked", total: 10, remaining: 4, newTotal: 5, wantErr: ErrResizeBelowBooked, wantRemaining: 4},
		{name: "non positive total", total: 10, remaining: 4, newTotal: 0, wantErr: ErrInvalidQuantity, wantRemaining: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemEventStore(approvedEvent(eventID, uuid.New(), tt.total, tt.remaining))
			svc := NewInventoryService(store.repo(), testConfig(), testLogger())

			err := svc.ResizeTotal(context.Background(), eventID, tt.newTotal)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ResizeTotal() error = %v, want %v", err, tt.wantErr)
			}
			if got := store.remaining(eventID); got != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", got, tt.wantRemaining)
			}
		})
	}

	t.Run("unknown event", func(t *testing.T) {
		store := newMemEventStore()
		svc := NewInventoryService(store.repo(), testConfig(), testLogger())

		err := svc.ResizeTotal(context.Background(), uuid.New(), 10)
		if !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("ResizeTotal() error = %v, want %v", err, ErrEventNotFound)
		}
	})
}
