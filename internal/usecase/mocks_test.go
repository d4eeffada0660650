package usecase

import (
	"context"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	CreateFunc             func(ctx context.Context, event *entity.Event) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindApprovedFunc       func(ctx context.Context, category string, limit, offset int) ([]*entity.Event, error)
	CountApprovedFunc      func(ctx context.Context, category string) (int64, error)
	FindByOrganizerIDFunc  func(ctx context.Context, organizerID uuid.UUID, limit, offset int) ([]*entity.Event, error)
	CountByOrganizerIDFunc func(ctx context.Context, organizerID uuid.UUID) (int64, error)
	UpdateDetailsFunc      func(ctx context.Context, event *entity.Event) error
	UpdateStatusFunc       func(ctx context.Context, eventID uuid.UUID, status entity.EventStatus) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	ReserveTicketsFunc     func(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error)
	ReleaseTicketsFunc     func(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error)
	ResizeTotalFunc        func(ctx context.Context, eventID uuid.UUID, newTotal int) error
}

func (m *MockEventRepository) Create(ctx context.Context, event *entity.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockEventRepository) FindApproved(ctx context.Context, category string, limit, offset int) ([]*entity.Event, error) {
	if m.FindApprovedFunc != nil {
		return m.FindApprovedFunc(ctx, category, limit, offset)
	}
	return []*entity.Event{}, nil
}

func (m *MockEventRepository) CountApproved(ctx context.Context, category string) (int64, error) {
	if m.CountApprovedFunc != nil {
		return m.CountApprovedFunc(ctx, category)
	}
	return 0, nil
}

func (m *MockEventRepository) FindByOrganizerID(ctx context.Context, organizerID uuid.UUID, limit, offset int) ([]*entity.Event, error) {
	if m.FindByOrganizerIDFunc != nil {
		return m.FindByOrganizerIDFunc(ctx, organizerID, limit, offset)
	}
	return []*entity.Event{}, nil
}

func (m *MockEventRepository) CountByOrganizerID(ctx context.Context, organizerID uuid.UUID) (int64, error) {
	if m.CountByOrganizerIDFunc != nil {
		return m.CountByOrganizerIDFunc(ctx, organizerID)
	}
	return 0, nil
}

func (m *MockEventRepository) UpdateDetails(ctx context.Context, event *entity.Event) error {
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) UpdateStatus(ctx context.Context, eventID uuid.UUID, status entity.EventStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, eventID, status)
	}
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockEventRepository) ReserveTickets(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error) {
	if m.ReserveTicketsFunc != nil {
		return m.ReserveTicketsFunc(ctx, eventID, quantity)
	}
	return true, nil
}

func (m *MockEventRepository) ReleaseTickets(ctx context.Context, eventID uuid.UUID, quantity int) (bool, error) {
	if m.ReleaseTicketsFunc != nil {
		return m.ReleaseTicketsFunc(ctx, eventID, quantity)
	}
	return true, nil
}

func (m *MockEventRepository) ResizeTotal(ctx context.Context, eventID uuid.UUID, newTotal int) error {
	if m.ResizeTotalFunc != nil {
		return m.ResizeTotalFunc(ctx, eventID, newTotal)
	}
	return nil
}

// MockBookingRepository is a mock implementation of repository.BookingRepository
type MockBookingRepository struct {
	CreateFunc                func(ctx context.Context, booking *entity.Booking) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserIDFunc          func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserIDFunc         func(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkCanceledFunc          func(ctx context.Context, bookingID uuid.UUID) (bool, error)
	ConfirmedStatsByEventFunc func(ctx context.Context, eventID uuid.UUID) (int, float64, error)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return nil
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID, limit, offset)
	}
	return []*entity.Booking{}, nil
}

func (m *MockBookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockBookingRepository) MarkCanceled(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	if m.MarkCanceledFunc != nil {
		return m.MarkCanceledFunc(ctx, bookingID)
	}
	return true, nil
}

func (m *MockBookingRepository) ConfirmedStatsByEvent(ctx context.Context, eventID uuid.UUID) (int, float64, error) {
	if m.ConfirmedStatsByEventFunc != nil {
		return m.ConfirmedStatsByEventFunc(ctx, eventID)
	}
	return 0, 0, nil
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*entity.User, error)
	FindAllFunc        func(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountFunc          func(ctx context.Context) (int64, error)
	UpdateFunc         func(ctx context.Context, user *entity.User) error
	UpdateRoleFunc     func(ctx context.Context, userID uuid.UUID, role entity.UserRole) error
	UpdatePasswordFunc func(ctx context.Context, userID uuid.UUID, passwordHash string) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit, offset)
	}
	return []*entity.User{}, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, userID, role)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockOTPRepository is a mock implementation of repository.OTPRepository
type MockOTPRepository struct {
	CreateFunc       func(ctx context.Context, otp *entity.OTP) error
	FindValidOTPFunc func(ctx context.Context, email, otpCode string, otpType entity.OTPType) (*entity.OTP, error)
	MarkAsUsedFunc   func(ctx context.Context, otpID uuid.UUID) error
}

func (m *MockOTPRepository) Create(ctx context.Context, otp *entity.OTP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	return nil
}

func (m *MockOTPRepository) FindValidOTP(ctx context.Context, email, otpCode string, otpType entity.OTPType) (*entity.OTP, error) {
	if m.FindValidOTPFunc != nil {
		return m.FindValidOTPFunc(ctx, email, otpCode, otpType)
	}
	return nil, nil
}

func (m *MockOTPRepository) MarkAsUsed(ctx context.Context, otpID uuid.UUID) error {
	if m.MarkAsUsedFunc != nil {
		return m.MarkAsUsedFunc(ctx, otpID)
	}
	return nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
		OTP: utils.OTPConfig{
			ExpiryMinutes: 15,
			Length:        6,
		},
		Booking: utils.BookingConfig{
			ReserveTimeout:      3 * time.Second,
			CompensationRetries: 3,
		},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func approvedEvent(id, organizerID uuid.UUID, total, remaining int) *entity.Event {
	now := time.Now()
	return &entity.Event{
		Base: entity.Base{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrganizerID:      organizerID,
		Title:            "Summer Festival",
		Date:             now.Add(30 * 24 * time.Hour),
		Location:         "Riverside Park",
		Category:         "music",
		TicketPrice:      25.0,
		TotalTickets:     total,
		RemainingTickets: remaining,
		Status:           entity.EventStatusApproved,
	}
}
