package booking

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/hotel-management-backend/config"
	"github.com/sharath018/hotel-management-backend/internal/room"
	"github.com/sharath018/hotel-management-backend/middleware"
)

// ===== mocks =====

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id uint) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepo) GetByOrderID(ctx context.Context, orderID string) (*Booking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filters BookingFilters) ([]Booking, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) GetBlockingForRoom(ctx context.Context, roomID, excludeID uint) ([]Booking, error) {
	args := m.Called(ctx, roomID, excludeID)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type mockRooms struct{ mock.Mock }

func (m *mockRooms) Create(ctx context.Context, r *room.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRooms) GetByID(ctx context.Context, id uint) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *mockRooms) GetByNumber(ctx context.Context, number string) (*room.Room, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *mockRooms) List(ctx context.Context, filters room.RoomFilters) ([]room.Room, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *mockRooms) Update(ctx context.Context, r *room.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRooms) UpdateStatus(ctx context.Context, id uint, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRooms) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRooms) Search(ctx context.Context, q string, limit int) ([]room.Room, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *mockRooms) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	args := m.Called(amountMinor, currency, receipt, notes)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) FetchPayment(paymentID string) (map[string]interface{}, error) {
	args := m.Called(paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

// ===== helpers =====

const testSecret = "test-secret"

func newTestService(repo *mockRepo, rooms *mockRooms, gw *mockGateway) Service {
	cfg := &config.Config{RazorpayKey: "rzp_test_key", RazorpaySecret: testSecret}
	return NewService(repo, rooms, nil, nil, nil, nil, gw, cfg)
}

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ===== CreatePaymentIntent =====

func TestCreatePaymentIntentRecomputesTotal(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	rooms.On("GetByID", mock.Anything, uint(7)).
		Return(&room.Room{ID: 7, Number: "204", Status: room.StatusAvailable, PricePerNight: 200}, nil)
	repo.On("GetBlockingForRoom", mock.Anything, uint(7), uint(0)).
		Return([]Booking{}, nil)

	// The server-side price for 3 nights at 200 is 60000 minor units,
	// regardless of anything the client claims.
	gw.On("CreateOrder", int64(60000), "USD", mock.Anything, mock.Anything).
		Return("order_abc", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
		return b.Status == StatusPending &&
			b.OrderID == "order_abc" &&
			b.TotalAmount == 600.0 &&
			b.IdempotencyKey != ""
	})).Return(nil)

	resp, err := svc.CreatePaymentIntent(context.Background(), CreateIntentRequest{
		RoomID:       7,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-04",
	}, 42, "1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, 600.0, resp.TotalAmount)
	assert.Equal(t, "rzp_test_key", resp.RazorpayKey)
	repo.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestCreatePaymentIntentRejectsConflicts(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	rooms.On("GetByID", mock.Anything, uint(7)).
		Return(&room.Room{ID: 7, Status: room.StatusAvailable, PricePerNight: 200}, nil)
	repo.On("GetBlockingForRoom", mock.Anything, uint(7), uint(0)).
		Return([]Booking{
			{CheckIn: day("2026-03-02"), CheckOut: day("2026-03-06"), Status: StatusConfirmed},
		}, nil)

	_, err := svc.CreatePaymentIntent(context.Background(), CreateIntentRequest{
		RoomID:       7,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-04",
	}, 42, "")
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePaymentIntentRejectsOutOfServiceRooms(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	rooms.On("GetByID", mock.Anything, uint(7)).
		Return(&room.Room{ID: 7, Status: room.StatusMaintenance, PricePerNight: 200}, nil)

	_, err := svc.CreatePaymentIntent(context.Background(), CreateIntentRequest{
		RoomID:       7,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-04",
	}, 42, "")
	assert.ErrorIs(t, err, ErrRoomOutOfService)
}

// ===== ConfirmBooking =====

func TestConfirmBookingHappyPath(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	pending := &Booking{
		ID:       9,
		RoomID:   7,
		UserID:   42,
		CheckIn:  day("2026-03-01"),
		CheckOut: day("2026-03-04"),
		Status:   StatusPending,
		OrderID:  "order_abc",
	}
	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(pending, nil)
	gw.On("FetchPayment", "pay_123").Return(map[string]interface{}{"status": "captured"}, nil)
	repo.On("GetBlockingForRoom", mock.Anything, uint(7), uint(9)).Return([]Booking{}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
		return b.Status == StatusConfirmed && b.PaymentID != nil && *b.PaymentID == "pay_123"
	})).Return(nil)

	b, err := svc.ConfirmBooking(context.Background(), ConfirmBookingRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signPayment("order_abc", "pay_123"),
		Guests:    2,
	}, 42, "")
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, 2, b.Guests)
	repo.AssertExpectations(t)
}

func TestConfirmBookingRejectsBadSignature(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(&Booking{
		ID: 9, RoomID: 7, UserID: 42, Status: StatusPending, OrderID: "order_abc",
	}, nil)

	_, err := svc.ConfirmBooking(context.Background(), ConfirmBookingRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: "forged",
		Guests:    2,
	}, 42, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	gw.AssertNotCalled(t, "FetchPayment", mock.Anything)
}

func TestConfirmBookingIdempotentReplay(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	paymentID := "pay_123"
	confirmed := &Booking{
		ID: 9, RoomID: 7, UserID: 42,
		Status:    StatusConfirmed,
		OrderID:   "order_abc",
		PaymentID: &paymentID,
	}
	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(confirmed, nil)

	b, err := svc.ConfirmBooking(context.Background(), ConfirmBookingRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signPayment("order_abc", "pay_123"),
		Guests:    2,
	}, 42, "")
	require.NoError(t, err)

	assert.Equal(t, confirmed, b)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "FetchPayment", mock.Anything)
}

func TestConfirmBookingFlagsReconciliation(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	pending := &Booking{
		ID:       9,
		RoomID:   7,
		UserID:   42,
		CheckIn:  day("2026-03-01"),
		CheckOut: day("2026-03-04"),
		Status:   StatusPending,
		OrderID:  "order_abc",
	}
	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(pending, nil)
	gw.On("FetchPayment", "pay_123").Return(map[string]interface{}{"status": "captured"}, nil)

	// The room was taken between intent and capture.
	repo.On("GetBlockingForRoom", mock.Anything, uint(7), uint(9)).Return([]Booking{
		{ID: 11, CheckIn: day("2026-03-02"), CheckOut: day("2026-03-06"), Status: StatusConfirmed},
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
		return b.NeedsReconciliation && b.Status != StatusConfirmed
	})).Return(nil)

	_, err := svc.ConfirmBooking(context.Background(), ConfirmBookingRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signPayment("order_abc", "pay_123"),
		Guests:    2,
	}, 42, "")
	require.ErrorIs(t, err, ErrReconciliationRequired)
	assert.Contains(t, err.Error(), "pay_123")
	repo.AssertExpectations(t)
}

func TestConfirmBookingRejectsOtherGuests(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	gw := new(mockGateway)
	svc := newTestService(repo, rooms, gw)

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(&Booking{
		ID: 9, UserID: 42, Status: StatusPending, OrderID: "order_abc",
	}, nil)

	_, err := svc.ConfirmBooking(context.Background(), ConfirmBookingRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signPayment("order_abc", "pay_123"),
		Guests:    1,
	}, 99, "")
	assert.ErrorIs(t, err, ErrNotYourBooking)
}

// ===== UpdateStatus =====

func staffActor() middleware.AccessContext {
	return middleware.AccessContext{UserID: 1, RoleName: middleware.RoleReceptionist}
}

func guestActor(id uint) middleware.AccessContext {
	return middleware.AccessContext{UserID: id, RoleName: middleware.RoleGuest}
}

func TestUpdateStatusAllowsLifecycleEdges(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusPending, StatusCheckedIn, false},
		{StatusCheckedOut, StatusCheckedIn, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			repo := new(mockRepo)
			rooms := new(mockRooms)
			svc := newTestService(repo, rooms, new(mockGateway))

			repo.On("GetByID", mock.Anything, uint(9)).Return(&Booking{
				ID: 9, RoomID: 7, UserID: 42, Status: tt.from,
				Room: room.Room{ID: 7, Number: "204"},
			}, nil)
			repo.On("Update", mock.Anything, mock.Anything).Return(nil).Maybe()
			rooms.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

			_, err := svc.UpdateStatus(context.Background(), 9, tt.to, staffActor(), "")
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			}
		})
	}
}

func TestUpdateStatusCheckInMarksRoomOccupied(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	svc := newTestService(repo, rooms, new(mockGateway))

	repo.On("GetByID", mock.Anything, uint(9)).Return(&Booking{
		ID: 9, RoomID: 7, UserID: 42, Status: StatusConfirmed,
		Room: room.Room{ID: 7, Number: "204"},
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	rooms.On("UpdateStatus", mock.Anything, uint(7), room.StatusOccupied).Return(nil)

	_, err := svc.UpdateStatus(context.Background(), 9, StatusCheckedIn, staffActor(), "")
	require.NoError(t, err)
	rooms.AssertExpectations(t)
}

func TestUpdateStatusCheckOutQueuesCleaning(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	svc := newTestService(repo, rooms, new(mockGateway))

	repo.On("GetByID", mock.Anything, uint(9)).Return(&Booking{
		ID: 9, RoomID: 7, UserID: 42, Status: StatusCheckedIn,
		Room: room.Room{ID: 7, Number: "204"},
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	rooms.On("UpdateStatus", mock.Anything, uint(7), room.StatusCleaning).Return(nil)

	_, err := svc.UpdateStatus(context.Background(), 9, StatusCheckedOut, staffActor(), "")
	require.NoError(t, err)
	rooms.AssertExpectations(t)
}

func TestGuestCanOnlyCancelOwnConfirmedBooking(t *testing.T) {
	repo := new(mockRepo)
	rooms := new(mockRooms)
	svc := newTestService(repo, rooms, new(mockGateway))

	repo.On("GetByID", mock.Anything, uint(9)).Return(&Booking{
		ID: 9, RoomID: 7, UserID: 42, Status: StatusConfirmed,
		Room: room.Room{ID: 7, Number: "204"},
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	// Another guest cannot touch it
	_, err := svc.UpdateStatus(context.Background(), 9, StatusCancelled, guestActor(99), "")
	assert.ErrorIs(t, err, ErrNotYourBooking)

	// The owner cannot walk staff-only edges
	_, err = svc.UpdateStatus(context.Background(), 9, StatusCheckedIn, guestActor(42), "")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	// The owner can cancel
	b, err := svc.UpdateStatus(context.Background(), 9, StatusCancelled, guestActor(42), "")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.Status)
}
