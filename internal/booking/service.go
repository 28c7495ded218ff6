package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/sharath018/hotel-management-backend/config"
	"github.com/sharath018/hotel-management-backend/internal/auditlog"
	"github.com/sharath018/hotel-management-backend/internal/billing"
	"github.com/sharath018/hotel-management-backend/internal/notification"
	"github.com/sharath018/hotel-management-backend/internal/room"
	"github.com/sharath018/hotel-management-backend/internal/task"
	"github.com/sharath018/hotel-management-backend/middleware"
	"github.com/sharath018/hotel-management-backend/utils"
)

var (
	ErrRoomUnavailable         = errors.New("room is not available for the selected dates")
	ErrRoomOutOfService        = errors.New("room is out of service")
	ErrInvalidSignature        = errors.New("payment signature verification failed")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrNotYourBooking          = errors.New("booking belongs to another guest")
	// ErrReconciliationRequired flags a captured payment whose booking could
	// not be confirmed. The money is real; the row must be reviewed and
	// refunded, never dropped.
	ErrReconciliationRequired = errors.New("payment captured but booking could not be confirmed; reconciliation required")
)

// statusTransitions is the full lifecycle graph for staff operations.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
	CreatePaymentIntent(ctx context.Context, req CreateIntentRequest, userID uint, ip string) (*CreateIntentResponse, error)
	ConfirmBooking(ctx context.Context, req ConfirmBookingRequest, userID uint, ip string) (*Booking, error)
	GetBooking(ctx context.Context, id uint) (*Booking, error)
	ListBookings(ctx context.Context, filters BookingFilters) ([]Booking, int64, error)
	UnavailableDates(ctx context.Context, roomID uint) ([]UnavailableRange, error)
	UpdateStatus(ctx context.Context, id uint, newStatus string, actor middleware.AccessContext, ip string) (*Booking, error)
}

type service struct {
	repo     Repository
	rooms    room.Repository
	bills    billing.Service
	tasks    task.Service
	notifier notification.Service
	auditSvc auditlog.Service
	gateway  PaymentGateway

	razorpayKey    string
	razorpaySecret string
}

func NewService(
	repo Repository,
	rooms room.Repository,
	bills billing.Service,
	tasks task.Service,
	notifier notification.Service,
	auditSvc auditlog.Service,
	gateway PaymentGateway,
	cfg *config.Config,
) Service {
	return &service{
		repo:           repo,
		rooms:          rooms,
		bills:          bills,
		tasks:          tasks,
		notifier:       notifier,
		auditSvc:       auditSvc,
		gateway:        gateway,
		razorpayKey:    cfg.RazorpayKey,
		razorpaySecret: cfg.RazorpaySecret,
	}
}

// Quote prices a stay without reserving anything. Missing dates produce an
// extras-only quote tagged incomplete.
func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if req.CheckInDate == "" || req.CheckOutDate == "" {
		return ExtrasOnlyQuote(req.Extras)
	}

	checkIn, err := ParseStayDate(req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date: %w", err)
	}
	checkOut, err := ParseStayDate(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out date: %w", err)
	}

	r, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	return ComputeQuote(r, checkIn, checkOut, req.Extras)
}

// CreatePaymentIntent recomputes the price server-side, validates
// availability, creates a gateway order and holds the dates with a Pending
// booking. Client-submitted totals are never trusted.
func (s *service) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest, userID uint, ip string) (*CreateIntentResponse, error) {
	checkIn, err := ParseStayDate(req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date: %w", err)
	}
	checkOut, err := ParseStayDate(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out date: %w", err)
	}

	r, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !r.Bookable() {
		return nil, ErrRoomOutOfService
	}

	quote, err := ComputeQuote(r, checkIn, checkOut, req.Extras)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBlockingForRoom(ctx, r.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}
	if ConflictsWithAny(checkIn, checkOut, existing) {
		return nil, ErrRoomUnavailable
	}

	idempotencyKey := uuid.NewString()
	orderID, err := s.gateway.CreateOrder(
		int64(math.Round(quote.Total*100)),
		"USD",
		idempotencyKey,
		map[string]interface{}{
			"room_id":  r.ID,
			"user_id":  userID,
			"check_in": req.CheckInDate,
		},
	)
	if err != nil {
		return nil, err
	}

	extrasJSON, _ := json.Marshal(quote.Extras)
	b := &Booking{
		RoomID:         r.ID,
		UserID:         userID,
		CheckIn:        TruncateToDay(checkIn),
		CheckOut:       TruncateToDay(checkOut),
		Guests:         1,
		Extras:         extrasJSON,
		TotalAmount:    quote.Total,
		Status:         StatusPending,
		OrderID:        orderID,
		IdempotencyKey: idempotencyKey,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.audit(ctx, userID, b.ID, auditlog.ActionBookingCreated, map[string]interface{}{
		"room_id":  r.ID,
		"order_id": orderID,
		"total":    quote.Total,
	}, ip, "success")

	return &CreateIntentResponse{
		BookingID:   b.ID,
		OrderID:     orderID,
		TotalAmount: quote.Total,
		Currency:    "USD",
		RazorpayKey: s.razorpayKey,
	}, nil
}

// ConfirmBooking verifies the captured payment and promotes the pending
// booking. Confirmation is idempotent on the order id: replays of an
// already-confirmed order return the existing booking unchanged.
func (s *service) ConfirmBooking(ctx context.Context, req ConfirmBookingRequest, userID uint, ip string) (*Booking, error) {
	b, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if b.UserID != userID {
		return nil, ErrNotYourBooking
	}

	// Idempotent replay
	if b.Status == StatusConfirmed && b.PaymentID != nil && *b.PaymentID == req.PaymentID {
		return b, nil
	}

	if !VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.razorpaySecret) {
		s.audit(ctx, userID, b.ID, auditlog.ActionPaymentFailed, map[string]interface{}{
			"order_id": req.OrderID,
			"reason":   "signature mismatch",
		}, ip, "failure")
		return nil, ErrInvalidSignature
	}

	if _, err := s.gateway.FetchPayment(req.PaymentID); err != nil {
		return nil, err
	}

	paymentID := req.PaymentID
	b.PaymentID = &paymentID
	b.Guests = req.Guests
	b.SpecialRequests = req.SpecialRequests

	// The room may have been taken between intent and capture. The payment
	// is already captured, so the booking is parked for manual review
	// instead of silently dropping the money.
	others, err := s.repo.GetBlockingForRoom(ctx, b.RoomID, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-check availability: %w", err)
	}
	if ConflictsWithAny(b.CheckIn, b.CheckOut, others) {
		b.NeedsReconciliation = true
		if err := s.repo.Update(ctx, b); err != nil {
			log.Printf("❌ Failed to flag booking %d for reconciliation: %v", b.ID, err)
		}
		s.audit(ctx, userID, b.ID, auditlog.ActionPaymentVerified, map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
			"outcome":    "reconciliation_required",
		}, ip, "failure")
		return nil, fmt.Errorf("%w (payment %s)", ErrReconciliationRequired, req.PaymentID)
	}

	b.Status = StatusConfirmed
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	s.audit(ctx, userID, b.ID, auditlog.ActionPaymentVerified, map[string]interface{}{
		"order_id":   req.OrderID,
		"payment_id": req.PaymentID,
		"amount":     b.TotalAmount,
	}, ip, "success")

	if s.bills != nil {
		desc := fmt.Sprintf("Room %s, %s to %s", b.Room.Number,
			b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"))
		if _, err := s.bills.CreateForBooking(ctx, b.UserID, b.ID, b.TotalAmount, true, desc); err != nil {
			log.Printf("⚠️ Failed to create bill for booking %d: %v", b.ID, err)
		}
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Your booking for room %s is confirmed (%s to %s).",
			b.Room.Number, b.CheckIn.Format("Jan 2"), b.CheckOut.Format("Jan 2"))
		if err := s.notifier.NotifyUser(ctx, b.UserID, "Booking confirmed", msg, notification.CategoryBooking); err != nil {
			log.Printf("⚠️ Failed to notify guest for booking %d: %v", b.ID, err)
		}
	}

	utils.PublishEventAsync(utils.EventNewBooking, map[string]interface{}{
		"booking_id":  b.ID,
		"room_number": b.Room.Number,
		"check_in":    b.CheckIn.Format("2006-01-02"),
		"check_out":   b.CheckOut.Format("2006-01-02"),
	})
	utils.PublishEventAsync(utils.EventPaymentReceived, map[string]interface{}{
		"amount":    fmt.Sprintf("%.2f", b.TotalAmount),
		"reference": fmt.Sprintf("booking #%d", b.ID),
	})

	return b, nil
}

func (s *service) GetBooking(ctx context.Context, id uint) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBookings(ctx context.Context, filters BookingFilters) ([]Booking, int64, error) {
	return s.repo.List(ctx, filters)
}

// UnavailableDates returns the blocked windows for a room so clients can
// grey out the calendar.
func (s *service) UnavailableDates(ctx context.Context, roomID uint) ([]UnavailableRange, error) {
	bookings, err := s.repo.GetBlockingForRoom(ctx, roomID, 0)
	if err != nil {
		return nil, err
	}

	ranges := make([]UnavailableRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, UnavailableRange{Start: b.CheckIn, End: b.CheckOut})
	}
	return ranges, nil
}

// UpdateStatus moves a booking along the lifecycle. Staff may walk any
// edge of the transition graph; guests may only cancel their own Confirmed
// bookings.
func (s *service) UpdateStatus(ctx context.Context, id uint, newStatus string, actor middleware.AccessContext, ip string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.IsGuest() {
		if b.UserID != actor.UserID {
			return nil, ErrNotYourBooking
		}
		if !(b.Status == StatusConfirmed && newStatus == StatusCancelled) {
			return nil, ErrInvalidStatusTransition
		}
	} else if !transitionAllowed(b.Status, newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	oldStatus := b.Status
	b.Status = newStatus
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.applyStatusSideEffects(ctx, b, oldStatus)

	s.audit(ctx, actor.UserID, b.ID, auditlog.ActionBookingStatus, map[string]interface{}{
		"from": oldStatus,
		"to":   newStatus,
	}, ip, "success")

	return b, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *service) applyStatusSideEffects(ctx context.Context, b *Booking, oldStatus string) {
	switch b.Status {
	case StatusCheckedIn:
		if err := s.rooms.UpdateStatus(ctx, b.RoomID, room.StatusOccupied); err != nil {
			log.Printf("⚠️ Failed to mark room %d occupied: %v", b.RoomID, err)
		}
		utils.PublishEventAsync(utils.EventCheckIn, map[string]interface{}{
			"booking_id":  b.ID,
			"room_number": b.Room.Number,
		})

	case StatusCheckedOut:
		if err := s.rooms.UpdateStatus(ctx, b.RoomID, room.StatusCleaning); err != nil {
			log.Printf("⚠️ Failed to mark room %d for cleaning: %v", b.RoomID, err)
		}
		if s.tasks != nil {
			if _, err := s.tasks.CreateCleaningTask(ctx, b.RoomID, b.Room.Number); err != nil {
				log.Printf("⚠️ Failed to create cleaning task for room %d: %v", b.RoomID, err)
			}
		}
		utils.PublishEventAsync(utils.EventCheckOut, map[string]interface{}{
			"booking_id":  b.ID,
			"room_number": b.Room.Number,
		})

	case StatusCancelled:
		if s.notifier != nil {
			msg := fmt.Sprintf("Your booking for room %s has been cancelled.", b.Room.Number)
			if err := s.notifier.NotifyUser(ctx, b.UserID, "Booking cancelled", msg, notification.CategoryBooking); err != nil {
				log.Printf("⚠️ Failed to notify guest of cancellation: %v", err)
			}
		}
		if b.PaymentID != nil {
			utils.PublishEventAsync(utils.EventPaymentReversed, map[string]interface{}{
				"amount":    fmt.Sprintf("%.2f", b.TotalAmount),
				"reference": fmt.Sprintf("booking #%d", b.ID),
			})
		}

	case StatusConfirmed:
		if oldStatus == StatusPending && s.notifier != nil {
			msg := fmt.Sprintf("Your booking for room %s was approved.", b.Room.Number)
			if err := s.notifier.NotifyUser(ctx, b.UserID, "Booking confirmed", msg, notification.CategoryBooking); err != nil {
				log.Printf("⚠️ Failed to notify guest of confirmation: %v", err)
			}
		}
	}
}

func (s *service) audit(ctx context.Context, userID uint, bookingID uint, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	bid := bookingID
	if err := s.auditSvc.LogAction(ctx, &userID, "booking", &bid, action, details, ip, status); err != nil {
		log.Printf("⚠️ Failed to write audit log for %s: %v", action, err)
	}
}
