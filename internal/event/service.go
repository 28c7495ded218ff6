package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sharath018/hotel-management-backend/config"
	"github.com/sharath018/hotel-management-backend/internal/auditlog"
	"github.com/sharath018/hotel-management-backend/internal/auth"
	"github.com/sharath018/hotel-management-backend/internal/billing"
	"github.com/sharath018/hotel-management-backend/internal/booking"
	"github.com/sharath018/hotel-management-backend/internal/notification"
	"github.com/sharath018/hotel-management-backend/middleware"
	"github.com/sharath018/hotel-management-backend/utils"
)

var (
	ErrInvalidEventType        = errors.New("unknown event type")
	ErrInvalidEventDate        = errors.New("invalid event date, use YYYY-MM-DD")
	ErrNotYourEvent            = errors.New("event belongs to another guest")
	ErrInvalidStatusTransition = errors.New("invalid event status transition")
	ErrNotInvoiced             = errors.New("event has not been invoiced yet")
	ErrInvalidSignature        = errors.New("payment signature verification failed")
)

var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// PriceEvent computes the quoted total from the static rate table.
func PriceEvent(eventType string, guests int) (float64, error) {
	rate, ok := Pricing[eventType]
	if !ok {
		return 0, ErrInvalidEventType
	}
	if guests < 1 {
		return 0, errors.New("guest count must be at least 1")
	}
	return rate.Base + rate.PerGuest*float64(guests), nil
}

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest, userID uint, ip string) (*Event, error)
	GetEvent(ctx context.Context, id uint) (*Event, error)
	ListEvents(ctx context.Context, filters EventFilters) ([]Event, int64, error)
	UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest, actor middleware.AccessContext, ip string) (*Event, error)
	Invoice(ctx context.Context, id uint, cost float64, actorID uint, ip string) (*Event, error)
	CreatePaymentIntent(ctx context.Context, id uint, userID uint) (*PaymentIntentResponse, error)
	ConfirmPayment(ctx context.Context, id uint, req ConfirmPaymentRequest, userID uint, ip string) (*Event, error)
	InvoicePDF(ctx context.Context, id uint) ([]byte, error)
}

type service struct {
	repo     Repository
	users    auth.Repository
	bills    billing.Service
	notifier notification.Service
	auditSvc auditlog.Service
	gateway  booking.PaymentGateway

	razorpayKey    string
	razorpaySecret string
}

func NewService(
	repo Repository,
	users auth.Repository,
	bills billing.Service,
	notifier notification.Service,
	auditSvc auditlog.Service,
	gateway booking.PaymentGateway,
	cfg *config.Config,
) Service {
	return &service{
		repo:           repo,
		users:          users,
		bills:          bills,
		notifier:       notifier,
		auditSvc:       auditSvc,
		gateway:        gateway,
		razorpayKey:    cfg.RazorpayKey,
		razorpaySecret: cfg.RazorpaySecret,
	}
}

// CreateEvent registers a hall-event request priced from the static rate
// table. The quoted total is informational until staff issue an invoice.
func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest, userID uint, ip string) (*Event, error) {
	if !ValidType(req.Type) {
		return nil, ErrInvalidEventType
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidEventDate
	}

	total, err := PriceEvent(req.Type, req.Guests)
	if err != nil {
		return nil, err
	}

	e := &Event{
		UserID:      userID,
		Name:        req.Name,
		Type:        req.Type,
		Date:        date,
		Guests:      req.Guests,
		Notes:       req.Notes,
		TotalAmount: total,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.audit(ctx, userID, e.ID, auditlog.ActionEventCreated, map[string]interface{}{
		"name":   e.Name,
		"type":   e.Type,
		"date":   req.Date,
		"guests": e.Guests,
		"total":  e.TotalAmount,
	}, ip, "success")

	utils.PublishEventAsync(utils.EventNewEvent, map[string]interface{}{
		"event_id":   e.ID,
		"name":       e.Name,
		"event_type": e.Type,
		"date":       req.Date,
		"guests":     e.Guests,
	})

	return e, nil
}

func (s *service) GetEvent(ctx context.Context, id uint) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListEvents(ctx context.Context, filters EventFilters) ([]Event, int64, error) {
	return s.repo.List(ctx, filters)
}

// UpdateStatus moves an event along its lifecycle. Guests may only cancel
// their own Pending or Confirmed events.
func (s *service) UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest, actor middleware.AccessContext, ip string) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.IsGuest() {
		if e.UserID != actor.UserID {
			return nil, ErrNotYourEvent
		}
		if req.Status != StatusCancelled {
			return nil, ErrInvalidStatusTransition
		}
	}
	if !transitionAllowed(e.Status, req.Status) {
		return nil, ErrInvalidStatusTransition
	}

	oldStatus := e.Status
	e.Status = req.Status
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}

	s.notifyStatusChange(ctx, e, req.Reason)

	s.audit(ctx, actor.UserID, e.ID, auditlog.ActionEventStatus, map[string]interface{}{
		"from":   oldStatus,
		"to":     req.Status,
		"reason": req.Reason,
	}, ip, "success")

	return e, nil
}

// Invoice issues the final cost. Staff may discount the quoted total here;
// the invoiced figure becomes what the guest owes.
func (s *service) Invoice(ctx context.Context, id uint, cost float64, actorID uint, ip string) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.InvoicedCost = &cost
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to invoice event: %w", err)
	}

	s.audit(ctx, actorID, e.ID, auditlog.ActionEventStatus, map[string]interface{}{
		"invoiced_cost": cost,
		"quoted_total":  e.TotalAmount,
	}, ip, "success")

	return e, nil
}

// CreatePaymentIntent opens the gateway order for an invoiced event.
func (s *service) CreatePaymentIntent(ctx context.Context, id uint, userID uint) (*PaymentIntentResponse, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, ErrNotYourEvent
	}
	if e.InvoicedCost == nil {
		return nil, ErrNotInvoiced
	}

	amount := *e.InvoicedCost
	orderID, err := s.gateway.CreateOrder(
		int64(math.Round(amount*100)),
		"USD",
		uuid.NewString(),
		map[string]interface{}{
			"event_id": e.ID,
			"user_id":  userID,
		},
	)
	if err != nil {
		return nil, err
	}

	e.OrderID = orderID
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to attach order to event: %w", err)
	}

	return &PaymentIntentResponse{
		EventID:     e.ID,
		OrderID:     orderID,
		TotalAmount: amount,
		Currency:    "USD",
		RazorpayKey: s.razorpayKey,
	}, nil
}

// ConfirmPayment verifies the captured payment, confirms the event and
// settles its bill. Replays of an already-paid order return the event
// unchanged.
func (s *service) ConfirmPayment(ctx context.Context, id uint, req ConfirmPaymentRequest, userID uint, ip string) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, ErrNotYourEvent
	}
	if e.OrderID != req.OrderID {
		return nil, errors.New("order does not belong to this event")
	}

	if e.PaymentID != nil && *e.PaymentID == req.PaymentID {
		return e, nil
	}

	if !booking.VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.razorpaySecret) {
		s.audit(ctx, userID, e.ID, auditlog.ActionPaymentFailed, map[string]interface{}{
			"order_id": req.OrderID,
			"reason":   "signature mismatch",
		}, ip, "failure")
		return nil, ErrInvalidSignature
	}

	if _, err := s.gateway.FetchPayment(req.PaymentID); err != nil {
		return nil, err
	}

	paymentID := req.PaymentID
	e.PaymentID = &paymentID
	e.Status = StatusConfirmed
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to confirm event payment: %w", err)
	}

	amount := e.TotalAmount
	if e.InvoicedCost != nil {
		amount = *e.InvoicedCost
	}
	if s.bills != nil {
		desc := fmt.Sprintf("%s event on %s", e.Type, e.Date.Format("2006-01-02"))
		if _, err := s.bills.CreateForEvent(ctx, e.UserID, e.ID, amount, true, desc); err != nil {
			log.Printf("⚠️ Failed to create bill for event %d: %v", e.ID, err)
		}
	}

	s.audit(ctx, userID, e.ID, auditlog.ActionPaymentVerified, map[string]interface{}{
		"order_id":   req.OrderID,
		"payment_id": req.PaymentID,
		"amount":     amount,
	}, ip, "success")

	s.notifyStatusChange(ctx, e, "")

	utils.PublishEventAsync(utils.EventPaymentReceived, map[string]interface{}{
		"amount":    fmt.Sprintf("%.2f", amount),
		"reference": fmt.Sprintf("event #%d", e.ID),
	})

	return e, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *service) notifyStatusChange(ctx context.Context, e *Event, reason string) {
	if s.notifier != nil {
		msg := fmt.Sprintf("Your event \"%s\" is now %s.", e.Name, e.Status)
		if err := s.notifier.NotifyUser(ctx, e.UserID, "Event update", msg, notification.CategoryEvent); err != nil {
			log.Printf("⚠️ Failed to notify guest for event %d: %v", e.ID, err)
		}
	}

	if s.users == nil {
		return
	}
	u, err := s.users.FindByID(e.UserID)
	if err != nil {
		log.Printf("⚠️ Failed to load guest for event email: %v", err)
		return
	}
	switch e.Status {
	case StatusConfirmed:
		utils.SendEventConfirmationEmail(u.Email, u.Name, e.Name)
	case StatusCancelled:
		utils.SendEventCancellationEmail(u.Email, u.Name, e.Name, reason)
	}
}

func (s *service) audit(ctx context.Context, userID uint, eventID uint, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	eid := eventID
	if err := s.auditSvc.LogAction(ctx, &userID, "event", &eid, action, details, ip, status); err != nil {
		log.Printf("⚠️ Failed to write audit log for %s: %v", action, err)
	}
}
