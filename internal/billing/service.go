package billing

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/sharath018/hotel-management-backend/internal/auditlog"
)

var (
	ErrOverpayment = errors.New("payment exceeds outstanding balance")
	ErrAlreadyPaid = errors.New("bill is already settled")
)

type Service interface {
	CreateForBooking(ctx context.Context, userID, bookingID uint, amount float64, settled bool, description string) (*Bill, error)
	CreateForEvent(ctx context.Context, userID, eventID uint, amount float64, settled bool, description string) (*Bill, error)
	GetBill(ctx context.Context, id uint) (*Bill, error)
	ListBills(ctx context.Context, filters BillFilters) ([]Bill, int64, error)
	Pay(ctx context.Context, id uint, req PayRequest, actorID uint, ip string) (*Bill, error)
	ReceiptPDF(ctx context.Context, id uint) ([]byte, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) CreateForBooking(ctx context.Context, userID, bookingID uint, amount float64, settled bool, description string) (*Bill, error) {
	bid := bookingID
	bill := &Bill{
		UserID:        userID,
		BookingID:     &bid,
		Description:   description,
		Amount:        amount,
		ReceiptNumber: newReceiptNumber(),
		Status:        StatusUnpaid,
	}
	if settled {
		bill.PaidAmount = amount
		bill.Status = StatusPaid
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return bill, nil
}

func (s *service) CreateForEvent(ctx context.Context, userID, eventID uint, amount float64, settled bool, description string) (*Bill, error) {
	eid := eventID
	bill := &Bill{
		UserID:        userID,
		EventID:       &eid,
		Description:   description,
		Amount:        amount,
		ReceiptNumber: newReceiptNumber(),
		Status:        StatusUnpaid,
	}
	if settled {
		bill.PaidAmount = amount
		bill.Status = StatusPaid
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return bill, nil
}

func (s *service) GetBill(ctx context.Context, id uint) (*Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBills(ctx context.Context, filters BillFilters) ([]Bill, int64, error) {
	return s.repo.List(ctx, filters)
}

// Pay records a payment against the bill and flips its status based on
// the outstanding balance.
func (s *service) Pay(ctx context.Context, id uint, req PayRequest, actorID uint, ip string) (*Bill, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if bill.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}
	if bill.PaidAmount+req.Amount > bill.Amount {
		return nil, ErrOverpayment
	}

	bill.PaidAmount += req.Amount
	if bill.PaidAmount >= bill.Amount {
		bill.Status = StatusPaid
	} else {
		bill.Status = StatusPartial
	}

	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if s.auditSvc != nil {
		billID := bill.ID
		if err := s.auditSvc.LogAction(ctx, &actorID, "bill", &billID, auditlog.ActionBillPaid, map[string]interface{}{
			"amount": req.Amount,
			"method": req.Method,
			"status": bill.Status,
		}, ip, "success"); err != nil {
			log.Printf("⚠️ Failed to audit bill payment: %v", err)
		}
	}

	return bill, nil
}

func newReceiptNumber() string {
	return "RCPT-" + uuid.NewString()
}
