package inquiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sharath018/hotel-management-backend/utils"
)

var ErrAlreadyReplied = errors.New("inquiry already replied")

type Service interface {
	CreateInquiry(ctx context.Context, req CreateInquiryRequest, userID *uint) (*Inquiry, error)
	GetInquiry(ctx context.Context, id uint) (*Inquiry, error)
	ListInquiries(ctx context.Context, filters InquiryFilters) ([]Inquiry, int64, error)
	Reply(ctx context.Context, id uint, reply string, staffID uint) (*Inquiry, error)
	Archive(ctx context.Context, id uint) (*Inquiry, error)
	DeleteInquiry(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateInquiry accepts a public contact form submission. A logged-in
// guest's ID is attached when present so staff can see their history.
func (s *service) CreateInquiry(ctx context.Context, req CreateInquiryRequest, userID *uint) (*Inquiry, error) {
	i := &Inquiry{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  StatusOpen,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	utils.PublishEventAsync(utils.EventNewInquiry, map[string]interface{}{
		"inquiry_id": i.ID,
		"name":       i.Name,
		"subject":    i.Subject,
	})

	return i, nil
}

func (s *service) GetInquiry(ctx context.Context, id uint) (*Inquiry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListInquiries(ctx context.Context, filters InquiryFilters) ([]Inquiry, int64, error) {
	return s.repo.List(ctx, filters)
}

// Reply records the staff response and emails it to the submitter.
func (s *service) Reply(ctx context.Context, id uint, reply string, staffID uint) (*Inquiry, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.Status == StatusReplied {
		return nil, ErrAlreadyReplied
	}

	now := time.Now()
	i.Reply = reply
	i.RepliedBy = &staffID
	i.RepliedAt = &now
	i.Status = StatusReplied

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	if err := utils.SendInquiryReplyEmail(i.Email, i.Name, i.Subject, reply); err != nil {
		return nil, fmt.Errorf("reply saved but email failed: %w", err)
	}

	return i, nil
}

func (s *service) Archive(ctx context.Context, id uint) (*Inquiry, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	i.Status = StatusArchived
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("failed to archive inquiry: %w", err)
	}
	return i, nil
}

func (s *service) DeleteInquiry(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
