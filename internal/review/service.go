package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharath018/hotel-management-backend/internal/booking"
	"github.com/sharath018/hotel-management-backend/middleware"
)

var (
	ErrNotYourBooking   = errors.New("booking belongs to another guest")
	ErrStayNotCompleted = errors.New("reviews are only allowed after checkout")
	ErrAlreadyReviewed  = errors.New("booking already reviewed")
	ErrNotYourReview    = errors.New("review belongs to another guest")
)

type Service interface {
	CreateReview(ctx context.Context, req CreateReviewRequest, userID uint) (*Review, error)
	ListForRoom(ctx context.Context, roomID uint) (*RoomReviews, error)
	DeleteReview(ctx context.Context, id uint, actor middleware.AccessContext) error
}

type service struct {
	repo     Repository
	bookings booking.Repository
}

func NewService(repo Repository, bookings booking.Repository) Service {
	return &service{repo: repo, bookings: bookings}
}

// CreateReview accepts one review per booking, only from the guest who
// stayed and only after checkout.
func (s *service) CreateReview(ctx context.Context, req CreateReviewRequest, userID uint) (*Review, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotYourBooking
	}
	if b.Status != booking.StatusCheckedOut {
		return nil, ErrStayNotCompleted
	}
	if _, err := s.repo.GetByBookingID(ctx, req.BookingID); err == nil {
		return nil, ErrAlreadyReviewed
	}

	rv := &Review{
		RoomID:    b.RoomID,
		BookingID: req.BookingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return rv, nil
}

func (s *service) ListForRoom(ctx context.Context, roomID uint) (*RoomReviews, error) {
	reviews, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.repo.AverageForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &RoomReviews{
		RoomID:        roomID,
		AverageRating: avg,
		Count:         count,
		Reviews:       reviews,
	}, nil
}

// DeleteReview allows the author or an admin to remove a review.
func (s *service) DeleteReview(ctx context.Context, id uint, actor middleware.AccessContext) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != actor.UserID && actor.RoleName != middleware.RoleAdmin {
		return ErrNotYourReview
	}
	return s.repo.Delete(ctx, id)
}
