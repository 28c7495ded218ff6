package review

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id uint) (*Review, error)
	GetByBookingID(ctx context.Context, bookingID uint) (*Review, error)
	ListByRoom(ctx context.Context, roomID uint) ([]Review, error)
	AverageForRoom(ctx context.Context, roomID uint) (float64, int64, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uint) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) ListByRoom(ctx context.Context, roomID uint) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) AverageForRoom(ctx context.Context, roomID uint) (float64, int64, error) {
	type row struct {
		Avg   float64
		Count int64
	}
	var result row
	err := r.db.WithContext(ctx).Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("room_id = ?", roomID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Review{}, id).Error
}
