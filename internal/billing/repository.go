package billing

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, bill *Bill) error
	GetByID(ctx context.Context, id uint) (*Bill, error)
	GetByBookingID(ctx context.Context, bookingID uint) (*Bill, error)
	List(ctx context.Context, filters BillFilters) ([]Bill, int64, error)
	Update(ctx context.Context, bill *Bill) error
	TotalRevenue(ctx context.Context) (float64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, bill *Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Bill, error) {
	var bill Bill
	err := r.db.WithContext(ctx).First(&bill, id).Error
	return &bill, err
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uint) (*Bill, error) {
	var bill Bill
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&bill).Error
	return &bill, err
}

func (r *repository) List(ctx context.Context, filters BillFilters) ([]Bill, int64, error) {
	var bills []Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&Bill{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}

	err := query.Order("created_at DESC").
		Limit(filters.Limit).
		Offset((filters.Page - 1) * filters.Limit).
		Find(&bills).Error

	return bills, total, err
}

func (r *repository) Update(ctx context.Context, bill *Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *repository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&Bill{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&total).Error
	return total, err
}
