package booking

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uint) (*Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*Booking, error)
	List(ctx context.Context, filters BookingFilters) ([]Booking, int64, error)
	GetBlockingForRoom(ctx context.Context, roomID uint, excludeID uint) ([]Booking, error)
	Update(ctx context.Context, b *Booking) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Preload("Room").First(&b, id).Error
	return &b, err
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Preload("Room").Where("order_id = ?", orderID).First(&b).Error
	return &b, err
}

func (r *repository) List(ctx context.Context, filters BookingFilters) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&Booking{}).Preload("Room")
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.RoomID != nil {
		query = query.Where("room_id = ?", *filters.RoomID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.From != nil {
		query = query.Where("check_in >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("check_out <= ?", *filters.To)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.
			Joins("JOIN rooms ON rooms.id = bookings.room_id").
			Joins("JOIN users ON users.id = bookings.user_id").
			Where("users.name ILIKE ? OR rooms.number ILIKE ?", like, like)
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
		Find(&bookings).Error

	return bookings, total, err
}

// GetBlockingForRoom returns bookings that currently hold dates on the
// room. Pass excludeID to leave a specific booking out of the check, e.g.
// when re-validating at payment confirmation.
func (r *repository) GetBlockingForRoom(ctx context.Context, roomID uint, excludeID uint) ([]Booking, error) {
	var bookings []Booking
	query := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, []string{StatusPending, StatusConfirmed, StatusCheckedIn})
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Find(&bookings).Error
	return bookings, err
}

func (r *repository) Update(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}
