package event

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	GetByOrderID(ctx context.Context, orderID string) (*Event, error)
	List(ctx context.Context, filters EventFilters) ([]Event, int64, error)
	Update(ctx context.Context, e *Event) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, filters EventFilters) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.WithContext(ctx).Model(&Event{})

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = 20
	}

	err := query.Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error

	return events, total, err
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&Event{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
