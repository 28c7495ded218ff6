package inquiry

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, i *Inquiry) error
	GetByID(ctx context.Context, id uint) (*Inquiry, error)
	List(ctx context.Context, filters InquiryFilters) ([]Inquiry, int64, error)
	Update(ctx context.Context, i *Inquiry) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, i *Inquiry) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Inquiry, error) {
	var i Inquiry
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repository) List(ctx context.Context, filters InquiryFilters) ([]Inquiry, int64, error) {
	var inquiries []Inquiry
	var total int64

	query := r.db.WithContext(ctx).Model(&Inquiry{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
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

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error

	return inquiries, total, err
}

func (r *repository) Update(ctx context.Context, i *Inquiry) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Inquiry{}, id).Error
}
