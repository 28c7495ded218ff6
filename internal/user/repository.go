package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/sharath018/hotel-management-backend/internal/auth"
)

// Filters narrows staff user listings
type Filters struct {
	Role   string
	Status string
	Query  string
	Page   int
	Limit  int
}

type Repository interface {
	List(ctx context.Context, filters Filters) ([]auth.User, int64, error)
	GetByID(ctx context.Context, id uint) (*auth.User, error)
	Update(ctx context.Context, u *auth.User) error
	CountByRole(ctx context.Context) (map[string]int64, error)
	Search(ctx context.Context, query string, limit int) ([]auth.User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters Filters) ([]auth.User, int64, error) {
	var users []auth.User
	var total int64

	query := r.db.WithContext(ctx).Model(&auth.User{}).
		Joins("JOIN user_roles ON users.role_id = user_roles.id")

	if filters.Role != "" {
		query = query.Where("user_roles.role_name = ?", filters.Role)
	}
	if filters.Status != "" {
		query = query.Where("users.status = ?", filters.Status)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("users.name ILIKE ? OR users.email ILIKE ?", like, like)
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

	err := query.Preload("Role").
		Order("users.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error

	return users, total, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*auth.User, error) {
	var u auth.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *auth.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) CountByRole(ctx context.Context) (map[string]int64, error) {
	type row struct {
		RoleName string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&auth.User{}).
		Select("user_roles.role_name, COUNT(*) as count").
		Joins("JOIN user_roles ON users.role_id = user_roles.id").
		Group("user_roles.role_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.RoleName] = rw.Count
	}
	return counts, nil
}

func (r *repository) Search(ctx context.Context, query string, limit int) ([]auth.User, error) {
	var users []auth.User
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).Preload("Role").
		Where("name ILIKE ? OR email ILIKE ?", like, like).
		Limit(limit).
		Find(&users).Error
	return users, err
}
