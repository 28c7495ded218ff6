package room

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id uint) (*Room, error)
	GetByNumber(ctx context.Context, number string) (*Room, error)
	List(ctx context.Context, filters RoomFilters) ([]Room, error)
	Update(ctx context.Context, room *Room) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, q string, limit int) ([]Room, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	return &room, err
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&room).Error
	return &room, err
}

func (r *repository) List(ctx context.Context, filters RoomFilters) ([]Room, error) {
	var rooms []Room
	query := r.db.WithContext(ctx).Order("number ASC")
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	err := query.Find(&rooms).Error
	return rooms, err
}

func (r *repository) Update(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Room{}, id).Error
}

func (r *repository) Search(ctx context.Context, q string, limit int) ([]Room, error) {
	var rooms []Room
	pattern := "%" + q + "%"
	err := r.db.WithContext(ctx).
		Where("number ILIKE ? OR type ILIKE ? OR description ILIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Find(&rooms).Error
	return rooms, err
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Room{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
