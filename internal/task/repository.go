package task

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id uint) (*Task, error)
	List(ctx context.Context, filters TaskFilters) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Task, error) {
	var task Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	return &task, err
}

func (r *repository) List(ctx context.Context, filters TaskFilters) ([]Task, error) {
	var tasks []Task
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filters.AssignedTo)
	}
	if filters.RoomID != nil {
		query = query.Where("room_id = ?", *filters.RoomID)
	}

	err := query.Find(&tasks).Error
	return tasks, err
}

func (r *repository) Update(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Task{}, id).Error
}
