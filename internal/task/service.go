package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sharath018/hotel-management-backend/internal/room"
)

var ErrInvalidDueDate = errors.New("invalid due date, expected YYYY-MM-DD")

type Service interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)
	CreateCleaningTask(ctx context.Context, roomID uint, roomNumber string) (*Task, error)
	GetTask(ctx context.Context, id uint) (*Task, error)
	ListTasks(ctx context.Context, filters TaskFilters) ([]Task, error)
	UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

type service struct {
	repo  Repository
	rooms room.Repository
}

func NewService(repo Repository, rooms room.Repository) Service {
	return &service{repo: repo, rooms: rooms}
}

func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	task := &Task{
		Title:       req.Title,
		Type:        req.Type,
		Priority:    req.Priority,
		Status:      StatusPending,
		RoomID:      req.RoomID,
		AssignedTo:  req.AssignedTo,
		Description: req.Description,
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		task.DueDate = &due
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// CreateCleaningTask is invoked automatically on guest checkout.
func (s *service) CreateCleaningTask(ctx context.Context, roomID uint, roomNumber string) (*Task, error) {
	rid := roomID
	task := &Task{
		Title:       fmt.Sprintf("Clean room %s after checkout", roomNumber),
		Type:        TypeCleaning,
		Priority:    PriorityMedium,
		Status:      StatusPending,
		RoomID:      &rid,
		Description: "Auto-created on checkout",
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create cleaning task: %w", err)
	}
	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uint) (*Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListTasks(ctx context.Context, filters TaskFilters) ([]Task, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	if req.Status != nil && *req.Status != task.Status {
		task.Status = *req.Status
		if task.Status == StatusCompleted {
			now := time.Now()
			task.CompletedAt = &now

			// Completing a cleaning task returns the room to inventory.
			if task.Type == TypeCleaning && task.RoomID != nil {
				if err := s.rooms.UpdateStatus(ctx, *task.RoomID, room.StatusAvailable); err != nil {
					log.Printf("⚠️ Failed to mark room %d available after cleaning: %v", *task.RoomID, err)
				}
			}
		}
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
