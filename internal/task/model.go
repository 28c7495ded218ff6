package task

import "time"

// Task types
const (
	TypeCleaning    = "Cleaning"
	TypeMaintenance = "Maintenance"
	TypeService     = "Service"
)

// Task priorities
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task statuses
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task maps to the tasks table
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Type        string     `gorm:"size:20;not null;index" json:"type"`
	Priority    string     `gorm:"size:10;not null;default:Medium" json:"priority"`
	Status      string     `gorm:"size:20;not null;default:Pending;index" json:"status"`
	RoomID      *uint      `gorm:"index" json:"room_id,omitempty"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// CreateTaskRequest is the staff payload for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=Cleaning Maintenance Service"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	RoomID      *uint  `json:"room_id"`
	AssignedTo  *uint  `json:"assigned_to"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD
}

// UpdateTaskRequest updates status or assignment
type UpdateTaskRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed"`
	Priority   *string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssignedTo *uint   `json:"assigned_to"`
}

// TaskFilters narrows task listings
type TaskFilters struct {
	Status     string
	Type       string
	AssignedTo *uint
	RoomID     *uint
}
