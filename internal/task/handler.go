package task

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ListTasks handles GET /tasks (pending and in-progress by default)
func (h *Handler) ListTasks(c *gin.Context) {
	filters := TaskFilters{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if assignedStr := c.Query("assigned_to"); assignedStr != "" {
		if assigned, err := strconv.ParseUint(assignedStr, 10, 32); err == nil {
			uid := uint(assigned)
			filters.AssignedTo = &uid
		}
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	// Default listing hides finished work
	if filters.Status == "" {
		open := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status != StatusCompleted {
				open = append(open, t)
			}
		}
		tasks = open
	}

	c.JSON(http.StatusOK, gin.H{"data": tasks})
}

// ListCompletedTasks handles GET /tasks/completed
func (h *Handler) ListCompletedTasks(c *gin.Context) {
	tasks, err := h.service.ListTasks(c.Request.Context(), TaskFilters{Status: StatusCompleted})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tasks})
}

// CreateTask handles POST /tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDueDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": task})
}

// UpdateTask handles PUT /tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task})
}

// DeleteTask handles DELETE /tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
