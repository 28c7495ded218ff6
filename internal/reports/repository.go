package reports

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	BookingRows(ctx context.Context, from, to *time.Time) ([]BookingReportRow, error)
	RevenueRows(ctx context.Context, from, to *time.Time) ([]RevenueReportRow, error)
	TaskRows(ctx context.Context, from, to *time.Time) ([]TaskReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := r.db.WithContext(ctx)

	if err := db.Table("users").Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Table("rooms").Count(&stats.Rooms).Error; err != nil {
		return nil, err
	}
	if err := db.Table("bookings").Count(&stats.Bookings).Error; err != nil {
		return nil, err
	}
	if err := db.Table("bills").
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	if err := db.Table("bookings").
		Where("check_in >= ? AND check_in < ? AND status IN ?", today, tomorrow,
			[]string{"Confirmed", "CheckedIn"}).
		Count(&stats.TodayCheckIns).Error; err != nil {
		return nil, err
	}
	if err := db.Table("bookings").
		Where("check_out >= ? AND check_out < ? AND status IN ?", today, tomorrow,
			[]string{"CheckedIn", "CheckedOut"}).
		Count(&stats.TodayCheckOuts).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var roomCounts []statusCount
	if err := db.Table("rooms").
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&roomCounts).Error; err != nil {
		return nil, err
	}
	for _, rc := range roomCounts {
		switch rc.Status {
		case "Available":
			stats.AvailableRooms = rc.Count
		case "Occupied":
			stats.OccupiedRooms = rc.Count
		case "Cleaning":
			stats.CleaningRooms = rc.Count
		case "Maintenance":
			stats.MaintenanceRooms = rc.Count
		}
	}

	if err := db.Table("tasks").
		Where("status <> ?", "Completed").
		Count(&stats.PendingTasks).Error; err != nil {
		return nil, err
	}
	if err := db.Table("inquiries").
		Where("status = ?", "Open").
		Count(&stats.OpenInquiries).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) BookingRows(ctx context.Context, from, to *time.Time) ([]BookingReportRow, error) {
	var rows []BookingReportRow
	query := r.db.WithContext(ctx).Table("bookings b").
		Select(`b.id, r.number AS room_number, u.name AS guest_name, u.email AS guest_email,
			b.check_in, b.check_out, b.guests, b.total_amount AS total, b.status, b.created_at`).
		Joins("JOIN rooms r ON r.id = b.room_id").
		Joins("JOIN users u ON u.id = b.user_id")

	if from != nil {
		query = query.Where("b.check_in >= ?", *from)
	}
	if to != nil {
		query = query.Where("b.check_in < ?", *to)
	}

	err := query.Order("b.check_in DESC").Scan(&rows).Error
	return rows, err
}

func (r *repository) RevenueRows(ctx context.Context, from, to *time.Time) ([]RevenueReportRow, error) {
	var rows []RevenueReportRow
	query := r.db.WithContext(ctx).Table("bills").
		Select("DATE_TRUNC('day', created_at) AS day, COUNT(*) AS bookings, COALESCE(SUM(paid_amount), 0) AS revenue").
		Where("paid_amount > 0")

	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}

	err := query.Group("DATE_TRUNC('day', created_at)").Order("day").Scan(&rows).Error
	return rows, err
}

func (r *repository) TaskRows(ctx context.Context, from, to *time.Time) ([]TaskReportRow, error) {
	var rows []TaskReportRow
	query := r.db.WithContext(ctx).Table("tasks t").
		Select(`t.id, t.type, t.description, COALESCE(r.number, '') AS room_number,
			t.assigned_to AS assignee_id, t.priority, t.status, t.created_at, t.completed_at`).
		Joins("LEFT JOIN rooms r ON r.id = t.room_id")

	if from != nil {
		query = query.Where("t.created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("t.created_at < ?", *to)
	}

	err := query.Order("t.created_at DESC").Scan(&rows).Error
	return rows, err
}
