package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/sharath018/hotel-management-backend/internal/booking"
	"github.com/sharath018/hotel-management-backend/internal/room"
	"github.com/sharath018/hotel-management-backend/internal/user"
)

type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Export(ctx context.Context, reportType, format string, from, to *time.Time) ([]byte, string, string, error)
	Search(ctx context.Context, query string) (*SearchResults, error)
}

type service struct {
	repo     Repository
	exporter ReportExporter
	rooms    room.Repository
	bookings booking.Repository
	users    user.Repository
}

func NewService(repo Repository, exporter ReportExporter, rooms room.Repository, bookings booking.Repository, users user.Repository) Service {
	return &service{
		repo:     repo,
		exporter: exporter,
		rooms:    rooms,
		bookings: bookings,
		users:    users,
	}
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	return s.repo.DashboardStats(ctx)
}

// Export fetches the rows for the requested window and renders the file.
func (s *service) Export(ctx context.Context, reportType, format string, from, to *time.Time) ([]byte, string, string, error) {
	var data ReportData
	var err error

	switch reportType {
	case ReportTypeBookings:
		data.Bookings, err = s.repo.BookingRows(ctx, from, to)
	case ReportTypeRevenue:
		data.Revenue, err = s.repo.RevenueRows(ctx, from, to)
	case ReportTypeTasks:
		data.Tasks, err = s.repo.TaskRows(ctx, from, to)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to fetch report rows: %w", err)
	}

	return s.exporter.Export(reportType, format, data)
}

const searchLimit = 10

// Search runs one query across rooms, bookings and users for the staff
// omnibox.
func (s *service) Search(ctx context.Context, query string) (*SearchResults, error) {
	rooms, err := s.rooms.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	users, err := s.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	// Bookings match via guest name or room number.
	bookings, _, err := s.bookings.List(ctx, booking.BookingFilters{
		Query: query,
		Page:  1,
		Limit: searchLimit,
	})
	if err != nil {
		return nil, err
	}

	return &SearchResults{
		Rooms:    rooms,
		Bookings: bookings,
		Users:    users,
	}, nil
}
