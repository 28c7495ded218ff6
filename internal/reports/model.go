package reports

import "time"

// Report types
const (
	ReportTypeBookings = "bookings"
	ReportTypeRevenue  = "revenue"
	ReportTypeTasks    = "tasks"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// DashboardStats is the aggregate payload the staff dashboard polls.
type DashboardStats struct {
	Users            int64   `json:"users"`
	Rooms            int64   `json:"rooms"`
	Bookings         int64   `json:"bookings"`
	Revenue          float64 `json:"revenue"`
	TodayCheckIns    int64   `json:"todayCheckIns"`
	TodayCheckOuts   int64   `json:"todayCheckOuts"`
	AvailableRooms   int64   `json:"availableRooms"`
	OccupiedRooms    int64   `json:"occupiedRooms"`
	CleaningRooms    int64   `json:"cleaningRooms"`
	MaintenanceRooms int64   `json:"maintenanceRooms"`
	PendingTasks     int64   `json:"pendingTasks"`
	OpenInquiries    int64   `json:"openInquiries"`
}

// BookingReportRow is one line of the bookings export
type BookingReportRow struct {
	ID         uint      `json:"id"`
	RoomNumber string    `json:"room_number"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// RevenueReportRow is one day of settled revenue
type RevenueReportRow struct {
	Day      time.Time `json:"day"`
	Bookings int64     `json:"bookings"`
	Revenue  float64   `json:"revenue"`
}

// TaskReportRow is one line of the housekeeping export
type TaskReportRow struct {
	ID          uint       `json:"id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	RoomNumber  string     `json:"room_number"`
	AssigneeID  *uint      `json:"assignee_id"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ReportData bundles the rows an export can carry
type ReportData struct {
	Bookings []BookingReportRow
	Revenue  []RevenueReportRow
	Tasks    []TaskReportRow
}

// SearchResults is the global staff search payload
type SearchResults struct {
	Rooms    interface{} `json:"rooms"`
	Bookings interface{} `json:"bookings"`
	Users    interface{} `json:"users"`
}
