package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders report rows into a downloadable file.
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeBookings:
		return e.exportBookingsByFormat(format, timestamp, data.Bookings)
	case ReportTypeRevenue:
		return e.exportRevenueByFormat(format, timestamp, data.Revenue)
	case ReportTypeTasks:
		return e.exportTasksByFormat(format, timestamp, data.Tasks)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// BOOKINGS EXPORTS
//// ============================

func (e *reportExporter) exportBookingsByFormat(format, timestamp string, rows []BookingReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportBookingsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("bookings_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportBookingsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("bookings_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportBookingsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("bookings_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for bookings: %s", format)
	}
}

func (e *reportExporter) exportBookingsCSV(rows []BookingReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Room", "Guest", "Email", "Check-In", "Check-Out", "Guests", "Total", "Status", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.RoomNumber,
			r.GuestName,
			r.GuestEmail,
			r.CheckIn.Format("2006-01-02"),
			r.CheckOut.Format("2006-01-02"),
			strconv.Itoa(r.Guests),
			fmt.Sprintf("%.2f", r.Total),
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportBookingsExcel(rows []BookingReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Bookings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Room", "Guest", "Email", "Check-In", "Check-Out", "Guests", "Total", "Status", "Created"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.RoomNumber)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.GuestName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.GuestEmail)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.CheckIn.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.CheckOut.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Guests)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Total)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportBookingsPDF(rows []BookingReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Bookings Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Room", "Guest", "Check-In", "Check-Out", "Guests", "Total", "Status"}
	widths := []float64{15, 25, 60, 30, 30, 20, 30, 30}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.RoomNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.GuestName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.CheckIn.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.CheckOut.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, strconv.Itoa(r.Guests), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("$%.2f", r.Total), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// REVENUE EXPORTS
//// ============================

func (e *reportExporter) exportRevenueByFormat(format, timestamp string, rows []RevenueReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportRevenueExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("revenue_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportRevenueCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("revenue_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for revenue: %s", format)
	}
}

func (e *reportExporter) exportRevenueCSV(rows []RevenueReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Day", "Bills", "Revenue"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Day.Format("2006-01-02"),
			strconv.FormatInt(r.Bookings, 10),
			fmt.Sprintf("%.2f", r.Revenue),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportRevenueExcel(rows []RevenueReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Revenue"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Day", "Bills", "Revenue"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Day.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Bookings)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Revenue)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// TASK EXPORTS
//// ============================

func (e *reportExporter) exportTasksByFormat(format, timestamp string, rows []TaskReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportTasksCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("tasks_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatExcel:
		data, err := e.exportTasksExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("tasks_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for tasks: %s", format)
	}
}

func (e *reportExporter) exportTasksCSV(rows []TaskReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Type", "Description", "Room", "Priority", "Status", "Created", "Completed"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		completed := ""
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04:05")
		}
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Type,
			r.Description,
			r.RoomNumber,
			r.Priority,
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			completed,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportTasksExcel(rows []TaskReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Tasks"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Type", "Description", "Room", "Priority", "Status", "Created", "Completed"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		completed := ""
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04:05")
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Type)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.RoomNumber)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Priority)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), completed)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
