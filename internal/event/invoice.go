package event

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// InvoicePDF renders the invoice for a hall event. The invoiced cost takes
// precedence over the quoted total when staff have issued one.
func (s *service) InvoicePDF(ctx context.Context, id uint) ([]byte, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amount := e.TotalAmount
	invoiced := "No"
	if e.InvoicedCost != nil {
		amount = *e.InvoicedCost
		invoiced = "Yes"
	}

	rate := Pricing[e.Type]

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Event Invoice")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Invoice Date", time.Now().Format("02 Jan 2006")},
		{"Event", e.Name},
		{"Type", e.Type},
		{"Event Date", e.Date.Format("02 Jan 2006")},
		{"Guests", fmt.Sprintf("%d", e.Guests)},
		{"Base Charge", fmt.Sprintf("$%.2f", rate.Base)},
		{"Per-Guest Charge", fmt.Sprintf("$%.2f x %d", rate.PerGuest, e.Guests)},
		{"Quoted Total", fmt.Sprintf("$%.2f", e.TotalAmount)},
		{"Invoiced", invoiced},
		{"Amount Due", fmt.Sprintf("$%.2f", amount)},
		{"Status", e.Status},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
