package billing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptPDF renders a payment receipt for a bill.
func (s *service) ReceiptPDF(ctx context.Context, id uint) ([]byte, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Payment Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Receipt No.", bill.ReceiptNumber},
		{"Date", time.Now().Format("02 Jan 2006")},
		{"Description", bill.Description},
		{"Total Amount", fmt.Sprintf("$%.2f", bill.Amount)},
		{"Paid Amount", fmt.Sprintf("$%.2f", bill.PaidAmount)},
		{"Status", bill.Status},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
