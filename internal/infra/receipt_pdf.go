package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"tindapos/internal/model"

	"github.com/go-pdf/fpdf"
)

// ReceiptRenderer writes sale receipts as PDF files under a storage root.
type ReceiptRenderer struct {
	storageDir string
	storeName  string
}

func NewReceiptRenderer(storageDir, storeName string) (*ReceiptRenderer, error) {
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, err
	}
	return &ReceiptRenderer{storageDir: storageDir, storeName: storeName}, nil
}

// Render produces the receipt PDF for a sale and returns its path.
// Rendering is idempotent: re-running a job overwrites the same file.
func (r *ReceiptRenderer) Render(sale *model.Sale) (string, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, r.storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Receipt "+sale.SaleNumber, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, sale.CreatedAt.Format("Jan 2, 2006 3:04 PM"), "", 1, "C", false, 0, "")
	if sale.Cashier != nil {
		pdf.CellFormat(0, 5, "Cashier: "+sale.Cashier.Name, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	// line items
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(55, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(15, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range sale.Items {
		pdf.CellFormat(55, 6, item.ProductName, "", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	total := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(70, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, value, "", 1, "R", false, 0, "")
	}
	total("TOTAL", sale.TotalAmount.StringFixed(2), true)
	total("Tendered ("+sale.PaymentMethod+")", sale.AmountTendered.StringFixed(2), false)
	total("Change", sale.ChangeAmount.StringFixed(2), false)

	if sale.Status == model.SaleVoided {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(0, 8, "*** VOIDED ***", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	path := filepath.Join(r.storageDir, sale.SaleNumber+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}
