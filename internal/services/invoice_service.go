package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"admindash/internal/domain/models"
	"admindash/internal/repositories"
	"admindash/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// InvoiceService renders order invoices as PDF.
type InvoiceService struct {
	OrderRepo repositories.OrderRepository
	RequestID string

	// Loader is swappable in tests to skip the database.
	Loader func(int64) (models.Order, error)
}

// GenerateInvoice renders the invoice PDF for one order and returns the
// bytes plus a download filename.
func (s InvoiceService) GenerateInvoice(orderID int64) ([]byte, string, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "orders", "generate_invoice", fmt.Sprintf("order_id=%d", orderID))
	return buildInvoicePDF(order)
}

func (s InvoiceService) loadOrder(orderID int64) (models.Order, error) {
	if s.Loader != nil {
		return s.Loader(orderID)
	}
	return s.OrderRepo.GetByID(orderID)
}

func buildInvoicePDF(o models.Order) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	number := safe(o.OrderNumber, fmt.Sprintf("%d", o.ID))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Order No : #"+number)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date     : "+utils.FormatDateTime(time.Now()))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status   : "+safe(o.Status, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name  : "+safe(o.CustomerName, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Email : "+safe(o.CustomerEmail, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Items:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := models.ParseLineItems(o.LineItems)
	if len(items) == 0 {
		pdf.Cell(0, 6, "(no line items recorded)")
		pdf.Ln(6)
	}
	for i, item := range items {
		line := fmt.Sprintf("%d) %s x%d  %s %s",
			i+1, safe(item.Name, "-"), item.Quantity, safe(item.Total, "0"), o.Currency)
		pdf.MultiCell(0, 6, line, "", "", false)
		pdf.Ln(1)
	}

	leads := models.LeadsCount(models.ParseOrderMeta(o.MetaData), o.Leads)
	if leads != "-" {
		pdf.Ln(2)
		pdf.Cell(0, 6, "Leads count: "+leads)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s %s", safe(o.Total, "0"), o.Currency))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s.pdf", safeFilenamePart(number))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	return utils.FirstNonEmpty(v, fallback)
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
