package services

import (
	"bytes"
	"encoding/json"
	"testing"

	"admindash/internal/domain/models"
)

func TestGenerateInvoiceUsesLoader(t *testing.T) {
	svc := InvoiceService{
		Loader: func(id int64) (models.Order, error) {
			return models.Order{
				ID:            id,
				OrderNumber:   "WC-1042",
				CustomerName:  "Jane Buyer",
				CustomerEmail: "jane@example.com",
				Total:         "199.00",
				Currency:      "USD",
				Status:        "completed",
				LineItems:     json.RawMessage(`[{"name":"Exhibitor List","quantity":1,"total":"199.00"}]`),
				MetaData:      json.RawMessage(`[{"key":"leads count","value":"480","display_value":"500+"}]`),
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateInvoice(42)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:min(8, len(pdf))])
	}
	if filename != "INVOICE_WC-1042.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestGenerateInvoiceFallsBackToID(t *testing.T) {
	svc := InvoiceService{
		Loader: func(id int64) (models.Order, error) {
			return models.Order{ID: id}, nil
		},
	}

	pdf, filename, err := svc.GenerateInvoice(7)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty PDF output")
	}
	if filename != "INVOICE_7.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}
