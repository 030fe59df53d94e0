package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Order is a synced storefront order. LineItems arrives from the sync
// pipeline either as a JSON array or as a doubly-encoded JSON string;
// both forms are stored and served untouched.
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Total         string          `json:"total"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	LineItems     json.RawMessage `json:"line_items"`
	MetaData      json.RawMessage `json:"meta_data"`
	Leads         string          `json:"leads,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// LineItem is the subset of a storefront line item the dashboard shows.
type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// OrderMeta is one key/value pair of an order's meta_data block.
type OrderMeta struct {
	Key          string `json:"key"`
	Value        string `json:"value"`
	DisplayValue string `json:"display_value"`
}

// ParseLineItems tolerates both shapes line_items shows up in: a plain
// JSON array, or that same array encoded once more as a JSON string.
func ParseLineItems(raw json.RawMessage) []LineItem {
	if len(raw) == 0 {
		return nil
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil
	}
	return items
}

// ParseOrderMeta decodes the meta_data block, returning nil on any
// malformed payload.
func ParseOrderMeta(raw json.RawMessage) []OrderMeta {
	if len(raw) == 0 {
		return nil
	}
	var meta []OrderMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil
	}
	return meta
}

// LeadsCount extracts the "leads count" an order carries in its meta
// block. display_value wins over value; a top-level leads field is the
// fallback; "-" means no lead information at all.
func LeadsCount(meta []OrderMeta, fallback string) string {
	for _, m := range meta {
		switch strings.ToLower(strings.TrimSpace(m.Key)) {
		case "leads", "leads count", "exhibitors", "exhibitors count":
			if strings.TrimSpace(m.DisplayValue) != "" {
				return strings.TrimSpace(m.DisplayValue)
			}
			if strings.TrimSpace(m.Value) != "" {
				return strings.TrimSpace(m.Value)
			}
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return strings.TrimSpace(fallback)
	}
	return "-"
}
