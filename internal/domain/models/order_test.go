package models

import (
	"encoding/json"
	"testing"
)

func TestParseLineItemsPlainArray(t *testing.T) {
	raw := json.RawMessage(`[{"name":"Exhibitor List","quantity":2,"total":"199.00"}]`)
	items := ParseLineItems(raw)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Name != "Exhibitor List" || items[0].Quantity != 2 || items[0].Total != "199.00" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestParseLineItemsDoublyEncodedString(t *testing.T) {
	// the sync pipeline sometimes stores the array encoded once more as
	// a JSON string
	raw := json.RawMessage(`"[{\"name\":\"Visitor List\",\"quantity\":1,\"total\":\"99.00\"}]"`)
	items := ParseLineItems(raw)
	if len(items) != 1 || items[0].Name != "Visitor List" {
		t.Fatalf("doubly-encoded line_items not decoded: %+v", items)
	}
}

func TestParseLineItemsGarbage(t *testing.T) {
	if items := ParseLineItems(nil); items != nil {
		t.Fatalf("nil input should yield nil, got %v", items)
	}
	if items := ParseLineItems(json.RawMessage(`"not json at all"`)); items != nil {
		t.Fatalf("undecodable string should yield nil, got %v", items)
	}
	if items := ParseLineItems(json.RawMessage(`{"name":"x"}`)); items != nil {
		t.Fatalf("non-array object should yield nil, got %v", items)
	}
}

func TestLeadsCountDisplayValueWins(t *testing.T) {
	meta := []OrderMeta{
		{Key: "Leads Count", Value: "480", DisplayValue: "500+"},
	}
	if got := LeadsCount(meta, ""); got != "500+" {
		t.Fatalf("display_value should win, got %q", got)
	}
}

func TestLeadsCountKeyAliases(t *testing.T) {
	for _, key := range []string{"leads", "leads count", "Exhibitors", "exhibitors count"} {
		meta := []OrderMeta{{Key: key, Value: "120"}}
		if got := LeadsCount(meta, ""); got != "120" {
			t.Fatalf("key %q should resolve to value, got %q", key, got)
		}
	}
}

func TestLeadsCountFallbacks(t *testing.T) {
	meta := []OrderMeta{{Key: "unrelated", Value: "9"}}
	if got := LeadsCount(meta, "300"); got != "300" {
		t.Fatalf("top-level leads should be the fallback, got %q", got)
	}
	if got := LeadsCount(nil, ""); got != "-" {
		t.Fatalf("no lead info should render a dash, got %q", got)
	}
}
