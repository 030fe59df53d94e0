package domain

import (
	"strings"
	"testing"
)

func TestValidatePageSectionsAcceptsRegisteredShape(t *testing.T) {
	doc := `{
		"page": "category",
		"slug": "exhibitor-lists",
		"sections": {
			"how_powers_growth": {
				"heading": "H",
				"sub_heading": "S",
				"items": [{"feature_tagline": "t", "title": "a", "description": "d"}]
			},
			"our_process": {
				"heading": "H",
				"steps": [{"title": "a", "description": "d"}]
			}
		}
	}`
	if err := ValidatePageSections([]byte(doc)); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestValidatePageSectionsEmptyIsValid(t *testing.T) {
	if err := ValidatePageSections(nil); err != nil {
		t.Fatalf("nil document rejected: %v", err)
	}
	if err := ValidatePageSections([]byte("  ")); err != nil {
		t.Fatalf("blank document rejected: %v", err)
	}
}

func TestValidatePageSectionsRejectsUnknownSection(t *testing.T) {
	doc := `{"sections": {"hero_banner": {"heading": "H"}}}`
	err := ValidatePageSections([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "unknown section") {
		t.Fatalf("expected unknown section error, got %v", err)
	}
}

func TestValidatePageSectionsRejectsUnknownField(t *testing.T) {
	doc := `{"sections": {"why_choose": {"heading": "H", "color": "red"}}}`
	err := ValidatePageSections([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), `unknown field "color"`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestValidatePageSectionsRejectsUnknownItemField(t *testing.T) {
	doc := `{"sections": {"client_success": {"testimonials": [{"quote": "q", "avatar": "x"}]}}}`
	err := ValidatePageSections([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), `unknown field "avatar"`) {
		t.Fatalf("expected unknown item field error, got %v", err)
	}
}

func TestValidStatValue(t *testing.T) {
	valid := []string{"20", "20k", "150+", "99.9%", "1.2M+", " 42 "}
	for _, v := range valid {
		if !ValidStatValue(v) {
			t.Fatalf("%q should be valid", v)
		}
	}

	invalid := []string{"", "abc", "-5", "20.000.1", "20 k", "1.2Mplus!"}
	for _, v := range invalid {
		if ValidStatValue(v) {
			t.Fatalf("%q should be invalid", v)
		}
	}
}
