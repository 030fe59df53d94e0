package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// SectionSchema declares the shape of one page-section type: its scalar
// fields plus a named list of repeated items. The renderer on the public
// site iterates these generically, so the registry is the single source
// of truth for what a section may contain.
type SectionSchema struct {
	Label      string
	Fields     []string
	ItemsKey   string
	ItemFields []string
}

// SectionRegistry is the fixed set of section types a category page may
// carry. Keys are stored in the page_sections document as-is.
var SectionRegistry = map[string]SectionSchema{
	"how_powers_growth": {
		Label:      "Section 1",
		Fields:     []string{"heading", "sub_heading"},
		ItemsKey:   "items",
		ItemFields: []string{"feature_tagline", "title", "description"},
	},
	"why_choose": {
		Label:      "Section 2",
		Fields:     []string{"heading"},
		ItemsKey:   "items",
		ItemFields: []string{"title", "description", "detail"},
	},
	"our_process": {
		Label:      "Section 3",
		Fields:     []string{"heading", "sub_heading"},
		ItemsKey:   "steps",
		ItemFields: []string{"title", "description"},
	},
	"client_success": {
		Label:      "Section 4",
		Fields:     []string{"heading", "sub_heading"},
		ItemsKey:   "testimonials",
		ItemFields: []string{"quote", "name", "role", "company"},
	},
}

// SectionKeys returns the registry keys in stable order.
func SectionKeys() []string {
	keys := make([]string, 0, len(SectionRegistry))
	for k := range SectionRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type pageSectionsDoc struct {
	Page     string                     `json:"page"`
	Slug     string                     `json:"slug"`
	Sections map[string]json.RawMessage `json:"sections"`
}

// ValidatePageSections checks a page_sections document against the
// registry: every section key must be registered and every field inside
// a section (and its items) must belong to that section's schema.
func ValidatePageSections(raw []byte) error {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "" {
		return nil
	}

	var doc pageSectionsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("page_sections is not valid JSON: %w", err)
	}

	for key, body := range doc.Sections {
		schema, ok := SectionRegistry[key]
		if !ok {
			return fmt.Errorf("unknown section %q (registered: %s)", key, strings.Join(SectionKeys(), ", "))
		}

		var section map[string]json.RawMessage
		if err := json.Unmarshal(body, &section); err != nil {
			return fmt.Errorf("section %q is not an object: %w", key, err)
		}

		for field, value := range section {
			if field == schema.ItemsKey {
				if err := validateSectionItems(key, schema, value); err != nil {
					return err
				}
				continue
			}
			if !containsField(schema.Fields, field) {
				return fmt.Errorf("section %q: unknown field %q", key, field)
			}
		}
	}
	return nil
}

func validateSectionItems(key string, schema SectionSchema, raw json.RawMessage) error {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("section %q: %s must be an array: %w", key, schema.ItemsKey, err)
	}
	for i, item := range items {
		for field := range item {
			if !containsField(schema.ItemFields, field) {
				return fmt.Errorf("section %q: item %d has unknown field %q", key, i, field)
			}
		}
	}
	return nil
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// statValueRe accepts numbers with an optional short suffix, matching
// what the stat cards render: "20", "20k", "150+", "99.9%", "1.2M+".
var statValueRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?[a-zA-Z%+]{0,4}$`)

// ValidStatValue reports whether a stats_items value is renderable.
func ValidStatValue(v string) bool {
	return statValueRe.MatchString(strings.TrimSpace(v))
}
