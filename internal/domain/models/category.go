package models

import (
	"encoding/json"
	"time"
)

// Category is the backend-owned category record. StatsItems, FAQItems and
// PageSections are stored as JSON documents and served as-is.
type Category struct {
	CategoryID      int64           `json:"category_id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	BackgroundImage string          `json:"background_image"`
	StatsItems      json.RawMessage `json:"stats_items"`
	FAQItems        json.RawMessage `json:"faq_items"`
	PageSections    json.RawMessage `json:"page_sections"`
	IsActive        bool            `json:"is_active"`
	Count           int             `json:"count"`
	SampleLink      string          `json:"sample_link,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// StatItem is one entry of a category's stats_items document.
type StatItem struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// FAQItem is one entry of a category's faq_items document.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CategoryFilters is the admin category list filter/sort bar.
type CategoryFilters struct {
	Search   string `schema:"search"`
	IsActive string `schema:"is_active"`
	SortBy   string `schema:"sortBy"`
	Order    string `schema:"order"`
}
