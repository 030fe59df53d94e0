package models

import (
	"encoding/json"
	"time"
)

// SEOMeta is per-entity SEO metadata. SchemaJSON holds arbitrary JSON-LD
// and round-trips unparsed.
type SEOMeta struct {
	SEOID          int64           `json:"seo_id"`
	EntityType     string          `json:"entity_type"`
	EntityID       int64           `json:"entity_id"`
	Slug           string          `json:"slug"`
	SEOTitle       string          `json:"seo_title"`
	SEODescription string          `json:"seo_description"`
	SEOKeywords    string          `json:"seo_keywords"`
	CanonicalURL   string          `json:"canonical_url"`
	MetaRobots     string          `json:"meta_robots"`
	OGTitle        string          `json:"og_title"`
	OGDescription  string          `json:"og_description"`
	OGImage        string          `json:"og_image"`
	SchemaJSON     json.RawMessage `json:"schema_json"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// DefaultMetaRobots is applied when a payload leaves meta_robots blank.
const DefaultMetaRobots = "index, follow"
