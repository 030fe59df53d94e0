package models

import "time"

// SampleDownload is a tracked product-sample download event together
// with the marketing attribution captured at download time.
type SampleDownload struct {
	ID            int64
	UserName      string
	UserEmail     string
	ProductName   string
	UTMSource     string
	UTMMedium     string
	UTMCampaignID string
	UTMAdgroupID  string
	Country       string
	City          string
	SampleLink    string
	CreatedAt     time.Time
}

// CategorySampleDownload is the category-flavored download event. The
// sample link lives on the category's sample file, not on the event.
type CategorySampleDownload struct {
	ID            int64
	UserName      string
	UserEmail     string
	ProductName   string
	CategoryID    int64
	CategoryName  string
	UTMSource     string
	UTMMedium     string
	UTMCampaignID string
	UTMAdgroupID  string
	Country       string
	City          string
	SampleLink    string
	CreatedAt     time.Time
}

// DownloadFilters is the filter bar shared by the download listings.
// Empty fields are unset and never reach the query.
type DownloadFilters struct {
	UserEmail    string `schema:"user_email"`
	ProductName  string `schema:"product_name"`
	CategoryName string `schema:"category_name"`
	UTMSource    string `schema:"utm_source"`
	UTMCampaign  string `schema:"utm_campaign"`
	FromDate     string `schema:"from_date"`
	ToDate       string `schema:"to_date"`
}
