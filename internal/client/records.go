package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"admindash/internal/domain/models"
)

// DownloadRecord is the normalized row both download listings render.
// The two endpoints disagree on field names and nesting; normalization
// reconciles them so the table component sees one shape.
type DownloadRecord struct {
	ID          int64
	UserName    string
	UserEmail   string
	ProductName string
	Category    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	AdgroupID   string
	Country     string
	City        string
	SampleLink  string
	CreatedAt   string
}

// SampleDownloads fetches one page of product download events.
func (c *Client) SampleDownloads(ctx context.Context, page, limit int, filters FilterSet) (Page[DownloadRecord], error) {
	var out struct {
		Success bool `json:"success"`
		Data    struct {
			Downloads []struct {
				ID            int64  `json:"id"`
				UserName      string `json:"user_name"`
				UserEmail     string `json:"user_email"`
				ProductName   string `json:"product_name"`
				UTMSource     string `json:"utm_source"`
				UTMMedium     string `json:"utm_medium"`
				UTMCampaignID string `json:"utm_campaign_id"`
				AdgroupID     string `json:"adgroup_id"`
				Country       string `json:"country"`
				City          string `json:"city"`
				SampleLink    string `json:"sample_link"`
				CreatedAt     string `json:"createdAt"`
			} `json:"downloads"`
			TotalPages int `json:"totalPages"`
			Page       int `json:"page"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/admin/Downloadsample", pageQuery(page, limit, filters), &out); err != nil {
		return Page[DownloadRecord]{}, err
	}

	rows := make([]DownloadRecord, 0, len(out.Data.Downloads))
	for _, d := range out.Data.Downloads {
		rows = append(rows, DownloadRecord{
			ID:          d.ID,
			UserName:    orDash(d.UserName),
			UserEmail:   orDash(d.UserEmail),
			ProductName: orDash(d.ProductName),
			Category:    "-",
			UTMSource:   orDash(d.UTMSource),
			UTMMedium:   orDash(d.UTMMedium),
			UTMCampaign: orDash(d.UTMCampaignID),
			AdgroupID:   orDash(d.AdgroupID),
			Country:     orDash(d.Country),
			City:        orDash(d.City),
			SampleLink:  d.SampleLink,
			CreatedAt:   d.CreatedAt,
		})
	}
	return Page[DownloadRecord]{Rows: rows, TotalPages: out.Data.TotalPages}, nil
}

// CategorySampleDownloads fetches one page of category download events.
func (c *Client) CategorySampleDownloads(ctx context.Context, page, limit int, filters FilterSet) (Page[DownloadRecord], error) {
	var out struct {
		Success bool `json:"success"`
		Data    []struct {
			ID            int64  `json:"id"`
			UserName      string `json:"user_name"`
			UserEmail     string `json:"user_email"`
			ProductName   string `json:"product_name"`
			UTMSource     string `json:"utm_source"`
			UTMMedium     string `json:"utm_medium"`
			UTMCampaignID string `json:"utm_campaign_id"`
			UTMAdgroup    string `json:"utm_adgroup"`
			Country       string `json:"country"`
			City          string `json:"city"`
			Category      struct {
				Name string `json:"name"`
			} `json:"Category"`
			CategorySampleFile struct {
				SampleLink string `json:"sample_link"`
			} `json:"CategorySampleFile"`
			CreatedAt string `json:"createdAt"`
		} `json:"data"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := c.get(ctx, "/api/admin/category/sample-downloads", pageQuery(page, limit, filters), &out); err != nil {
		return Page[DownloadRecord]{}, err
	}

	rows := make([]DownloadRecord, 0, len(out.Data))
	for _, d := range out.Data {
		rows = append(rows, DownloadRecord{
			ID:          d.ID,
			UserName:    orDash(d.UserName),
			UserEmail:   orDash(d.UserEmail),
			ProductName: orDash(d.ProductName),
			Category:    orDash(d.Category.Name),
			UTMSource:   orDash(d.UTMSource),
			UTMMedium:   orDash(d.UTMMedium),
			UTMCampaign: orDash(d.UTMCampaignID),
			AdgroupID:   orDash(d.UTMAdgroup),
			Country:     orDash(d.Country),
			City:        orDash(d.City),
			SampleLink:  d.CategorySampleFile.SampleLink,
			CreatedAt:   d.CreatedAt,
		})
	}
	return Page[DownloadRecord]{Rows: rows, TotalPages: out.Pagination.TotalPages}, nil
}

// DeleteSampleDownload removes one product download event.
func (c *Client) DeleteSampleDownload(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/Downloadsample/%d", id))
}

// DeleteCategorySampleDownload removes one category download event.
func (c *Client) DeleteCategorySampleDownload(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/category/sample-downloads/%d", id))
}

// BulkDeleteSampleDownloads removes a batch of product download events.
// The API reports aggregate counts only, never which ids failed.
func (c *Client) BulkDeleteSampleDownloads(ctx context.Context, ids []int64) (deleted, failed int, err error) {
	var out struct {
		Success bool `json:"success"`
		Deleted int  `json:"deleted"`
		Failed  int  `json:"failed"`
	}
	if err := c.post(ctx, "/api/admin/Downloadsample/bulk-delete", map[string][]int64{"ids": ids}, &out); err != nil {
		return 0, 0, err
	}
	return out.Deleted, out.Failed, nil
}

// CategoryRecord is a category row for the admin list.
type CategoryRecord struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	IsActive    bool
	Count       int64
	SampleLink  string
	CreatedAt   time.Time
}

// Categories fetches one page of the admin category list.
func (c *Client) Categories(ctx context.Context, page, limit int, filters FilterSet) (Page[CategoryRecord], error) {
	var out struct {
		Success    bool `json:"success"`
		Categories []struct {
			CategoryID  int64     `json:"category_id"`
			Name        string    `json:"name"`
			Slug        string    `json:"slug"`
			Description string    `json:"description"`
			IsActive    bool      `json:"is_active"`
			Count       int64     `json:"count"`
			SampleLink  string    `json:"sample_link"`
			CreatedAt   time.Time `json:"createdAt"`
		} `json:"categories"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := c.get(ctx, "/categories/admin/list", pageQuery(page, limit, filters), &out); err != nil {
		return Page[CategoryRecord]{}, err
	}

	rows := make([]CategoryRecord, 0, len(out.Categories))
	for _, cat := range out.Categories {
		rows = append(rows, CategoryRecord{
			ID:          cat.CategoryID,
			Name:        cat.Name,
			Slug:        cat.Slug,
			Description: cat.Description,
			IsActive:    cat.IsActive,
			Count:       cat.Count,
			SampleLink:  cat.SampleLink,
			CreatedAt:   cat.CreatedAt,
		})
	}
	return Page[CategoryRecord]{Rows: rows, TotalPages: out.Pagination.TotalPages}, nil
}

// ContactRecord is a contact form submission row.
type ContactRecord struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	FormType  string
	CreatedAt time.Time
}

// Contacts fetches one page of contact submissions.
func (c *Client) Contacts(ctx context.Context, page, limit int, filters FilterSet) (Page[ContactRecord], error) {
	var out struct {
		Success bool `json:"success"`
		Data    []struct {
			ID        int64     `json:"id"`
			Name      string    `json:"name"`
			Email     string    `json:"email"`
			Phone     string    `json:"phone"`
			Subject   string    `json:"subject"`
			Message   string    `json:"message"`
			FormType  string    `json:"form_type"`
			CreatedAt time.Time `json:"createdAt"`
		} `json:"data"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := c.get(ctx, "/v1/get-contact", pageQuery(page, limit, filters), &out); err != nil {
		return Page[ContactRecord]{}, err
	}

	rows := make([]ContactRecord, 0, len(out.Data))
	for _, m := range out.Data {
		rows = append(rows, ContactRecord{
			ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone,
			Subject: m.Subject, Message: m.Message, FormType: m.FormType,
			CreatedAt: m.CreatedAt,
		})
	}
	return Page[ContactRecord]{Rows: rows, TotalPages: out.Pagination.TotalPages}, nil
}

// DeleteContact removes one contact submission.
func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/v1/delete-contact/%d", id))
}

// OrderRecord is a storefront order row with its line items decoded.
type OrderRecord struct {
	ID            int64
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	Total         string
	Currency      string
	Status        string
	Items         []models.LineItem
	Leads         string
	CreatedAt     time.Time
}

// Orders fetches one page of orders, decoding line_items whether it
// arrives as an array or as a doubly-encoded JSON string.
func (c *Client) Orders(ctx context.Context, page, limit int, filters FilterSet) (Page[OrderRecord], error) {
	var out struct {
		Data []struct {
			ID            int64           `json:"id"`
			OrderNumber   string          `json:"order_number"`
			CustomerName  string          `json:"customer_name"`
			CustomerEmail string          `json:"customer_email"`
			Total         string          `json:"total"`
			Currency      string          `json:"currency"`
			Status        string          `json:"status"`
			LineItems     json.RawMessage `json:"line_items"`
			MetaData      json.RawMessage `json:"meta_data"`
			Leads         string          `json:"leads"`
			CreatedAt     time.Time       `json:"createdAt"`
		} `json:"data"`
		TotalPages int `json:"totalPages"`
	}
	if err := c.get(ctx, "/api/admin/orders/all-orders", pageQuery(page, limit, filters), &out); err != nil {
		return Page[OrderRecord]{}, err
	}

	rows := make([]OrderRecord, 0, len(out.Data))
	for _, o := range out.Data {
		rows = append(rows, OrderRecord{
			ID:            o.ID,
			OrderNumber:   orDash(o.OrderNumber),
			CustomerName:  orDash(o.CustomerName),
			CustomerEmail: orDash(o.CustomerEmail),
			Total:         o.Total,
			Currency:      o.Currency,
			Status:        orDash(o.Status),
			Items:         models.ParseLineItems(o.LineItems),
			Leads:         models.LeadsCount(models.ParseOrderMeta(o.MetaData), o.Leads),
			CreatedAt:     o.CreatedAt,
		})
	}
	return Page[OrderRecord]{Rows: rows, TotalPages: out.TotalPages}, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
