package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"admindash/internal/domain/models"
	"admindash/internal/listing"
	"admindash/internal/repositories"
	"admindash/internal/utils"

	"github.com/gin-gonic/gin"
)

// The two download listings predate each other by a few releases and
// ship different envelopes and field names. Both shapes are load-bearing
// for existing consumers, so each endpoint keeps its own row type.

type downloadRow struct {
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
}

type categoryDownloadRow struct {
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
}

// GET /api/admin/Downloadsample?page&limit&{filters}
func GetSampleDownloads(c *gin.Context) {
	params := listing.ParseParams(c.Request.URL.Query())

	var filters models.DownloadFilters
	if err := listing.DecodeFilters(&filters, c.Request.URL.Query()); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	repo := repositories.DownloadRepository{}
	downloads, total, err := repo.List(params, filters)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load downloads", err)
		return
	}

	rows := make([]downloadRow, 0, len(downloads))
	for _, d := range downloads {
		rows = append(rows, downloadRow{
			ID:            d.ID,
			UserName:      d.UserName,
			UserEmail:     d.UserEmail,
			ProductName:   d.ProductName,
			UTMSource:     d.UTMSource,
			UTMMedium:     d.UTMMedium,
			UTMCampaignID: d.UTMCampaignID,
			AdgroupID:     d.UTMAdgroupID,
			Country:       d.Country,
			City:          d.City,
			SampleLink:    d.SampleLink,
			CreatedAt:     utils.FormatDateTime(d.CreatedAt),
		})
	}

	page := listing.NewPageInfo(params, total)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"downloads":  rows,
			"totalPages": page.TotalPages,
			"page":       page.Page,
		},
	})
}

// GET /api/admin/category/sample-downloads?page&limit&{filters}
func GetCategorySampleDownloads(c *gin.Context) {
	params := listing.ParseParams(c.Request.URL.Query())

	var filters models.DownloadFilters
	if err := listing.DecodeFilters(&filters, c.Request.URL.Query()); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	repo := repositories.CategoryDownloadRepository{}
	downloads, total, err := repo.List(params, filters)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load category downloads", err)
		return
	}

	rows := make([]categoryDownloadRow, 0, len(downloads))
	for _, d := range downloads {
		row := categoryDownloadRow{
			ID:            d.ID,
			UserName:      d.UserName,
			UserEmail:     d.UserEmail,
			ProductName:   d.ProductName,
			UTMSource:     d.UTMSource,
			UTMMedium:     d.UTMMedium,
			UTMCampaignID: d.UTMCampaignID,
			UTMAdgroup:    d.UTMAdgroupID,
			Country:       d.Country,
			City:          d.City,
			CreatedAt:     utils.FormatDateTime(d.CreatedAt),
		}
		row.Category.Name = d.CategoryName
		row.CategorySampleFile.SampleLink = d.SampleLink
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       rows,
		"pagination": listing.NewPageInfo(params, total),
	})
}

// DELETE /api/admin/Downloadsample/:id
func DeleteSampleDownload(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	repo := repositories.DownloadRepository{}
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "download not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to delete download", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "download deleted"})
}

// DELETE /api/admin/category/sample-downloads/:id
func DeleteCategorySampleDownload(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	repo := repositories.CategoryDownloadRepository{}
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "download not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to delete download", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "download deleted"})
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// POST /api/admin/Downloadsample/bulk-delete
func BulkDeleteSampleDownloads(c *gin.Context) {
	var req bulkDeleteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.IDs) == 0 {
		RespondError(c, http.StatusBadRequest, "ids must not be empty", nil)
		return
	}

	repo := repositories.DownloadRepository{}
	deleted, failed := repo.BulkDelete(req.IDs)

	c.JSON(http.StatusOK, gin.H{
		"success": failed == 0,
		"deleted": deleted,
		"failed":  failed,
	})
}
