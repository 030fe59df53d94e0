package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/http/middleware"
	"admindash/internal/listing"
	"admindash/internal/repositories"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

// GET /categories/admin/list?page&limit&search&is_active&sortBy&order
func ListCategories(c *gin.Context) {
	params := listing.ParseParams(c.Request.URL.Query())

	var filters models.CategoryFilters
	if err := listing.DecodeFilters(&filters, c.Request.URL.Query()); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	repo := repositories.CategoryRepository{}
	categories, total, err := repo.List(params, filters)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load categories", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"pagination": listing.NewPageInfo(params, total),
	})
}

// POST /categories/admin/create (multipart)
func CreateCategory(c *gin.Context) {
	input, ok := bindCategoryForm(c)
	if !ok {
		return
	}

	repo := repositories.CategoryRepository{}
	id, err := repo.Create(input)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			RespondError(c, http.StatusConflict, "a category with this slug already exists", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to create category", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "category_id": id})
}

// PUT /categories/admin/:id (multipart)
func UpdateCategory(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	input, ok := bindCategoryForm(c)
	if !ok {
		return
	}

	repo := repositories.CategoryRepository{}
	if err := repo.Update(id, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "category not found", nil)
			return
		}
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			RespondError(c, http.StatusConflict, "a category with this slug already exists", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to update category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "category updated"})
}

// DELETE /categories/admin/:id
func DeleteCategory(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	repo := repositories.CategoryRepository{}
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "category not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to delete category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "category deleted"})
}

type sampleLinkRequest struct {
	CategoryID int64  `json:"category_id"`
	SampleLink string `json:"sample_link"`
}

// POST /api/admin/category/sample-link
func SaveCategorySampleLink(c *gin.Context) {
	var req sampleLinkRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.CategoryID <= 0 || strings.TrimSpace(req.SampleLink) == "" {
		RespondError(c, http.StatusBadRequest, "category_id and sample_link are required", nil)
		return
	}

	repo := repositories.CategoryRepository{}
	if _, err := repo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "category not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to load category", err)
		return
	}

	if err := repo.UpsertSampleLink(req.CategoryID, strings.TrimSpace(req.SampleLink)); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save sample link", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "sample link saved"})
}

// bindCategoryForm parses and validates the multipart create/update
// payload shared by both mutations.
func bindCategoryForm(c *gin.Context) (repositories.CategoryInput, bool) {
	var input repositories.CategoryInput

	input.Name = strings.TrimSpace(c.PostForm("name"))
	input.Slug = strings.TrimSpace(c.PostForm("slug"))
	input.Description = strings.TrimSpace(c.PostForm("description"))
	if input.Name == "" || input.Slug == "" {
		RespondError(c, http.StatusBadRequest, "name and slug are required", nil)
		return input, false
	}

	stats, ok := bindStatsItems(c)
	if !ok {
		return input, false
	}
	input.StatsItems = stats

	faq, ok := bindFAQItems(c)
	if !ok {
		return input, false
	}
	input.FAQItems = faq

	sections := []byte(strings.TrimSpace(c.PostForm("page_sections")))
	if len(sections) == 0 {
		sections = []byte("{}")
	}
	if err := domain.ValidatePageSections(sections); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid page_sections", err)
		return input, false
	}
	input.PageSections = sections

	// image: uploaded file wins over a pasted URL; neither keeps the
	// stored image on update
	if header, err := c.FormFile("background_image"); err == nil && header != nil {
		media := services.MediaService{
			CloudinaryURL: env.CloudinaryURL,
			RequestID:     middleware.GetRequestID(c),
		}
		url, uerr := media.UploadImage(c.Request.Context(), header, "categories")
		if uerr != nil {
			RespondError(c, http.StatusInternalServerError, "failed to upload background image", uerr)
			return input, false
		}
		input.BackgroundImage = url
	} else if u := strings.TrimSpace(c.PostForm("background_image_url")); u != "" {
		input.BackgroundImage = u
	}

	return input, true
}

func bindStatsItems(c *gin.Context) ([]byte, bool) {
	raw := strings.TrimSpace(c.PostForm("stats_items"))
	if raw == "" {
		return []byte("[]"), true
	}

	var items []models.StatItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		RespondError(c, http.StatusBadRequest, "stats_items must be a JSON array", err)
		return nil, false
	}
	for i, item := range items {
		if strings.TrimSpace(item.Value) == "" {
			continue
		}
		if !domain.ValidStatValue(item.Value) {
			RespondError(c, http.StatusBadRequest,
				fmt.Sprintf("stats_items[%d].value %q is not a number with optional suffix", i, item.Value), nil)
			return nil, false
		}
	}
	return []byte(raw), true
}

func bindFAQItems(c *gin.Context) ([]byte, bool) {
	raw := strings.TrimSpace(c.PostForm("faq_items"))
	if raw == "" {
		return []byte("[]"), true
	}

	var items []models.FAQItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		RespondError(c, http.StatusBadRequest, "faq_items must be a JSON array", err)
		return nil, false
	}
	return []byte(raw), true
}
