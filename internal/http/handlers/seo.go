package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"admindash/internal/domain/models"
	"admindash/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/seo/entity?entity_type=&entity_id=
//
// A missing record is not an error for the editor: it answers 200 with
// data:null so the form opens in create mode.
func GetSEOByEntity(c *gin.Context) {
	entityType := strings.TrimSpace(c.Query("entity_type"))
	entityID, err := strconv.ParseInt(c.Query("entity_id"), 10, 64)
	if entityType == "" || err != nil || entityID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid entity reference", nil)
		return
	}

	repo := repositories.SEORepository{}
	meta, err := repo.GetByEntity(entityType, entityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to load seo metadata", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": meta})
}

// POST /api/admin/seo
func CreateSEO(c *gin.Context) {
	var meta models.SEOMeta
	if !BindJSONOrError(c, &meta) {
		return
	}
	if strings.TrimSpace(meta.EntityType) == "" || meta.EntityID <= 0 {
		RespondError(c, http.StatusBadRequest, "entity_type and entity_id are required", nil)
		return
	}
	if strings.TrimSpace(meta.MetaRobots) == "" {
		meta.MetaRobots = models.DefaultMetaRobots
	}

	repo := repositories.SEORepository{}
	id, err := repo.Create(meta)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create seo metadata", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "seo_id": id})
}

// PUT /api/admin/seo/:id
func UpdateSEO(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	var meta models.SEOMeta
	if !BindJSONOrError(c, &meta) {
		return
	}
	if strings.TrimSpace(meta.MetaRobots) == "" {
		meta.MetaRobots = models.DefaultMetaRobots
	}

	repo := repositories.SEORepository{}
	if err := repo.Update(id, meta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "seo metadata not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to update seo metadata", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "seo metadata updated"})
}
