package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"admindash/internal/domain/models"
	"admindash/internal/listing"
	"admindash/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /v1/get-contact?page&limit&form_type&search&from_date&to_date
func GetContacts(c *gin.Context) {
	params := listing.ParseParams(c.Request.URL.Query())

	var filters models.ContactFilters
	if err := listing.DecodeFilters(&filters, c.Request.URL.Query()); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	repo := repositories.ContactRepository{}
	contacts, total, err := repo.List(params, filters)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load contacts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       contacts,
		"pagination": listing.NewPageInfo(params, total),
	})
}

// DELETE /v1/delete-contact/:id
func DeleteContact(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	repo := repositories.ContactRepository{}
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "contact not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to delete contact", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "contact deleted"})
}
