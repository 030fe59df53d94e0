package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"admindash/internal/http/middleware"
	"admindash/internal/repositories"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/products
func GetProducts(c *gin.Context) {
	repo := repositories.DatastoreRepository{}
	products, err := repo.ListProducts()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// POST /api/admin/datastore/upload (multipart: product_id, file)
func UploadCSV(c *gin.Context) {
	productID, ok := formProductID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file is required", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not read uploaded file", err)
		return
	}
	defer file.Close()

	svc := services.DatastoreService{
		Repo:      repositories.DatastoreRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	inserted, err := svc.ImportCSV(productID, file)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCSV) {
			RespondError(c, http.StatusBadRequest, "csv file has no data rows", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to import csv", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "inserted": inserted})
}

type uploadJSONRequest struct {
	ProductID int64             `json:"product_id"`
	Data      []json.RawMessage `json:"data"`
}

// POST /api/admin/upload-json
func UploadJSON(c *gin.Context) {
	var req uploadJSONRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.ProductID <= 0 {
		RespondError(c, http.StatusBadRequest, "product_id is required", nil)
		return
	}
	if len(req.Data) == 0 {
		RespondError(c, http.StatusBadRequest, "data must be a non-empty array", nil)
		return
	}

	svc := services.DatastoreService{
		Repo:      repositories.DatastoreRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	inserted, err := svc.ImportJSON(req.ProductID, req.Data)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to import json", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "inserted": inserted})
}

// GET /api/datastore/uploaded-data/:productId
func GetUploadedData(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || productID <= 0 {
		RespondError(c, http.StatusBadRequest, "product_id is required", nil)
		return
	}

	repo := repositories.DatastoreRepository{}
	rows, err := repo.ListRows(productID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load uploaded data", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

func formProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.PostForm("product_id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "product_id is required", nil)
		return 0, false
	}
	return id, true
}
