package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"admindash/internal/http/middleware"
	"admindash/internal/listing"
	"admindash/internal/repositories"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/orders/all-orders?page&limit
//
// Orders keep their own envelope: page/limit/totalPages sit next to
// data at the top level instead of inside a pagination block.
func GetOrders(c *gin.Context) {
	params := listing.ParseParams(c.Request.URL.Query())

	repo := repositories.OrderRepository{}
	orders, total, err := repo.List(params)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load orders", err)
		return
	}

	page := listing.NewPageInfo(params, total)
	c.JSON(http.StatusOK, gin.H{
		"data":       orders,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages,
	})
}

// GET /api/admin/orders/:id/invoice
func DownloadOrderInvoice(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	svc := services.InvoiceService{
		OrderRepo: repositories.OrderRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	pdf, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "order not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to generate invoice", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
