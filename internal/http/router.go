package api

import (
	"log"
	stdhttp "net/http"

	intconfig "admindash/internal/config"
	h "admindash/internal/http/handlers"
	"admindash/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	h.SetRouter(r)

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	session := middleware.RequireAuth(env.JWTSecret, env.CookieName)
	adminOnly := middleware.RequireRoles("admin")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Session lifecycle. The bare alias is a legacy path older
		// dashboard builds still call.
		api.POST("/admin/request-otp-admin", h.RequestOTP)
		api.POST("/admin/verify-otp-admin", h.VerifyOTP)
		api.POST("/verify-otp-admin", h.VerifyOTP)
		api.GET("/admin/check-auth", session, h.CheckAuth)
		api.POST("/admin/logout", session, h.Logout)

		// Datastore
		api.GET("/products", session, h.GetProducts)
		api.GET("/datastore/uploaded-data/:productId", session, h.GetUploadedData)

		admin := api.Group("/admin", session)
		{
			// Download listings. The capitalized segment is a fixed
			// contract with the deployed dashboard.
			admin.GET("/Downloadsample", h.GetSampleDownloads)
			admin.DELETE("/Downloadsample/:id", h.DeleteSampleDownload)
			admin.POST("/Downloadsample/bulk-delete", h.BulkDeleteSampleDownloads)
			admin.GET("/category/sample-downloads", h.GetCategorySampleDownloads)
			admin.DELETE("/category/sample-downloads/:id", h.DeleteCategorySampleDownload)
			admin.POST("/category/sample-link", h.SaveCategorySampleLink)

			// Role management
			admin.GET("/admins", h.GetAdmins)
			admin.POST("/set-role", adminOnly, h.SetRole)
			admin.POST("/create-user", adminOnly, h.CreateUser)
			admin.DELETE("/remove-admin/:id", adminOnly, h.RemoveAdmin)

			// Orders
			admin.GET("/orders/all-orders", h.GetOrders)
			admin.GET("/orders/:id/invoice", h.DownloadOrderInvoice)

			// SEO metadata
			admin.GET("/seo/entity", h.GetSEOByEntity)
			admin.POST("/seo", h.CreateSEO)
			admin.PUT("/seo/:id", h.UpdateSEO)

			// Datastore uploads
			admin.POST("/datastore/upload", h.UploadCSV)
			admin.POST("/upload-json", h.UploadJSON)
		}
	}

	// Categories keep their historical prefix outside /api.
	categories := r.Group("/categories/admin", session)
	{
		categories.GET("/list", h.ListCategories)
		categories.POST("/create", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	// Contact submissions, versioned prefix.
	v1 := r.Group("/v1", session)
	{
		v1.GET("/get-contact", h.GetContacts)
		v1.DELETE("/delete-contact/:id", h.DeleteContact)
	}

	return r
}
