package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/dhruvmohan867/Ecommerce-Website/controllers/product"
	"github.com/dhruvmohan867/Ecommerce-Website/middleware"
)

// SetupAdminRoutes registers the "/admin/*" endpoints. Requires the
// API-key middleware.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.BulkCreateProducts(db))
			productAdmin.POST("/import-excel", productControllers.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}
	}
}
