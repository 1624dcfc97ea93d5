package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public
// catalog, the authenticated user surface, the admin surface and the
// order feed under the /api prefix.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	SetupProductRoutes(api, db)
	SetupUserRoutes(api, db)
	SetupAdminRoutes(api, db)
	SetupOrderFeedRoutes(api)
}
