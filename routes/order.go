package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/dhruvmohan867/Ecommerce-Website/controllers/order"
)

// SetupOrderFeedRoutes registers the websocket feed of placed orders.
func SetupOrderFeedRoutes(api *gin.RouterGroup) {
	api.GET("/orders/ws", orderControllers.OrderFeedHandler)
}
