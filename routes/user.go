package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/dhruvmohan867/Ecommerce-Website/controllers/cart"
	favoriteControllers "github.com/dhruvmohan867/Ecommerce-Website/controllers/favorite"
	orderControllers "github.com/dhruvmohan867/Ecommerce-Website/controllers/order"
	userControllers "github.com/dhruvmohan867/Ecommerce-Website/controllers/user"
	"github.com/dhruvmohan867/Ecommerce-Website/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Everything past
// signup/signin requires a bearer token.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	userGroup := api.Group("/user")

	userGroup.POST("/signup", userControllers.Register(db))
	userGroup.POST("/signin", userControllers.Login(db))

	authed := userGroup.Group("")
	authed.Use(middleware.ValidateToken)
	{
		authed.GET("", userControllers.GetUser(db))

		authed.GET("/cart", cartControllers.GetUserCart(db))
		authed.POST("/cart", cartControllers.AddCartItem(db))
		authed.DELETE("/cart", cartControllers.RemoveCartItem(db))

		authed.GET("/favorite", favoriteControllers.GetUserFavorites(db))
		authed.POST("/favorite", favoriteControllers.AddFavorite(db))
		authed.DELETE("/favorite", favoriteControllers.RemoveFavorite(db))

		authed.GET("/orders", orderControllers.GetUserOrders(db))
		authed.POST("/orders", orderControllers.PlaceOrder(db))
	}
}
