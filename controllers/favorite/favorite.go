package favoriteControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

type FavoriteInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// POST /user/favorite
//
// Adds the product to the favorites set. Adding a member twice has no
// additional effect.
func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input FavoriteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		fav := models.Favorite{
			UserID:    userID,
			ProductID: input.ProductID,
			CreatedAt: time.Now(),
		}
		err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(&fav).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}

		respondWithFavorites(c, db, userID)
	}
}

// DELETE /user/favorite
//
// Removing a non-member is a no-op, not an error.
func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input FavoriteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).
			Delete(&models.Favorite{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}

		respondWithFavorites(c, db, userID)
	}
}

// GET /user/favorite
func GetUserFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		respondWithFavorites(c, db, userIDVal.(string))
	}
}

func respondWithFavorites(c *gin.Context, db *gorm.DB, userID string) {
	products, err := listFavoriteProducts(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func listFavoriteProducts(db *gorm.DB, userID string) ([]models.Product, error) {
	var favs []models.Favorite
	err := db.
		Preload("Product.Categories").
		Preload("Product.Sizes").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&favs).Error
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(favs))
	for _, f := range favs {
		products = append(products, f.Product)
	}
	return products, nil
}
