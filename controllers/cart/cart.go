package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

type AddCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type RemoveCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"` // nil removes the entry outright
}

// POST /user/cart
//
// Adds a product to the cart, or increments the existing entry by the
// given quantity. The increment happens in the database, so two
// concurrent adds both land.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
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

		item := models.CartItem{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			AddedAt:   time.Now(),
		}
		err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
				"added_at": time.Now(),
			}),
		}).Create(&item).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		respondWithCart(c, db, userID)
	}
}

// DELETE /user/cart
//
// With a null quantity the entry is deleted regardless of its current
// quantity. With a positive quantity the entry is decremented and
// deleted once it drops to zero or below. Removing a product that is
// not in the cart is a no-op.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input RemoveCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Quantity == nil {
			if err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).
				Delete(&models.CartItem{}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
				return
			}
			respondWithCart(c, db, userID)
			return
		}

		if *input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.CartItem{}).
				Where("user_id = ? AND product_id = ?", userID, input.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", *input.Quantity)).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ? AND quantity <= 0", userID).
				Delete(&models.CartItem{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
			return
		}

		respondWithCart(c, db, userID)
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		respondWithCart(c, db, userIDVal.(string))
	}
}

func respondWithCart(c *gin.Context, db *gorm.DB, userID string) {
	items, err := ListCartItems(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListCartItems returns the cart with product data resolved.
func ListCartItems(db *gorm.DB, userID string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	err := db.
		Preload("Product.Categories").
		Preload("Product.Sizes").
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&items).Error
	return items, err
}

// PruneStaleItems deletes cart entries older than the given age. Run
// from the nightly maintenance job.
func PruneStaleItems(db *gorm.DB, olderThan time.Duration) (int64, error) {
	res := db.Where("added_at < ?", time.Now().Add(-olderThan)).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
