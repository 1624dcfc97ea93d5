package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

type OrderProductInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type PlaceOrderRequest struct {
	Products []OrderProductInput `json:"products" binding:"required"`
	Address  string              `json:"address"`
	// Optional client-side total. The order total is always recomputed
	// from live prices; a divergent client value is rejected.
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

var (
	errEmptyOrder      = errors.New("order must contain at least one product")
	errBadQuantity     = errors.New("quantity must be at least 1")
	errProductNotFound = errors.New("product does not exist")
	errTotalMismatch   = errors.New("total_amount does not match current prices")
)

func newOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// POST /user/orders
//
// Snapshots the requested products into an immutable order. The total
// is computed server-side with decimal arithmetic, the order row and
// its items are written in one transaction, and the user's cart is
// cleared in that same transaction.
func PlaceOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			created, err := placeOrder(tx, userID, req)
			if err != nil {
				return err
			}
			order = *created
			return nil
		})
		if err != nil {
			switch {
			case errors.Is(err, errEmptyOrder), errors.Is(err, errBadQuantity), errors.Is(err, errTotalMismatch):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, errProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		var created models.Order
		if err := db.
			Preload("Items.Product.Categories").
			Preload("Items.Product.Sizes").
			First(&created, order.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}

		broadcastOrderPlaced(created)
		c.JSON(http.StatusCreated, created)
	}
}

func placeOrder(tx *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	if len(req.Products) == 0 {
		return nil, errEmptyOrder
	}

	if err := tx.First(&models.User{}, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Products))
	for _, in := range req.Products {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 1 {
			return nil, errBadQuantity
		}

		var product models.Product
		if err := tx.First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errProductNotFound
			}
			return nil, err
		}

		total = total.Add(product.Price.Org.Mul(decimal.NewFromInt(int64(quantity))))
		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			Quantity:  quantity,
		})
	}

	if req.TotalAmount != nil && !req.TotalAmount.Equal(total) {
		return nil, errTotalMismatch
	}

	order := models.Order{
		OrderRef:    newOrderRef(),
		UserID:      userID,
		TotalAmount: total,
		Address:     req.Address,
		Status:      models.OrderStatusPaymentDone,
		CreatedAt:   time.Now(),
	}
	if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
		return nil, err
	}
	order.Items = items

	// Placement empties the cart; both happen or neither does.
	if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

// GET /user/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		orders := make([]models.Order, 0)
		if err := db.
			Preload("Items.Product.Categories").
			Preload("Items.Product.Sizes").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
