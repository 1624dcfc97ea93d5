package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhruvmohan867/Ecommerce-Website/auth"
	"github.com/dhruvmohan867/Ecommerce-Website/middleware"
	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

type productJSON struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Price struct {
		Org float64 `json:"org"`
	} `json:"price"`
}

type cartEntryJSON struct {
	Product  productJSON `json:"product"`
	Quantity int         `json:"quantity"`
}

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Size{}, &models.Product{},
		&models.CartItem{}, &models.Favorite{}, &models.Order{}, &models.OrderItem{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	r := gin.New()
	authed := r.Group("/api/user", middleware.ValidateToken)
	authed.GET("/cart", GetUserCart(db))
	authed.POST("/cart", AddCartItem(db))
	authed.DELETE("/cart", RemoveCartItem(db))
	return db, r
}

func seedUser(t *testing.T, db *gorm.DB) (models.User, string) {
	t.Helper()
	user := models.User{
		ID:        uuid.NewString(),
		Name:      "Test User",
		Email:     uuid.NewString() + "@example.com",
		Password:  "not-a-real-hash",
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.IssueToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func seedProduct(t *testing.T, db *gorm.DB, title string, org float64) models.Product {
	t.Helper()
	product := models.Product{
		Title:       title,
		Name:        title,
		Description: title + " description",
		Image:       "https://img.example.com/" + title + ".png",
		Price: models.Price{
			Org: decimal.NewFromFloat(org),
			Mrp: decimal.NewFromFloat(org),
		},
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) []cartEntryJSON {
	t.Helper()
	var entries []cartEntryJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	return entries
}

func TestAddToCartIncrementsExistingEntry(t *testing.T) {
	db, r := setupTest(t)
	_, token := seedUser(t, db)
	product := seedProduct(t, db, "Shirt", 100)

	w := doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeCart(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)

	w = doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": product.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	entries = decodeCart(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
	assert.Equal(t, product.ID, entries[0].Product.ID)
	assert.Equal(t, "Shirt", entries[0].Product.Title)
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	db, r := setupTest(t)
	_, token := seedUser(t, db)
	product := seedProduct(t, db, "Jeans", 50)

	w := doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeCart(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db, r := setupTest(t)
	_, token := seedUser(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartRequiresToken(t *testing.T) {
	_, r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/api/user/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/user/cart", "not-a-token", gin.H{"product_id": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRemoveDecrementsQuantity(t *testing.T) {
	db, r := setupTest(t)
	_, token := seedUser(t, db)
	product := seedProduct(t, db, "Hoodie", 80)

	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": product.ID, "quantity": 5})

	w := doJSON(t, r, http.MethodDelete, "/api/user/cart", token, gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeCart(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)
}

func TestRemoveDeletesEntryAtZero(t *testing.T) {
	db, r := setupTest(t)
	_, token := seedUser(t, db)
	product := seedProduct(t, db, "Cap", 20)

	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": product.ID, "quantity": 1})

	w := doJSON(t, r, http.MethodDelete, "/api/user/cart", token, gin.H{"product_id": product.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w))
}

func TestRemoveWithoutQuantityDeletesEntry(t *testing.T) {
	db, r := setupTest(t)
	_, token := seedUser(t, db)
	product := seedProduct(t, db, "Scarf", 30)

	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": product.ID, "quantity": 7})

	w := doJSON(t, r, http.MethodDelete, "/api/user/cart", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w))
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	db, r := setupTest(t)
	_, token := seedUser(t, db)
	inCart := seedProduct(t, db, "Belt", 25)
	other := seedProduct(t, db, "Gloves", 15)

	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"product_id": inCart.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodDelete, "/api/user/cart", token, gin.H{"product_id": other.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeCart(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, inCart.ID, entries[0].Product.ID)
	assert.Equal(t, 2, entries[0].Quantity)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	db, r := setupTest(t)
	_, tokenA := seedUser(t, db)
	_, tokenB := seedUser(t, db)
	product := seedProduct(t, db, "Socks", 10)

	doJSON(t, r, http.MethodPost, "/api/user/cart", tokenA, gin.H{"product_id": product.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodGet, "/api/user/cart", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w))
}

func TestPruneStaleItems(t *testing.T) {
	db, _ := setupTest(t)
	user, _ := seedUser(t, db)
	oldProduct := seedProduct(t, db, "Old", 10)
	freshProduct := seedProduct(t, db, "Fresh", 10)

	require.NoError(t, db.Create(&models.CartItem{
		UserID: user.ID, ProductID: oldProduct.ID, Quantity: 1,
		AddedAt: time.Now().Add(-100 * 24 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: user.ID, ProductID: freshProduct.ID, Quantity: 1,
		AddedAt: time.Now(),
	}).Error)

	removed, err := PruneStaleItems(db, 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	items, err := ListCartItems(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, freshProduct.ID, items[0].ProductID)
}
