package userControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhruvmohan867/Ecommerce-Website/middleware"
	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
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
	userGroup := r.Group("/api/user")
	userGroup.POST("/signup", Register(db))
	userGroup.POST("/signin", Login(db))
	userGroup.GET("", middleware.ValidateToken, GetUser(db))
	return db, r
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

func signup(t *testing.T, r *gin.Engine, name, email, password string) (*httptest.ResponseRecorder, authResponse) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	var resp authResponse
	if w.Code == http.StatusCreated {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestSignupAndProfile(t *testing.T) {
	_, r := setupTest(t)

	w, resp := signup(t, r, "Alice", "alice@example.com", "secret123")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	// The password hash must never appear on the wire.
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodGet, "/api/user", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, r := setupTest(t)

	w, _ := signup(t, r, "Alice", "alice@example.com", "secret123")
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = signup(t, r, "Alice Again", "alice@example.com", "other-pass")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupValidation(t *testing.T) {
	_, r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", gin.H{"name": "NoEmail", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = signup(t, r, "Bob", "bob@example.com", "tiny")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignin(t *testing.T) {
	_, r := setupTest(t)
	signup(t, r, "Alice", "alice@example.com", "secret123")

	w := doJSON(t, r, http.MethodPost, "/api/user/signin", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestSigninWrongPassword(t *testing.T) {
	_, r := setupTest(t)
	signup(t, r, "Alice", "alice@example.com", "secret123")

	w := doJSON(t, r, http.MethodPost, "/api/user/signin", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSigninUnknownEmail(t *testing.T) {
	_, r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/user/signin", "", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
