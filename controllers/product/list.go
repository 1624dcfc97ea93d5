package productControllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// ProductFilter is the typed form of the listing query string. All
// constraints are conjunctive; an unset field imposes none.
type ProductFilter struct {
	Categories []string
	Sizes      []string
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Page       int
	Limit      int
}

func parseProductFilter(c *gin.Context) ProductFilter {
	f := ProductFilter{Page: 1, Limit: defaultPageSize}

	f.Categories = splitList(c.Query("categories"))
	f.Sizes = splitList(c.Query("sizes"))
	f.MinPrice = parsePriceBound(c.Query("minPrice"))
	f.MaxPrice = parsePriceBound(c.Query("maxPrice"))
	f.Search = strings.TrimSpace(c.Query("search"))

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		f.Page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		f.Limit = l
		if f.Limit > maxPageSize {
			f.Limit = maxPageSize
		}
	}
	return f
}

// Malformed or non-finite bounds are dropped, not applied.
func parsePriceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Membership filters go through IN subqueries on the label join
// tables so multi-label matches do not duplicate product rows.
func buildProductQuery(db *gorm.DB, f ProductFilter) *gorm.DB {
	query := db.Model(&models.Product{})

	if len(f.Categories) > 0 {
		query = query.Where("products.id IN (?)", db.Table("product_categories").
			Select("product_categories.product_id").
			Joins("JOIN categories ON categories.id = product_categories.category_id").
			Where("categories.name IN ?", f.Categories))
	}
	if len(f.Sizes) > 0 {
		query = query.Where("products.id IN (?)", db.Table("product_sizes").
			Select("product_sizes.product_id").
			Joins("JOIN sizes ON sizes.id = product_sizes.size_id").
			Where("sizes.name IN ?", f.Sizes))
	}
	if f.MinPrice != nil {
		query = query.Where("price_org >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price_org <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return query
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := parseProductFilter(c)

		var total int64
		if err := buildProductQuery(db, f).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		products := make([]models.Product, 0)
		if err := buildProductQuery(db, f).
			Preload("Categories").
			Preload("Sizes").
			Order("products.id ASC").
			Offset((f.Page - 1) * f.Limit).
			Limit(f.Limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"total":      total,
			"page":       f.Page,
			"totalPages": int(math.Ceil(float64(total) / float64(f.Limit))),
		})
	}
}
