package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

type ProductInput struct {
	Title       string       `json:"title"`
	Name        string       `json:"name"`
	Description string       `json:"desc"`
	Image       string       `json:"img"`
	Price       models.Price `json:"price"`
	Sizes       []string     `json:"sizes"`
	Category    []string     `json:"category"`
}

// POST /admin/products
//
// Bulk insert: the body is an array of products. Category and size
// labels are resolved to label rows, creating them on first use.
func BulkCreateProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inputs []ProductInput
		if err := c.ShouldBindJSON(&inputs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Expected an array of products"})
			return
		}

		created := make([]models.Product, 0, len(inputs))
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, input := range inputs {
				if input.Title == "" || input.Name == "" {
					continue
				}

				categories, err := resolveCategories(tx, input.Category)
				if err != nil {
					return err
				}
				sizes, err := resolveSizes(tx, input.Sizes)
				if err != nil {
					return err
				}

				product := models.Product{
					Title:       input.Title,
					Name:        input.Name,
					Description: input.Description,
					Image:       input.Image,
					Price:       input.Price,
					Categories:  categories,
					Sizes:       sizes,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				created = append(created, product)
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create products"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Products added successfully",
			"products": created,
		})
	}
}

func resolveCategories(tx *gorm.DB, names []string) ([]models.Category, error) {
	out := make([]models.Category, 0, len(names))
	for _, name := range names {
		var cat models.Category
		if err := tx.Where("name = ?", name).
			FirstOrCreate(&cat, models.Category{Name: name}).Error; err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func resolveSizes(tx *gorm.DB, names []string) ([]models.Size, error) {
	out := make([]models.Size, 0, len(names))
	for _, name := range names {
		var size models.Size
		if err := tx.Where("name = ?", name).
			FirstOrCreate(&size, models.Size{Name: name}).Error; err != nil {
			return nil, err
		}
		out = append(out, size)
	}
	return out, nil
}
