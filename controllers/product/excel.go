package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/dhruvmohan867/Ecommerce-Website/models"
)

// Sheet layout, one product per row after the header:
// title | name | desc | img | price_org | price_mrp | price_off | sizes | categories
// sizes and categories are comma-separated label lists.

// POST /admin/products/import-excel
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, skippedCount := 0, 0

		err = db.Transaction(func(tx *gorm.DB) error {
			for i := 1; i < sheet.MaxRow; i++ {
				row := sheet.Rows[i]

				get := func(index int) string {
					if index < len(row.Cells) {
						return strings.TrimSpace(row.Cells[index].String())
					}
					return ""
				}

				title := get(0)
				name := get(1)
				desc := get(2)
				img := get(3)
				priceOrg, err1 := decimal.NewFromString(get(4))
				priceMrp, err2 := decimal.NewFromString(get(5))
				priceOff, _ := strconv.Atoi(get(6))

				if title == "" || name == "" || err1 != nil {
					skippedCount++
					continue
				}
				if err2 != nil {
					priceMrp = priceOrg
				}

				sizes, err := resolveSizes(tx, splitList(get(7)))
				if err != nil {
					return err
				}
				categories, err := resolveCategories(tx, splitList(get(8)))
				if err != nil {
					return err
				}

				product := models.Product{
					Title:       title,
					Name:        name,
					Description: desc,
					Image:       img,
					Price:       models.Price{Org: priceOrg, Mrp: priceMrp, Off: priceOff},
					Sizes:       sizes,
					Categories:  categories,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				createdCount++
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"skipped": skippedCount,
		})
	}
}

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Categories").Preload("Sizes").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build Excel file"})
			return
		}

		header := sheet.AddRow()
		for _, col := range []string{"title", "name", "desc", "img", "price_org", "price_mrp", "price_off", "sizes", "categories"} {
			header.AddCell().Value = col
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().Value = p.Title
			row.AddCell().Value = p.Name
			row.AddCell().Value = p.Description
			row.AddCell().Value = p.Image
			row.AddCell().Value = p.Price.Org.String()
			row.AddCell().Value = p.Price.Mrp.String()
			row.AddCell().Value = strconv.Itoa(p.Price.Off)
			row.AddCell().Value = joinLabels(sizeNames(p.Sizes))
			row.AddCell().Value = joinLabels(categoryNames(p.Categories))
		}

		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}

func joinLabels(names []string) string {
	return strings.Join(names, ",")
}

func sizeNames(sizes []models.Size) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, s.Name)
	}
	return out
}

func categoryNames(categories []models.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Name)
	}
	return out
}
