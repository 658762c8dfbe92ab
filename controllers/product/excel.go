package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ImportProductsSheet upserts products from a sheet laid out like the export.
// Rows with an existing ID update that product; the rest are created.
// Rows without a name or a valid price are skipped.
func ImportProductsSheet(db *gorm.DB, sheet *xlsx.Sheet) ImportResult {
	var res ImportResult

	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(index int) string {
			if row != nil && index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		name := get(1)
		price, err := strconv.ParseFloat(get(3), 64)
		if name == "" || err != nil || price < 0 {
			res.Skipped++
			continue
		}
		rating, err := strconv.Atoi(get(6))
		if err != nil || rating < 1 || rating > 5 {
			rating = models.DefaultProductRating
		}
		stock, _ := strconv.ParseFloat(get(7), 64)

		product := models.Product{
			Name:        name,
			Description: get(2),
			Price:       price,
			Image:       get(4),
			Category:    get(5),
			Rating:      rating,
			Stock:       int(stock),
		}

		if id, err := strconv.Atoi(get(0)); err == nil && id > 0 {
			var existing models.Product
			if err := db.First(&existing, id).Error; err == nil {
				if err := db.Model(&existing).Updates(map[string]interface{}{
					"name":        product.Name,
					"description": product.Description,
					"price":       product.Price,
					"image":       product.Image,
					"category":    product.Category,
					"rating":      product.Rating,
					"stock":       product.Stock,
				}).Error; err == nil {
					res.Updated++
				} else {
					res.Skipped++
				}
				continue
			}
		}

		if err := db.Create(&product).Error; err == nil {
			res.Created++
		} else {
			res.Skipped++
		}
	}
	return res
}

// POST /admin/products/import-excel (multipart field "file")
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || len(xlFile.Sheets[0].Rows) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		res := ImportProductsSheet(db, xlFile.Sheets[0])
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": res.Created,
			"updated_count": res.Updated,
			"skipped_count": res.Skipped,
		})
	}
}
