package productcontroller

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var productSheetHeaders = []string{
	"ID", "Name", "Description", "Price", "Image", "Category", "Rating", "Stock", "CreatedAt", "UpdatedAt",
}

// WriteProductsWorkbook writes every product as an .xlsx workbook and returns the row count.
func WriteProductsWorkbook(db *gorm.DB, w io.Writer) (int, error) {
	var products []models.Product
	if err := db.Order("id ASC").Find(&products).Error; err != nil {
		return 0, fmt.Errorf("fetch products: %w", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return 0, fmt.Errorf("create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range productSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Rating)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(products), nil
}

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if _, err := WriteProductsWorkbook(db, c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export products"})
			return
		}
	}
}
