package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

func categoryNameTaken(db *gorm.DB, name string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Category{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), exceptID).
		Count(&count).Error
	return count > 0, err
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		name := strings.TrimSpace(input.Name)

		taken, err := categoryNameTaken(db, name, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}

		category := models.Category{Name: name, Slug: slug.Make(name)}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GET /categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories := []models.Category{}
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func findCategory(c *gin.Context, db *gorm.DB) (models.Category, bool) {
	var category models.Category
	if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		}
		return models.Category{}, false
	}
	return category, true
}

// PUT /admin/categories/:id
// Renaming a category renames it on its products too, since products reference it by name.
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := findCategory(c, db)
		if !ok {
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		name := strings.TrimSpace(input.Name)

		taken, err := categoryNameTaken(db, name, category.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}

		oldName := category.Name
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&category).Updates(map[string]interface{}{
				"name": name,
				"slug": slug.Make(name),
			}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).Where("category = ?", oldName).Update("category", name).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}

		category.Name, category.Slug = name, slug.Make(name)
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /admin/categories/:id
// Products keep the old name; they just stop matching any category filter entry.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := findCategory(c, db)
		if !ok {
			return
		}
		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
