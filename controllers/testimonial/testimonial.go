package testimonialControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

type TestimonialInput struct {
	Name    string `json:"name" binding:"required,max=100"`
	Message string `json:"message" binding:"required,max=1000"`
	Avatar  string `json:"avatar" binding:"omitempty,url"`
}

// GET /testimonials
func GetTestimonials(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonials := []models.Testimonial{}
		if err := db.Order("created_at DESC").Order("id DESC").Find(&testimonials).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials"})
			return
		}
		c.JSON(http.StatusOK, testimonials)
	}
}

// POST /admin/testimonials
func CreateTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TestimonialInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t := models.Testimonial{
			Name:    strings.TrimSpace(input.Name),
			Message: strings.TrimSpace(input.Message),
			Avatar:  input.Avatar,
		}
		if t.Name == "" || t.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and message are required"})
			return
		}
		if err := db.Create(&t).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save testimonial"})
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// DELETE /admin/testimonials/:id
func DeleteTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid testimonial ID"})
			return
		}
		res := db.Delete(&models.Testimonial{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete testimonial"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Testimonial not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
	}
}
