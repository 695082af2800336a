package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

type MenuHandler struct {
	DB *gorm.DB
}

func NewMenuHandler(db *gorm.DB) *MenuHandler {
	return &MenuHandler{DB: db}
}

func (h *MenuHandler) Categories(c *gin.Context) {
	var categories []string
	err := h.DB.Model(&models.Item{}).
		Distinct("category").
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		fail(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

func (h *MenuHandler) ItemsByCategory(c *gin.Context) {
	category := c.Param("category")
	var items []models.Item
	if err := h.DB.Order("item_name").Find(&items, "category = ?", category).Error; err != nil {
		fail(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": category,
		"items":    items,
		"total":    len(items),
	})
}

func (h *MenuHandler) List(c *gin.Context) {
	q := h.DB.Order("category, item_name")
	if search := c.Query("search"); search != "" {
		q = q.Where("item_name LIKE ?", "%"+search+"%")
	}
	var items []models.Item
	if err := q.Find(&items).Error; err != nil {
		fail(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items, "total": len(items)})
}
