package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
	"github.com/CampCoding/elmezan-backend/internal/pos"
)

type HallHandler struct {
	DB      *gorm.DB
	Service *pos.Service
}

func NewHallHandler(db *gorm.DB, service *pos.Service) *HallHandler {
	return &HallHandler{DB: db, Service: service}
}

// List merges the registered halls with the hall names tables are actually
// assigned to, so a hall that only exists on table rows still shows up.
func (h *HallHandler) List(c *gin.Context) {
	var halls []models.Hall
	if err := h.DB.Order("hall_name").Find(&halls).Error; err != nil {
		fail(c, err, "Failed to list halls")
		return
	}

	var assigned []string
	if err := h.DB.Model(&models.Table{}).Distinct("tb_sala").Order("tb_sala").Pluck("tb_sala", &assigned).Error; err != nil {
		fail(c, err, "Failed to list halls")
		return
	}
	known := map[string]bool{}
	for _, hall := range halls {
		known[strings.TrimSpace(hall.HallName)] = true
	}
	names := make([]string, 0, len(halls)+len(assigned))
	for _, hall := range halls {
		names = append(names, strings.TrimSpace(hall.HallName))
	}
	for _, name := range assigned {
		name = strings.TrimSpace(name)
		if name != "" && !known[name] {
			known[name] = true
			names = append(names, name)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "halls": names, "total": len(names)})
}

func (h *HallHandler) Get(c *gin.Context) {
	name := c.Param("hallName")
	var count int64
	if err := h.DB.Model(&models.Table{}).Where("tb_sala = ?", name).Count(&count).Error; err != nil {
		fail(c, err, "Failed to fetch hall")
		return
	}
	if count == 0 {
		var hall models.Hall
		if err := h.DB.First(&hall, "hall_name = ?", name).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Hall not found"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "hall": name, "tableCount": count})
}

func (h *HallHandler) Stats(c *gin.Context) {
	name := c.Param("hallName")
	stats, err := h.Service.HallStatsFor(name)
	if err != nil {
		fail(c, err, "Failed to compute hall stats")
		return
	}
	if stats.TotalTables == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Hall not found or has no tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "hall": name, "stats": stats})
}
