package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
	"github.com/CampCoding/elmezan-backend/internal/pos"
)

type TableHandler struct {
	DB      *gorm.DB
	Service *pos.Service
}

func NewTableHandler(db *gorm.DB, service *pos.Service) *TableHandler {
	return &TableHandler{DB: db, Service: service}
}

// List returns every table grouped by hall, each with its live state
// (color, captain, active invoice).
func (h *TableHandler) List(c *gin.Context) {
	groups, err := h.Service.ListByHall()
	if err != nil {
		fail(c, err, "Failed to list tables")
		return
	}
	total := 0
	for _, group := range groups {
		total += len(group.Tables)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"groups":      groups,
		"totalTables": total,
	})
}

func (h *TableHandler) Groups(c *gin.Context) {
	var tables []models.Table
	if err := h.DB.Order("tb_sala, tb_no").Find(&tables).Error; err != nil {
		fail(c, err, "Failed to list table groups")
		return
	}
	grouped := map[string][]string{}
	var order []string
	for _, table := range tables {
		hall := strings.TrimSpace(table.TbSala)
		if hall == "" {
			hall = "Default"
		}
		if _, seen := grouped[hall]; !seen {
			order = append(order, hall)
		}
		grouped[hall] = append(grouped[hall], strings.TrimSpace(table.TbNo))
	}
	groups := make([]gin.H, 0, len(order))
	for _, hall := range order {
		groups = append(groups, gin.H{"hall": hall, "tables": grouped[hall]})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "groups": groups})
}

type tableRequest struct {
	TbNo   string `json:"Tb_no"`
	TbSala string `json:"Tb_sala"`
}

func (h *TableHandler) Create(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TbNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tb_no is required"})
		return
	}

	if err := h.ensureUnique(req.TbNo, req.TbSala, 0); err != nil {
		fail(c, err, "Failed to create table")
		return
	}
	table := models.Table{TbNo: req.TbNo, TbSala: req.TbSala}
	if err := h.DB.Create(&table).Error; err != nil {
		fail(c, err, "Failed to create table")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Table created", "table": table})
}

func (h *TableHandler) Update(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TbNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tb_no is required"})
		return
	}

	var table models.Table
	if err := h.DB.First(&table, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Table not found"})
		return
	}
	if err := h.ensureUnique(req.TbNo, req.TbSala, table.ID); err != nil {
		fail(c, err, "Failed to update table")
		return
	}
	table.TbNo = req.TbNo
	table.TbSala = req.TbSala
	if err := h.DB.Save(&table).Error; err != nil {
		fail(c, err, "Failed to update table")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Table updated", "table": table})
}

func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}
	result := h.DB.Delete(&models.Table{}, id)
	if result.Error != nil {
		fail(c, result.Error, "Failed to delete table")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Table not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Table deleted"})
}

type bulkTablesRequest struct {
	Tables []tableRequest `json:"tables"`
}

// Bulk registers several tables at once. The whole batch is validated first;
// one duplicate rejects the entire request.
func (h *TableHandler) Bulk(c *gin.Context) {
	var req bulkTablesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Tables) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "tables list is required"})
		return
	}

	seen := map[string]bool{}
	for _, t := range req.Tables {
		if t.TbNo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tb_no is required for every table"})
			return
		}
		key := t.TbNo + "|" + t.TbSala
		if seen[key] {
			fail(c, fmt.Errorf("%w: duplicate table %s in request", pos.ErrConflict, t.TbNo), "Failed to create tables")
			return
		}
		seen[key] = true
		if err := h.ensureUnique(t.TbNo, t.TbSala, 0); err != nil {
			fail(c, err, "Failed to create tables")
			return
		}
	}

	tables := make([]models.Table, 0, len(req.Tables))
	for _, t := range req.Tables {
		tables = append(tables, models.Table{TbNo: t.TbNo, TbSala: t.TbSala})
	}
	if err := h.DB.Create(&tables).Error; err != nil {
		fail(c, err, "Failed to create tables")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("%d tables created", len(tables)),
		"tables":  tables,
	})
}

func (h *TableHandler) ensureUnique(tbNo, tbSala string, excludeID uint) error {
	var count int64
	q := h.DB.Model(&models.Table{}).Where("tb_no = ? AND tb_sala = ?", tbNo, tbSala)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: table %s already exists in hall %q", pos.ErrConflict, tbNo, tbSala)
	}
	return nil
}
