package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CampCoding/elmezan-backend/internal/pos"
)

type addItemRequest struct {
	ItemNo string  `json:"itemNo"`
	Qty    float64 `json:"qty"`
	Price  float64 `json:"price"`
	Notice string  `json:"notice"`
	PP     int     `json:"pp"`
}

func (h *InvoiceHandler) AddItem(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
		return
	}

	line, warning, err := h.Service.AddLine(invSeq, req.ItemNo, req.Qty, req.Price, req.Notice, req.PP)
	if err != nil {
		fail(c, err, "Failed to add item")
		return
	}

	resp := gin.H{
		"success": true,
		"message": "Item added to invoice",
		"item":    line,
	}
	if warning != "" {
		resp["stockWarning"] = warning
	}
	c.JSON(http.StatusCreated, resp)
}

type updateItemRequest struct {
	ItemNo string  `json:"itemNo"`
	Qty    float64 `json:"qty"`
	Price  float64 `json:"price"`
	Notice *string `json:"notice"`
	PP     *int    `json:"pp"`
}

func (h *InvoiceHandler) UpdateItem(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
		return
	}
	if req.ItemNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "itemNo is required"})
		return
	}

	upd := pos.LineUpdate{Qty: req.Qty, Price: req.Price, Notice: req.Notice, PP: req.PP}
	line, err := h.Service.UpdateLineByItem(invSeq, req.ItemNo, upd)
	if err != nil {
		fail(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item updated", "item": line})
}

func (h *InvoiceHandler) UpdateItemByAuto(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	autoSeq, ok := pathUint(c, "autoSeq")
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
		return
	}

	upd := pos.LineUpdate{Qty: req.Qty, Price: req.Price, Notice: req.Notice, PP: req.PP}
	line, err := h.Service.UpdateLineByAutoSeq(invSeq, autoSeq, upd)
	if err != nil {
		fail(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item updated", "item": line})
}

// DeleteItem is the guarded delete: locked invoices refuse it, the removed
// line is archived, stock is credited back and the kitchen gets a
// cancellation notice.
func (h *InvoiceHandler) DeleteItem(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	autoSeq, ok := pathUint(c, "autoSeq")
	if !ok {
		return
	}
	line, err := h.Service.DeleteLine(invSeq, autoSeq)
	if err != nil {
		fail(c, err, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item deleted and stock restored",
		"item":    line,
	})
}

func (h *InvoiceHandler) DeleteItemByAuto(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	autoSeq, ok := pathUint(c, "autoSeq")
	if !ok {
		return
	}
	line, err := h.Service.DeleteLineByAutoSeq(invSeq, autoSeq)
	if err != nil {
		fail(c, err, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted", "item": line})
}

func (h *InvoiceHandler) DeleteItemByItem(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	itemNo := c.Param("itemNo")
	line, err := h.Service.DeleteLineByItem(invSeq, itemNo)
	if err != nil {
		fail(c, err, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted", "item": line})
}
