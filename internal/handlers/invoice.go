package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/pos"
	"github.com/CampCoding/elmezan-backend/internal/printing"
)

type InvoiceHandler struct {
	DB       *gorm.DB
	Service  *pos.Service
	Pipeline *printing.Pipeline
}

func NewInvoiceHandler(db *gorm.DB, service *pos.Service, pipeline *printing.Pipeline) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Service: service, Pipeline: pipeline}
}

type openTableRequest struct {
	TableNumber string `json:"tableNumber"`
	CaptainNo   int    `json:"captainNo"`
	CaptainName string `json:"captainName"`
	Note        string `json:"note"`
}

func (h *InvoiceHandler) Open(c *gin.Context) {
	var req openTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
		return
	}

	inv, err := h.Service.Open(req.TableNumber, req.CaptainNo, req.CaptainName, req.Note)
	if err != nil {
		fail(c, err, "Failed to open table")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Table opened and invoice created",
		"invoice": gin.H{
			"inv_seq":     inv.InvSeq,
			"tableNumber": req.TableNumber,
			"num1":        inv.Num1,
			"captainNo":   inv.CaptainNo,
			"captainName": inv.CaptainName,
		},
	})
}

type assignCaptainRequest struct {
	CaptainNo   *int    `json:"captainNo"`
	CaptainName *string `json:"captainName"`
}

func (h *InvoiceHandler) AssignCaptain(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	var req assignCaptainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
		return
	}
	if err := h.Service.AssignCaptain(invSeq, req.CaptainNo, req.CaptainName); err != nil {
		fail(c, err, "Failed to assign captain")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Captain assigned/updated successfully"})
}

type printRequest struct {
	PrintType   string `json:"printType"`
	PrinterName string `json:"printerName"`
}

// Print runs the kitchen or bill print flow. The flag transition commits
// regardless of how dispatch went; the response's success reflects only the
// final document's print outcome, with per-category results alongside.
func (h *InvoiceHandler) Print(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	var req printRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
		return
	}

	var kind printing.DocumentKind
	var printed int
	switch req.PrintType {
	case "kitchen":
		kind, printed = printing.KindKitchen, 1
	case "bill":
		kind, printed = printing.KindBill, 2
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "printType must be 'kitchen' or 'bill'"})
		return
	}

	outcome, err := h.Service.BeginPrint(invSeq)
	if err != nil {
		fail(c, err, "Failed to execute print flow")
		return
	}
	if outcome.AlreadySettled {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Already paid; no action taken"})
		return
	}

	inv := outcome.Invoice
	view := printing.InvoiceView{
		InvSeq:  inv.InvSeq,
		Num1:    inv.Num1,
		Date:    inv.InvDate,
		Note:    inv.Note,
		Reprint: inv.Printed > 0,
	}
	if inv.TableNumber != nil {
		view.TableNumber = *inv.TableNumber
	}

	steps := h.Pipeline.Run(c.Request.Context(), kind, view, outcome.Lines, req.PrinterName)

	if err := h.Service.FinishPrint(invSeq, printed); err != nil {
		fail(c, err, "Failed to update invoice status")
		return
	}

	final := steps[len(steps)-1]
	c.JSON(http.StatusOK, gin.H{
		"success":            final.Printed,
		"message":            printMessage(final.Printed),
		"lock":               1,
		"perCategoryResults": steps[:len(steps)-1],
		"final":              final,
		"totals": gin.H{
			"items":  len(outcome.Lines),
			"amount": pos.Total(outcome.Lines),
		},
	})
}

func printMessage(ok bool) string {
	if ok {
		return "Print procedures executed"
	}
	return "Printing finished with errors"
}

func (h *InvoiceHandler) Pay(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	if err := h.Service.Settle(invSeq); err != nil {
		fail(c, err, "Failed to settle invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice settled. Table will show green."})
}

func (h *InvoiceHandler) CheckPaid(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	inv, err := h.Service.Invoice(invSeq)
	if err != nil {
		fail(c, err, "Failed to check invoice status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": gin.H{
			"inv_seq":      inv.InvSeq,
			"table_number": inv.TableNumber,
			"num1":         inv.Num1,
			"date":         inv.InvDate,
			"captain":      inv.CaptainName,
			"status": gin.H{
				"paid":    inv.Paid,
				"printed": inv.Printed,
				"locked":  inv.Locked,
			},
			"table_color": pos.Color(inv),
		},
	})
}

func (h *InvoiceHandler) LockAndClear(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	if err := h.Service.LockAndClear(invSeq); err != nil {
		fail(c, err, "Failed to lock and clear invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice locked and cleared (items and captain removed)"})
}

func (h *InvoiceHandler) NextNum1(c *gin.Context) {
	next, err := h.Service.NextNum1()
	if err != nil {
		fail(c, err, "Failed to compute next NUM1")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "nextNum1": next})
}

func (h *InvoiceHandler) List(c *gin.Context) {
	filter := pos.InvoiceFilter{TableNumber: c.Query("tableNumber")}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid from"})
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid to"})
			return
		}
		filter.To = &t
	}
	if paid, ok := queryInt(c, "paid"); ok {
		filter.Paid = paid
	}
	if printed, ok := queryInt(c, "printed"); ok {
		filter.Printed = printed
	}

	invoices, summary, err := h.Service.ListInvoices(filter)
	if err != nil {
		fail(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"invoices": invoices,
		"total":    len(invoices),
		"summary":  summary,
	})
}

func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invSeq, ok := pathUint(c, "invSeq")
	if !ok {
		return
	}
	inv, err := h.Service.Invoice(invSeq)
	if err != nil {
		fail(c, err, "Failed to fetch invoice")
		return
	}
	lines, err := h.Service.Lines(invSeq)
	if err != nil {
		fail(c, err, "Failed to fetch invoice items")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"invoice": inv,
		"items":   lines,
		"total":   pos.Total(lines),
	})
}

func (h *InvoiceHandler) TableDetail(c *gin.Context) {
	detail, err := h.Service.TableDetail(c.Param("tableNumber"))
	if err != nil {
		fail(c, err, "Failed to fetch table info")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "table": detail})
}

func (h *InvoiceHandler) ClearTable(c *gin.Context) {
	tableNumber := c.Param("tableNumber")
	if err := h.Service.ClearTable(tableNumber); err != nil {
		fail(c, err, "Failed to clear table")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Table cleared and made available",
		"tableNumber": tableNumber,
	})
}
