package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/config"
	"github.com/CampCoding/elmezan-backend/internal/handlers"
	"github.com/CampCoding/elmezan-backend/internal/middleware"
	"github.com/CampCoding/elmezan-backend/internal/models"
	"github.com/CampCoding/elmezan-backend/internal/pos"
	"github.com/CampCoding/elmezan-backend/internal/printing"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "elmezan-pos-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	service := pos.NewService(db)
	pipeline := &printing.Pipeline{
		Renderer:    &printing.TextRenderer{Header: cfg.ReceiptHeader},
		Dispatcher:  printing.NewExecDispatcher(),
		Printers:    cfg.PrinterNames(),
		CashPrinter: cfg.CashPrinter,
		Timeout:     time.Duration(cfg.PrintTimeoutSeconds) * time.Second,
	}
	// Deleting a kitchen-sent item pushes a cancellation notice to the
	// category printer, best-effort.
	service.OnLineDeleted = func(inv models.Invoice, line models.InvoiceLine) {
		view := printing.InvoiceView{
			InvSeq: inv.InvSeq,
			Num1:   inv.Num1,
			Date:   inv.InvDate,
		}
		if inv.TableNumber != nil {
			view.TableNumber = *inv.TableNumber
		}
		detail := pos.LineDetail{ItemNo: line.ItemNo, Qty: line.Qty, Notice: line.Notice}
		var item models.Item
		if err := db.First(&item, "item_no = ?", line.ItemNo).Error; err == nil {
			detail.Category = item.Category
			detail.ItemName = item.ItemName
		}
		ctx, cancel := context.WithTimeout(context.Background(), pipeline.Timeout)
		defer cancel()
		pipeline.RunCancel(ctx, view, detail)
	}

	invoiceHandler := handlers.NewInvoiceHandler(db, service, pipeline)
	tableHandler := handlers.NewTableHandler(db, service)
	captainHandler := handlers.NewCaptainHandler(db, cfg.JwtSecret, cfg.JwtAccessMinutes)
	hallHandler := handlers.NewHallHandler(db, service)
	menuHandler := handlers.NewMenuHandler(db)

	api := router.Group("/api")
	{
		api.POST("/invoice/open", invoiceHandler.Open)
		api.GET("/invoice", invoiceHandler.List)
		api.GET("/invoice/today/next-num1", invoiceHandler.NextNum1)
		api.GET("/invoice/table/:tableNumber", invoiceHandler.TableDetail)
		api.POST("/invoice/table/:tableNumber/clear", invoiceHandler.ClearTable)
		api.GET("/invoice/:invSeq", invoiceHandler.Get)
		api.POST("/invoice/:invSeq/captain", invoiceHandler.AssignCaptain)
		api.POST("/invoice/:invSeq/print", invoiceHandler.Print)
		api.POST("/invoice/:invSeq/pay", invoiceHandler.Pay)
		api.POST("/invoice/:invSeq/check-paid", invoiceHandler.CheckPaid)
		api.POST("/invoice/:invSeq/lock-and-clear", invoiceHandler.LockAndClear)

		api.POST("/invoice/:invSeq/items", invoiceHandler.AddItem)
		api.PUT("/invoice/:invSeq/items", invoiceHandler.UpdateItem)
		api.PUT("/invoice/:invSeq/items/auto/:autoSeq", invoiceHandler.UpdateItemByAuto)
		api.DELETE("/invoice/:invSeq/items/:autoSeq", invoiceHandler.DeleteItem)
		api.DELETE("/invoice/:invSeq/items/auto/:autoSeq", invoiceHandler.DeleteItemByAuto)
		api.DELETE("/invoice/:invSeq/items/by-item/:itemNo", invoiceHandler.DeleteItemByItem)

		api.GET("/tables", tableHandler.List)
		api.GET("/tables/groups", tableHandler.Groups)
		api.POST("/tables", tableHandler.Create)
		api.POST("/tables/bulk", tableHandler.Bulk)
		api.PUT("/tables/:id", tableHandler.Update)
		api.DELETE("/tables/:id", tableHandler.Delete)

		api.POST("/captains/login", captainHandler.Login)
		api.GET("/captains", captainHandler.List)
		api.GET("/captains/:captainNo", captainHandler.Get)

		api.GET("/halls", hallHandler.List)
		api.GET("/halls/:hallName", hallHandler.Get)
		api.GET("/halls/:hallName/stats", hallHandler.Stats)

		api.GET("/menu", menuHandler.List)
		api.GET("/menu/categories", menuHandler.Categories)
		api.GET("/menu/categories/:category/items", menuHandler.ItemsByCategory)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/captains/me", captainHandler.Me)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
