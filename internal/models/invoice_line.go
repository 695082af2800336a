package models

import "time"

// InvoiceLine is one ordered item on an invoice. Price is captured at
// add-time and is not a live join against the catalog.
type InvoiceLine struct {
	AutoSeq uint    `gorm:"column:auto_seq;primaryKey;autoIncrement" json:"auto_seq"`
	InvSeq  uint    `gorm:"column:inv_seq;index" json:"inv_seq"`
	ItemNo  string  `gorm:"column:item_no;size:50;index" json:"itemNo"`
	Qty     float64 `gorm:"column:qty" json:"qty"`
	Price   float64 `gorm:"column:price;type:decimal(12,2)" json:"price"`
	Notice  string  `gorm:"column:notice;size:255" json:"notice"`
	PP      int     `gorm:"column:pp" json:"pp"`
}

func (InvoiceLine) TableName() string { return "INVOICE_MENU" }

// DeletedLine archives a removed invoice line for audit.
type DeletedLine struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	InvSeq      uint      `gorm:"column:inv_seq;index" json:"inv_seq"`
	ItemNo      string    `gorm:"column:item_no;size:50" json:"itemNo"`
	Qty         float64   `gorm:"column:qty" json:"qty"`
	Price       float64   `gorm:"column:price;type:decimal(12,2)" json:"price"`
	Notice      string    `gorm:"column:notice;size:255" json:"notice"`
	PP          int       `gorm:"column:pp" json:"pp"`
	TableNumber *string   `gorm:"column:inv_ft_no;size:50" json:"tableNumber"`
	Num1        int       `gorm:"column:num1" json:"num1"`
	TheDate     time.Time `gorm:"column:the_date" json:"date"`
}

func (DeletedLine) TableName() string { return "INVOICE_MENU_BACK" }
