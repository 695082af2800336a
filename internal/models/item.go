package models

// Item is a catalog entry. Balance is the live stock count; it is only ever
// mutated through single-statement signed deltas (see pos.StockLedger).
type Item struct {
	ItemNo    string  `gorm:"column:item_no;primaryKey;size:50" json:"itemNo"`
	ItemName  string  `gorm:"column:item_name;size:255" json:"itemName"`
	Category  string  `gorm:"column:category;size:100;index" json:"category"`
	Price     float64 `gorm:"column:price;type:decimal(12,2)" json:"price"`
	SalePrice float64 `gorm:"column:sale_price;type:decimal(12,2)" json:"salePrice"`
	Balance   float64 `gorm:"column:balance" json:"balance"`
}

func (Item) TableName() string { return "ITEM" }
