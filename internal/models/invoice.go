package models

import "time"

// Invoice lifecycle flags. The legacy schema encodes state as three integers;
// valid combinations are checked in the pos package.
const (
	PaidOpen       = 0
	PaidSettled    = 1
	PaidInProgress = 2

	PrintedNone    = 0
	PrintedKitchen = 1
	PrintedBill    = 2
)

type Invoice struct {
	InvSeq      uint      `gorm:"column:inv_seq;primaryKey;autoIncrement" json:"inv_seq"`
	TableNumber *string   `gorm:"column:inv_ft_no;size:50;index" json:"tableNumber"`
	InvDate     time.Time `gorm:"column:inv_date;index" json:"date"`
	Num1        int       `gorm:"column:num1" json:"num1"`
	CaptainNo   int       `gorm:"column:inv_captain_no" json:"captainNo"`
	CaptainName string    `gorm:"column:inv_cash_name;size:255" json:"captainName"`
	Note        string    `gorm:"column:inv_note;size:500" json:"note"`
	Paid        int       `gorm:"column:paid" json:"paid"`
	Printed     int       `gorm:"column:printed" json:"printed"`
	Locked      int       `gorm:"column:locked" json:"locked"`
}

func (Invoice) TableName() string { return "INVOICE" }
