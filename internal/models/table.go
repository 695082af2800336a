package models

import "time"

// Table is a physical table inside a hall. (TbNo, TbSala) is unique; the
// duplicate check is done explicitly so the API can answer with a conflict.
type Table struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TbNo      string    `gorm:"column:tb_no;size:50;index" json:"Tb_no"`
	TbSala    string    `gorm:"column:tb_sala;size:100;index" json:"Tb_sala"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Table) TableName() string { return "Tab_tables" }

type Hall struct {
	HallNo   int    `gorm:"column:hall_no;primaryKey" json:"id"`
	HallName string `gorm:"column:hall_name;size:100" json:"name"`
}

func (Hall) TableName() string { return "HALLS" }
