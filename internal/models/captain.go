package models

type Captain struct {
	CaptainNo   int    `gorm:"column:captain_no;primaryKey" json:"captainNumber"`
	CaptainName string `gorm:"column:captain_name;size:255" json:"name"`
	Password    string `gorm:"column:password;size:255" json:"-"`
}

func (Captain) TableName() string { return "CAPTAN_TB" }
