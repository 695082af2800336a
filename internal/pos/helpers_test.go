package pos

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.DeletedLine{},
		&models.Item{},
		&models.Table{},
		&models.Hall{},
		&models.Captain{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	return NewService(db), db
}

func fixedClock(s *Service, at time.Time) {
	s.SetClock(func() time.Time { return at })
}

func seedItem(t *testing.T, db *gorm.DB, itemNo, name, category string, price, balance float64) {
	t.Helper()
	item := models.Item{ItemNo: itemNo, ItemName: name, Category: category, Price: price, Balance: balance}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item %s: %v", itemNo, err)
	}
}

func seedTable(t *testing.T, db *gorm.DB, tbNo, hall string) {
	t.Helper()
	table := models.Table{TbNo: tbNo, TbSala: hall}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table %s: %v", tbNo, err)
	}
}

func itemBalance(t *testing.T, db *gorm.DB, itemNo string) float64 {
	t.Helper()
	var item models.Item
	if err := db.First(&item, "item_no = ?", itemNo).Error; err != nil {
		t.Fatalf("read item %s: %v", itemNo, err)
	}
	return item.Balance
}
