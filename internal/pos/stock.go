package pos

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

// StockLedger applies signed deltas to item balances. Every mutation is a
// single UPDATE statement so concurrent edits to the same item cannot lose
// updates; Reserve additionally carries the floor check in the statement
// itself.
type StockLedger struct {
	db *gorm.DB
}

func NewStockLedger(db *gorm.DB) *StockLedger {
	return &StockLedger{db: db}
}

// Reserve decrements the balance by qty only if the remaining balance stays
// non-negative. Zero rows affected means either a missing item or not enough
// stock; the follow-up read tells the two apart.
func (l *StockLedger) Reserve(itemNo string, qty float64) error {
	if qty == 0 {
		return nil
	}
	res := l.db.Model(&models.Item{}).
		Where("item_no = ? AND balance >= ?", itemNo, qty).
		UpdateColumn("balance", gorm.Expr("balance - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		balance, err := l.Balance(itemNo)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: item %s has %g, need %g", ErrInsufficientStock, itemNo, balance, qty)
	}
	return nil
}

// Deduct decrements unconditionally. Used by the add-line path, which by
// policy soft-warns instead of blocking; the caller inspects the returned
// balance for the warning.
func (l *StockLedger) Deduct(itemNo string, qty float64) (float64, error) {
	res := l.db.Model(&models.Item{}).
		Where("item_no = ?", itemNo).
		UpdateColumn("balance", gorm.Expr("balance - ?", qty))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: item %s", ErrNotFound, itemNo)
	}
	return l.Balance(itemNo)
}

// Credit returns qty to the balance.
func (l *StockLedger) Credit(itemNo string, qty float64) error {
	if qty == 0 {
		return nil
	}
	res := l.db.Model(&models.Item{}).
		Where("item_no = ?", itemNo).
		UpdateColumn("balance", gorm.Expr("balance + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: item %s", ErrNotFound, itemNo)
	}
	return nil
}

func (l *StockLedger) Balance(itemNo string) (float64, error) {
	var item models.Item
	if err := l.db.Select("balance").First(&item, "item_no = ?", itemNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: item %s", ErrNotFound, itemNo)
		}
		return 0, err
	}
	return item.Balance, nil
}
