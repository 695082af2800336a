package pos

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

// Open creates an invoice for a table with the next per-day display number.
func (s *Service) Open(tableNumber string, captainNo int, captainName, note string) (*models.Invoice, error) {
	if tableNumber == "" {
		return nil, fmt.Errorf("%w: tableNumber is required", ErrValidation)
	}

	now := s.now()
	num1, err := s.NextNum1()
	if err != nil {
		return nil, err
	}

	inv := models.Invoice{
		TableNumber: &tableNumber,
		InvDate:     now,
		Num1:        num1,
		CaptainNo:   captainNo,
		CaptainName: captainName,
		Note:        note,
	}
	if err := s.db.Create(&inv).Error; err != nil {
		return nil, err
	}
	s.reg.Put(tableNumber, inv.InvSeq, now)
	return &inv, nil
}

// NextNum1 computes today's next display sequence number: max of the
// existing same-day numbers plus one, starting at 1.
func (s *Service) NextNum1() (int, error) {
	start, end := dayBounds(s.now())
	var max int
	err := s.db.Model(&models.Invoice{}).
		Where("inv_date >= ? AND inv_date < ?", start, end).
		Select("COALESCE(MAX(num1), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// AssignCaptain updates captain fields only; lifecycle flags are untouched.
func (s *Service) AssignCaptain(invSeq uint, captainNo *int, captainName *string) error {
	if captainNo == nil && captainName == nil {
		return fmt.Errorf("%w: captainNo or captainName required", ErrValidation)
	}
	if _, err := s.Invoice(invSeq); err != nil {
		return err
	}
	updates := map[string]any{}
	if captainNo != nil {
		updates["inv_captain_no"] = *captainNo
	}
	if captainName != nil {
		updates["inv_cash_name"] = *captainName
	}
	return s.db.Model(&models.Invoice{}).Where("inv_seq = ?", invSeq).Updates(updates).Error
}

func (s *Service) Invoice(invSeq uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.First(&inv, "inv_seq = ?", invSeq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, invSeq)
		}
		return nil, err
	}
	return &inv, nil
}

// PrintOutcome reports a print transition. AlreadySettled means the guard
// fired and nothing changed.
type PrintOutcome struct {
	AlreadySettled bool
	Invoice        *models.Invoice
	Lines          []LineDetail
}

// BeginPrint runs the print-side state transition up to the irreversible
// lock. If the invoice is already settled it is a no-op: nothing to print,
// and paid must never move away from 1.
func (s *Service) BeginPrint(invSeq uint) (*PrintOutcome, error) {
	inv, err := s.Invoice(invSeq)
	if err != nil {
		return nil, err
	}
	if inv.Paid == models.PaidSettled {
		return &PrintOutcome{AlreadySettled: true, Invoice: inv}, nil
	}

	if err := s.db.Model(&models.Invoice{}).Where("inv_seq = ?", invSeq).
		UpdateColumn("locked", 1).Error; err != nil {
		return nil, err
	}
	inv.Locked = 1

	lines, err := s.Lines(invSeq)
	if err != nil {
		return nil, err
	}
	return &PrintOutcome{Invoice: inv, Lines: lines}, nil
}

// FinishPrint commits the printed/paid flags for the given document kind.
// Called regardless of dispatch success: a ticket that failed to physically
// print still counts as printed in the system of record.
func (s *Service) FinishPrint(invSeq uint, printed int) error {
	if printed != models.PrintedKitchen && printed != models.PrintedBill {
		return fmt.Errorf("%w: printed must be 1 (kitchen) or 2 (bill)", ErrValidation)
	}
	return s.db.Model(&models.Invoice{}).Where("inv_seq = ?", invSeq).
		Updates(map[string]any{"paid": models.PaidInProgress, "printed": printed}).Error
}

// Settle marks the invoice paid and removes its lines. The invoice row stays
// as history; the table turns green because active resolution skips settled
// invoices.
func (s *Service) Settle(invSeq uint) error {
	inv, err := s.Invoice(invSeq)
	if err != nil {
		return err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Invoice{}).Where("inv_seq = ?", invSeq).
			UpdateColumn("paid", models.PaidSettled).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InvoiceLine{}, "inv_seq = ?", invSeq).Error
	})
	if err != nil {
		return err
	}
	if inv.TableNumber != nil {
		s.reg.Drop(*inv.TableNumber)
	}
	return nil
}

// ClearTable force-settles today's active invoice for the table, making it
// available again. Idempotent: a free or already-settled table is a no-op.
func (s *Service) ClearTable(tableNumber string) error {
	inv, err := s.reg.Resolve(s.db, tableNumber, s.now())
	if err != nil {
		return err
	}
	if inv == nil {
		return nil
	}
	if inv.Paid != models.PaidSettled {
		if err := s.db.Model(&models.Invoice{}).Where("inv_seq = ?", inv.InvSeq).
			UpdateColumn("paid", models.PaidSettled).Error; err != nil {
			return err
		}
	}
	s.reg.Drop(tableNumber)
	return nil
}

// LockAndClear destroys the invoice: when the customer bill was never
// finalized (printed != 2) every live line quantity is refunded to stock
// first, then flags are reset, lines deleted and the invoice row removed.
// This is the only transition that erases invoice history.
func (s *Service) LockAndClear(invSeq uint) error {
	inv, err := s.Invoice(invSeq)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if inv.Printed != models.PrintedBill {
			var lines []models.InvoiceLine
			if err := tx.Find(&lines, "inv_seq = ?", invSeq).Error; err != nil {
				return err
			}
			ledger := NewStockLedger(tx)
			for _, line := range lines {
				if line.Qty <= 0 {
					continue
				}
				if err := ledger.Credit(line.ItemNo, line.Qty); err != nil {
					return err
				}
			}
		}
		if err := tx.Model(&models.Invoice{}).Where("inv_seq = ?", invSeq).
			Updates(map[string]any{"paid": 0, "printed": 0, "locked": 0}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InvoiceLine{}, "inv_seq = ?", invSeq).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, "inv_seq = ?", invSeq).Error
	})
	if err != nil {
		return err
	}
	if inv.TableNumber != nil {
		s.reg.Drop(*inv.TableNumber)
	}
	return nil
}
