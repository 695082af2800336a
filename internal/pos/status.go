package pos

import (
	"fmt"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

// Status is the invoice lifecycle state. The legacy schema stores three
// independent integers (paid, printed, locked); only a handful of
// combinations were ever produced by the source system, and StatusOf rejects
// the rest instead of silently carrying them forward.
type Status int

const (
	StatusOpen Status = iota
	StatusKitchenSent
	StatusBillPrinted
	StatusSettled
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusKitchenSent:
		return "kitchen_sent"
	case StatusBillPrinted:
		return "bill_printed"
	case StatusSettled:
		return "settled"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// StatusOf derives the state from the stored flags, failing on combinations
// the lifecycle never produces (e.g. locked while never printed).
func StatusOf(inv *models.Invoice) (Status, error) {
	switch {
	case inv.Paid == models.PaidSettled:
		return StatusSettled, nil
	case inv.Paid == models.PaidOpen && inv.Printed == models.PrintedNone:
		if inv.Locked == 1 {
			return 0, fmt.Errorf("invoice %d: locked but never printed", inv.InvSeq)
		}
		return StatusOpen, nil
	case inv.Paid == models.PaidInProgress && inv.Printed == models.PrintedKitchen:
		return StatusKitchenSent, nil
	case inv.Paid == models.PaidInProgress && inv.Printed == models.PrintedBill:
		return StatusBillPrinted, nil
	}
	return 0, fmt.Errorf("invoice %d: invalid flag combination paid=%d printed=%d locked=%d",
		inv.InvSeq, inv.Paid, inv.Printed, inv.Locked)
}

// Color maps an invoice to the dashboard table color. A nil invoice means no
// active invoice for the table.
func Color(inv *models.Invoice) string {
	if inv == nil || inv.Paid == models.PaidSettled {
		return "green"
	}
	if inv.Paid == models.PaidInProgress && inv.Printed == models.PrintedBill {
		return "yellow"
	}
	if inv.Paid == models.PaidInProgress && inv.Printed == models.PrintedKitchen {
		return "red"
	}
	return "green"
}
