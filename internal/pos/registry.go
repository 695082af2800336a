package pos

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

// Registry maps a table number to its active invoice: the latest same-day,
// unsettled invoice for that table. The map is maintained incrementally by
// the state machine (open/settle/clear) with a day-bounded DB query as
// fallback, replacing the per-read ranking query of the source system.
type Registry struct {
	mu      sync.Mutex
	entries map[string]registryEntry
}

type registryEntry struct {
	invSeq uint
	day    string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func (r *Registry) Put(table string, invSeq uint, now time.Time) {
	r.mu.Lock()
	r.entries[table] = registryEntry{invSeq: invSeq, day: dayKey(now)}
	r.mu.Unlock()
}

func (r *Registry) Drop(table string) {
	r.mu.Lock()
	delete(r.entries, table)
	r.mu.Unlock()
}

// Resolve returns the active invoice for the table, or nil when the table is
// free. A cached entry is trusted only for the current calendar day and only
// while the invoice is still unsettled.
func (r *Registry) Resolve(db *gorm.DB, table string, now time.Time) (*models.Invoice, error) {
	r.mu.Lock()
	entry, ok := r.entries[table]
	r.mu.Unlock()

	if ok && entry.day == dayKey(now) {
		var inv models.Invoice
		err := db.First(&inv, "inv_seq = ?", entry.invSeq).Error
		switch {
		case err == nil && inv.Paid != models.PaidSettled:
			return &inv, nil
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
		// settled or deleted behind our back
		r.Drop(table)
	} else if ok {
		r.Drop(table)
	}

	start, end := dayBounds(now)
	var inv models.Invoice
	err := db.Where("inv_ft_no = ? AND inv_date >= ? AND inv_date < ? AND paid <> ?",
		table, start, end, models.PaidSettled).
		Order("inv_date DESC, inv_seq DESC").
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Put(table, inv.InvSeq, now)
	return &inv, nil
}

// dayBounds gives the calendar-day window [start, end) around now. Day
// scoping is calendar-based, not a rolling 24h window.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
