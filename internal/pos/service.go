package pos

import (
	"time"

	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

// Service owns the invoice/table state machine and the line/stock coupling.
// All flag transitions and compensating stock adjustments go through here;
// handlers stay thin.
type Service struct {
	db    *gorm.DB
	reg   *Registry
	stock *StockLedger
	now   func() time.Time

	// OnLineDeleted is the kitchen deletion-notice hook, called best-effort
	// after a full delete; failures never surface to the caller.
	OnLineDeleted func(inv models.Invoice, line models.InvoiceLine)
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:    db,
		reg:   NewRegistry(),
		stock: NewStockLedger(db),
		now:   time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) Stock() *StockLedger { return s.stock }

func (s *Service) Registry() *Registry { return s.reg }
