package pos

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

func wrapTableLookup(err error, tableNumber string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: table %s", ErrNotFound, tableNumber)
	}
	return err
}

// InvoiceFilter narrows the invoice listing. Nil fields are not applied; To
// is inclusive of the whole day.
type InvoiceFilter struct {
	From        *time.Time
	To          *time.Time
	TableNumber string
	Paid        *int
	Printed     *int
}

type InvoiceSummary struct {
	models.Invoice
	Captain      string       `json:"captain"`
	Items        []LineDetail `json:"items"`
	InvoiceTotal float64      `json:"invoiceTotal"`
}

type ListSummary struct {
	TotalAmount                 float64 `json:"totalAmount"`
	TotalPaidAmount             float64 `json:"totalPaidAmount"`
	TotalUnpaidAmount           float64 `json:"totalUnpaidAmount"`
	TotalPrintedUnsettledAmount float64 `json:"totalPrintedUnsettledAmount"`
}

// ListInvoices returns filtered invoices, newest first, each with its lines
// and derived total, plus aggregate amounts over the result set.
func (s *Service) ListInvoices(filter InvoiceFilter) ([]InvoiceSummary, ListSummary, error) {
	q := s.db.Model(&models.Invoice{})
	if filter.From != nil {
		q = q.Where("inv_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("inv_date < ?", filter.To.AddDate(0, 0, 1))
	}
	if filter.TableNumber != "" {
		q = q.Where("inv_ft_no = ?", filter.TableNumber)
	}
	if filter.Paid != nil {
		q = q.Where("paid = ?", *filter.Paid)
	}
	if filter.Printed != nil {
		q = q.Where("printed = ?", *filter.Printed)
	}

	var invoices []models.Invoice
	if err := q.Order("inv_date DESC, inv_seq DESC").Find(&invoices).Error; err != nil {
		return nil, ListSummary{}, err
	}

	result := make([]InvoiceSummary, 0, len(invoices))
	var summary ListSummary
	for _, inv := range invoices {
		lines, err := s.Lines(inv.InvSeq)
		if err != nil {
			return nil, ListSummary{}, err
		}
		total := Total(lines)
		result = append(result, InvoiceSummary{
			Invoice:      inv,
			Captain:      inv.CaptainName,
			Items:        lines,
			InvoiceTotal: total,
		})
		summary.TotalAmount += total
		switch inv.Paid {
		case models.PaidSettled:
			summary.TotalPaidAmount += total
		case models.PaidInProgress:
			summary.TotalPrintedUnsettledAmount += total
		}
	}
	summary.TotalUnpaidAmount = summary.TotalAmount - summary.TotalPaidAmount
	return result, summary, nil
}

type CaptainInfo struct {
	CaptainNo   int    `json:"captainNo"`
	CaptainName string `json:"captainName"`
	DisplayName string `json:"displayName"`
}

type ActiveInvoice struct {
	InvSeq  uint         `json:"inv_seq"`
	Num1    int          `json:"num1"`
	Date    time.Time    `json:"date"`
	Paid    int          `json:"paid"`
	Printed int          `json:"printed"`
	Locked  int          `json:"locked"`
	Note    string       `json:"note"`
	Total   float64      `json:"total"`
	Items   []LineDetail `json:"items"`
}

type TableStatus struct {
	ID      uint           `json:"id"`
	Number  string         `json:"number"`
	Hall    string         `json:"hall"`
	Status  string         `json:"status"`
	Color   string         `json:"color"`
	Captain *CaptainInfo   `json:"captain"`
	Invoice *ActiveInvoice `json:"invoice"`
}

type HallGroup struct {
	ID     int           `json:"id"`
	Hall   string        `json:"hall"`
	Tables []TableStatus `json:"tables"`
}

// TableDetail resolves a single table's registration, active invoice, lines
// and color.
func (s *Service) TableDetail(tableNumber string) (*TableStatus, error) {
	var table models.Table
	err := s.db.First(&table, "tb_no = ?", tableNumber).Error
	if err != nil {
		return nil, wrapTableLookup(err, tableNumber)
	}
	return s.tableStatus(table)
}

func (s *Service) tableStatus(table models.Table) (*TableStatus, error) {
	status := &TableStatus{
		ID:     table.ID,
		Number: strings.TrimSpace(table.TbNo),
		Hall:   strings.TrimSpace(table.TbSala),
		Status: "available",
		Color:  "green",
	}
	inv, err := s.reg.Resolve(s.db, table.TbNo, s.now())
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return status, nil
	}

	lines, err := s.Lines(inv.InvSeq)
	if err != nil {
		return nil, err
	}
	status.Status = "occupied"
	status.Color = Color(inv)
	status.Captain = &CaptainInfo{
		CaptainNo:   inv.CaptainNo,
		CaptainName: inv.CaptainName,
		DisplayName: displayName(inv.CaptainName),
	}
	status.Invoice = &ActiveInvoice{
		InvSeq:  inv.InvSeq,
		Num1:    inv.Num1,
		Date:    inv.InvDate,
		Paid:    inv.Paid,
		Printed: inv.Printed,
		Locked:  inv.Locked,
		Note:    inv.Note,
		Total:   Total(lines),
		Items:   lines,
	}
	return status, nil
}

func displayName(name string) string {
	if name == "" {
		return "unassigned"
	}
	return name
}

// ListByHall groups every registered table by hall with its resolved state.
// Halls come out in name order; tables within a hall sort numerically, so
// table 10 follows table 9.
func (s *Service) ListByHall() ([]HallGroup, error) {
	var tables []models.Table
	if err := s.db.Order("tb_sala, tb_no").Find(&tables).Error; err != nil {
		return nil, err
	}

	grouped := map[string][]TableStatus{}
	var hallNames []string
	for _, table := range tables {
		status, err := s.tableStatus(table)
		if err != nil {
			return nil, err
		}
		hall := status.Hall
		if hall == "" {
			hall = "Default"
		}
		if _, seen := grouped[hall]; !seen {
			hallNames = append(hallNames, hall)
		}
		grouped[hall] = append(grouped[hall], *status)
	}
	sort.Strings(hallNames)

	result := make([]HallGroup, 0, len(hallNames))
	for i, hall := range hallNames {
		tables := grouped[hall]
		sort.Slice(tables, func(a, b int) bool {
			return tableLess(tables[a].Number, tables[b].Number)
		})
		result = append(result, HallGroup{ID: i + 1, Hall: hall, Tables: tables})
	}
	return result, nil
}

func tableLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// HallStats counts total and available tables for one hall.
type HallStats struct {
	TotalTables            int `json:"totalTables"`
	AvailableTables        int `json:"availableTables"`
	ReservedTables         int `json:"reservedTables"`
	AvailabilityPercentage int `json:"availabilityPercentage"`
}

func (s *Service) HallStatsFor(hallName string) (*HallStats, error) {
	var tables []models.Table
	if err := s.db.Find(&tables, "tb_sala = ?", hallName).Error; err != nil {
		return nil, err
	}
	stats := &HallStats{TotalTables: len(tables)}
	for _, table := range tables {
		inv, err := s.reg.Resolve(s.db, table.TbNo, s.now())
		if err != nil {
			return nil, err
		}
		if inv == nil {
			stats.AvailableTables++
		}
	}
	stats.ReservedTables = stats.TotalTables - stats.AvailableTables
	if stats.TotalTables > 0 {
		stats.AvailabilityPercentage = stats.AvailableTables * 100 / stats.TotalTables
	}
	return stats, nil
}
