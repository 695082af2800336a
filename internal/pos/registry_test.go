package pos

import (
	"testing"
	"time"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

func tableRef(s string) *string { return &s }

func TestResolvePicksLatestUnsettled(t *testing.T) {
	db := testDB(t)
	reg := NewRegistry()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	early := models.Invoice{TableNumber: tableRef("7"), InvDate: now.Add(-2 * time.Hour), Num1: 1}
	late := models.Invoice{TableNumber: tableRef("7"), InvDate: now.Add(-1 * time.Hour), Num1: 2}
	db.Create(&early)
	db.Create(&late)

	inv, err := reg.Resolve(db, "7", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if inv == nil || inv.InvSeq != late.InvSeq {
		t.Fatalf("resolved %+v, want inv_seq %d", inv, late.InvSeq)
	}
}

func TestResolveSkipsSettledInvoices(t *testing.T) {
	db := testDB(t)
	reg := NewRegistry()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	open := models.Invoice{TableNumber: tableRef("7"), InvDate: now.Add(-2 * time.Hour)}
	settled := models.Invoice{TableNumber: tableRef("7"), InvDate: now.Add(-1 * time.Hour), Paid: models.PaidSettled}
	db.Create(&open)
	db.Create(&settled)

	inv, err := reg.Resolve(db, "7", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if inv == nil || inv.InvSeq != open.InvSeq {
		t.Fatalf("resolved %+v, want the earlier unsettled invoice", inv)
	}
}

func TestResolveIgnoresOtherDays(t *testing.T) {
	db := testDB(t)
	reg := NewRegistry()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	db.Create(&models.Invoice{TableNumber: tableRef("7"), InvDate: now.AddDate(0, 0, -1)})

	inv, err := reg.Resolve(db, "7", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if inv != nil {
		t.Fatalf("yesterday's invoice resolved as active: %+v", inv)
	}
}

func TestResolveDropsCacheWhenSettledBehindOurBack(t *testing.T) {
	db := testDB(t)
	reg := NewRegistry()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	inv := models.Invoice{TableNumber: tableRef("7"), InvDate: now}
	db.Create(&inv)
	reg.Put("7", inv.InvSeq, now)

	db.Model(&models.Invoice{}).Where("inv_seq = ?", inv.InvSeq).
		UpdateColumn("paid", models.PaidSettled)

	got, err := reg.Resolve(db, "7", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("stale cache entry survived: %+v", got)
	}
}

func TestResolveDistrustsCacheFromAnotherDay(t *testing.T) {
	db := testDB(t)
	reg := NewRegistry()
	yesterday := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	inv := models.Invoice{TableNumber: tableRef("7"), InvDate: yesterday}
	db.Create(&inv)
	reg.Put("7", inv.InvSeq, yesterday)

	got, err := reg.Resolve(db, "7", today)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("yesterday's cache entry resolved today: %+v", got)
	}
}
