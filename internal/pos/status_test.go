package pos

import (
	"testing"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name    string
		paid    int
		printed int
		locked  int
		want    Status
		wantErr bool
	}{
		{name: "open", paid: 0, printed: 0, locked: 0, want: StatusOpen},
		{name: "kitchen sent", paid: 2, printed: 1, locked: 1, want: StatusKitchenSent},
		{name: "bill printed", paid: 2, printed: 2, locked: 1, want: StatusBillPrinted},
		{name: "settled", paid: 1, printed: 2, locked: 1, want: StatusSettled},
		{name: "settled overrides other flags", paid: 1, printed: 0, locked: 0, want: StatusSettled},
		{name: "locked but never printed", paid: 0, printed: 0, locked: 1, wantErr: true},
		{name: "in progress without print", paid: 2, printed: 0, locked: 0, wantErr: true},
		{name: "unknown paid value", paid: 3, printed: 0, locked: 0, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &models.Invoice{InvSeq: 1, Paid: tc.paid, Printed: tc.printed, Locked: tc.locked}
			got, err := StatusOf(inv)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestColor(t *testing.T) {
	cases := []struct {
		name string
		inv  *models.Invoice
		want string
	}{
		{name: "no invoice", inv: nil, want: "green"},
		{name: "open", inv: &models.Invoice{Paid: 0, Printed: 0}, want: "green"},
		{name: "kitchen sent", inv: &models.Invoice{Paid: 2, Printed: 1}, want: "red"},
		{name: "bill printed", inv: &models.Invoice{Paid: 2, Printed: 2}, want: "yellow"},
		{name: "settled", inv: &models.Invoice{Paid: 1, Printed: 2}, want: "green"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Color(tc.inv); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}
