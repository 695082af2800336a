package printing

import (
	"strings"
	"testing"
)

func TestBillRenderShowsPricesAndTotal(t *testing.T) {
	r := &TextRenderer{Header: "EL MEZAN"}
	doc, err := r.Render(KindBill, testView(), testLines())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"EL MEZAN", "Order 3", "Table 4", "TOTAL 310.00", "80.00 x 2 = 160.00"} {
		if !strings.Contains(doc.Content, want) {
			t.Fatalf("bill missing %q:\n%s", want, doc.Content)
		}
	}
	if strings.Contains(doc.Content, "KITCHEN ORDER") {
		t.Fatal("bill must not carry the kitchen banner")
	}
	if strings.Contains(doc.Content, "no ice") {
		t.Fatal("bill must not carry kitchen notices")
	}
}

func TestKitchenRenderShowsNoticesNoPrices(t *testing.T) {
	r := &TextRenderer{}
	doc, err := r.Render(KindKitchen, testView(), testLines())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"KITCHEN ORDER", "Kofta", "> no ice"} {
		if !strings.Contains(doc.Content, want) {
			t.Fatalf("ticket missing %q:\n%s", want, doc.Content)
		}
	}
	if strings.Contains(doc.Content, "TOTAL") {
		t.Fatal("kitchen ticket must not show prices")
	}
}

func TestCancelRenderCarriesBanner(t *testing.T) {
	r := &TextRenderer{}
	doc, err := r.Render(KindCancel, testView(), testLines()[:1])
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc.Content, "*** CANCELLED ***") {
		t.Fatalf("cancel banner missing:\n%s", doc.Content)
	}
}

func TestReprintMarker(t *testing.T) {
	r := &TextRenderer{}
	view := testView()
	view.Reprint = true
	doc, err := r.Render(KindKitchen, view, testLines())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc.Content, "(reprint)") {
		t.Fatalf("reprint marker missing:\n%s", doc.Content)
	}
}
