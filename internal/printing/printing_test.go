package printing

import (
	"context"
	"testing"
	"time"

	"github.com/CampCoding/elmezan-backend/internal/pos"
)

type dispatchCall struct {
	doc     Document
	printer string
}

type recordDispatcher struct {
	calls   []dispatchCall
	failFor map[string]bool
}

func (d *recordDispatcher) Dispatch(ctx context.Context, doc Document, printer string) DispatchResult {
	d.calls = append(d.calls, dispatchCall{doc: doc, printer: printer})
	if d.failFor[printer] {
		return DispatchResult{Printer: printer, Method: "test", Error: "printer offline"}
	}
	return DispatchResult{OK: true, Printer: printer, Method: "test"}
}

func testView() InvoiceView {
	return InvoiceView{
		InvSeq:      12,
		Num1:        3,
		TableNumber: "4",
		Date:        time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC),
	}
}

func testLines() []pos.LineDetail {
	return []pos.LineDetail{
		{ItemNo: "101", ItemName: "Kofta", Category: "Grill", Qty: 2, Price: 80, LineTotal: 160},
		{ItemNo: "102", ItemName: "Shish", Category: "Grill", Qty: 1, Price: 90, LineTotal: 90},
		{ItemNo: "201", ItemName: "Cola", Category: "Drinks", Qty: 3, Price: 20, Notice: "no ice", LineTotal: 60},
	}
}

func TestKitchenRunFansOutPerCategory(t *testing.T) {
	dispatcher := &recordDispatcher{}
	p := &Pipeline{
		Renderer:    &TextRenderer{},
		Dispatcher:  dispatcher,
		Printers:    []string{"Grill", "Drinks"},
		CashPrinter: "Cash",
	}

	steps := p.Run(context.Background(), KindKitchen, testView(), testLines(), "")

	// one ticket per category plus the full document
	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(steps))
	}
	if steps[0].Category != "Grill" || steps[1].Category != "Drinks" {
		t.Fatalf("category order = %s, %s", steps[0].Category, steps[1].Category)
	}
	for _, step := range steps {
		if !step.Printed {
			t.Fatalf("step %s/%s not printed: %s", step.Step, step.Category, step.Error)
		}
	}
	if steps[2].Step != "full-document" || steps[2].Printer != "Cash" {
		t.Fatalf("final step = %+v", steps[2])
	}
	if len(dispatcher.calls) != 3 {
		t.Fatalf("dispatches = %d, want 3", len(dispatcher.calls))
	}
	if dispatcher.calls[0].doc.Category != "Grill" {
		t.Fatalf("first ticket category = %s", dispatcher.calls[0].doc.Category)
	}
}

func TestKitchenRunReportsUnmatchedCategory(t *testing.T) {
	dispatcher := &recordDispatcher{}
	p := &Pipeline{
		Renderer:    &TextRenderer{},
		Dispatcher:  dispatcher,
		Printers:    []string{"Grill"},
		CashPrinter: "Cash",
	}

	steps := p.Run(context.Background(), KindKitchen, testView(), testLines(), "")

	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(steps))
	}
	drinks := steps[1]
	if drinks.Category != "Drinks" || drinks.Printed || drinks.Error != "no matching printer by name" {
		t.Fatalf("unmatched step = %+v", drinks)
	}
	// the skip must not stop the remaining steps
	if !steps[2].Printed {
		t.Fatalf("final step failed: %+v", steps[2])
	}
	if len(dispatcher.calls) != 2 {
		t.Fatalf("dispatches = %d, want 2", len(dispatcher.calls))
	}
}

func TestFailedDispatchDoesNotAbortRun(t *testing.T) {
	dispatcher := &recordDispatcher{failFor: map[string]bool{"Grill": true}}
	p := &Pipeline{
		Renderer:    &TextRenderer{},
		Dispatcher:  dispatcher,
		Printers:    []string{"Grill", "Drinks"},
		CashPrinter: "Cash",
	}

	steps := p.Run(context.Background(), KindKitchen, testView(), testLines(), "")

	if steps[0].Printed || steps[0].Error == "" {
		t.Fatalf("grill step should fail: %+v", steps[0])
	}
	if !steps[1].Printed || !steps[2].Printed {
		t.Fatalf("later steps must still run: %+v, %+v", steps[1], steps[2])
	}
}

func TestBillRunUsesOverridePrinter(t *testing.T) {
	dispatcher := &recordDispatcher{}
	p := &Pipeline{
		Renderer:    &TextRenderer{},
		Dispatcher:  dispatcher,
		Printers:    []string{"Grill"},
		CashPrinter: "Cash",
	}

	steps := p.Run(context.Background(), KindBill, testView(), testLines(), "Counter")

	// bill printing never fans out to kitchen printers
	if len(steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(steps))
	}
	if steps[0].Printer != "Counter" {
		t.Fatalf("printer = %s, want Counter", steps[0].Printer)
	}
}

func TestRunMatchesPrinterNamesWithBidiMarks(t *testing.T) {
	dispatcher := &recordDispatcher{}
	p := &Pipeline{
		Renderer:    &TextRenderer{},
		Dispatcher:  dispatcher,
		Printers:    []string{"\u200Fمشويات\u200E", " GRILL "},
		CashPrinter: "Cash",
	}
	lines := []pos.LineDetail{
		{ItemNo: "101", ItemName: "Kofta", Category: "مشويات", Qty: 1, Price: 80},
		{ItemNo: "102", ItemName: "Shish", Category: "grill", Qty: 1, Price: 90},
	}

	steps := p.Run(context.Background(), KindKitchen, testView(), lines, "")

	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(steps))
	}
	if !steps[0].Printed || !steps[1].Printed {
		t.Fatalf("name matching failed: %+v, %+v", steps[0], steps[1])
	}
}

func TestRunCancelRoutesToCategoryPrinter(t *testing.T) {
	dispatcher := &recordDispatcher{}
	p := &Pipeline{
		Renderer:   &TextRenderer{},
		Dispatcher: dispatcher,
		Printers:   []string{"Grill"},
	}
	line := pos.LineDetail{ItemNo: "101", ItemName: "Kofta", Category: "Grill", Qty: 2}

	step := p.RunCancel(context.Background(), testView(), line)

	if step.Step != "cancel-notice" || !step.Printed || step.Printer != "Grill" {
		t.Fatalf("cancel step = %+v", step)
	}
	if len(dispatcher.calls) != 1 || dispatcher.calls[0].doc.Kind != KindCancel {
		t.Fatalf("dispatch = %+v", dispatcher.calls)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Grill", "grill"},
		{"  GRILL  ", "grill"},
		{"\u200Fمشويات\u200E", "مشويات"},
		{"\u202Bمشويات\u202C", "مشويات"},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
