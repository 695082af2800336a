package printing

import (
	"fmt"
	"strings"

	"github.com/CampCoding/elmezan-backend/internal/pos"
)

// TextRenderer produces fixed-width receipt text for thermal printers.
type TextRenderer struct {
	Header string
	Width  int
}

const defaultTicketWidth = 42

func (r *TextRenderer) width() int {
	if r.Width > 0 {
		return r.Width
	}
	return defaultTicketWidth
}

func (r *TextRenderer) Render(kind DocumentKind, inv InvoiceView, lines []pos.LineDetail) (Document, error) {
	w := r.width()
	var b strings.Builder

	header := r.Header
	if header == "" {
		header = "RECEIPT"
	}
	b.WriteString(center(header, w) + "\n")
	b.WriteString(rule(w) + "\n")

	switch kind {
	case KindKitchen:
		b.WriteString(center("KITCHEN ORDER", w) + "\n")
	case KindCancel:
		b.WriteString(center("*** CANCELLED ***", w) + "\n")
	}

	b.WriteString(padRight(fmt.Sprintf("Order %d", inv.Num1), w) + "\n")
	if inv.Reprint {
		b.WriteString(padRight("(reprint)", w) + "\n")
	}
	b.WriteString(padRight(inv.Date.Format("2006-01-02 15:04"), w) + "\n")
	if inv.TableNumber != "" {
		b.WriteString(padRight("Table "+inv.TableNumber, w) + "\n")
	}
	b.WriteString(rule(w) + "\n")

	qtyW := 6
	nameW := w - qtyW - 2
	b.WriteString(padLeft("QTY", qtyW) + "  " + padRight("ITEM", nameW) + "\n")
	b.WriteString(rule(w) + "\n")
	for _, line := range lines {
		name := line.ItemName
		if name == "" {
			name = line.ItemNo
		}
		b.WriteString(padLeft(trimQty(line.Qty), qtyW) + "  " + padRight(name, nameW) + "\n")
		if kind != KindBill && line.Notice != "" {
			b.WriteString(padLeft("", qtyW) + "  " + padRight("> "+line.Notice, nameW) + "\n")
		}
	}
	b.WriteString(rule(w) + "\n")

	// Prices only appear on the customer bill.
	if kind == KindBill {
		for _, line := range lines {
			amount := fmt.Sprintf("%.2f x %s = %.2f", line.Price, trimQty(line.Qty), line.LineTotal)
			b.WriteString(padLeft(amount, w) + "\n")
		}
		b.WriteString(rule(w) + "\n")
		b.WriteString(padLeft(fmt.Sprintf("TOTAL %.2f", pos.Total(lines)), w) + "\n")
	}

	if inv.Note != "" {
		b.WriteString(padRight("Note: "+inv.Note, w) + "\n")
	}

	return Document{
		JobID:   NewJobID(inv.InvSeq),
		Kind:    kind,
		Content: b.String(),
	}, nil
}

func trimQty(qty float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", qty), "0"), ".")
}

func padRight(s string, w int) string {
	runes := []rune(s)
	if len(runes) >= w {
		return string(runes[:w])
	}
	return s + strings.Repeat(" ", w-len(runes))
}

func padLeft(s string, w int) string {
	runes := []rune(s)
	if len(runes) >= w {
		return string(runes[len(runes)-w:])
	}
	return strings.Repeat(" ", w-len(runes)) + s
}

func center(s string, w int) string {
	runes := []rune(s)
	if len(runes) >= w {
		return string(runes[:w])
	}
	left := (w - len(runes)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(runes)-left)
}

func rule(w int) string {
	return strings.Repeat("-", w)
}
