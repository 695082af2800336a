// Package printing is the boundary between the invoice core and physical
// output devices. The core hands over a resolved invoice with its lines; the
// pipeline renders documents and dispatches them to named printers as a
// sequence of independently-failable steps. Overall request success is
// defined by the state transition committing, never by every step printing.
package printing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/CampCoding/elmezan-backend/internal/pos"
)

type DocumentKind string

const (
	KindKitchen DocumentKind = "kitchen"
	KindBill    DocumentKind = "bill"
	KindCancel  DocumentKind = "cancel"
)

// Document is a rendered, ready-to-dispatch payload.
type Document struct {
	JobID    string
	Kind     DocumentKind
	Category string
	Content  string
}

// InvoiceView is the slice of invoice state a renderer needs.
type InvoiceView struct {
	InvSeq      uint
	Num1        int
	TableNumber string
	Date        time.Time
	Note        string
	Reprint     bool
}

type Renderer interface {
	Render(kind DocumentKind, inv InvoiceView, lines []pos.LineDetail) (Document, error)
}

type DispatchResult struct {
	OK      bool
	Method  string
	Printer string
	Error   string
}

// Dispatcher sends a rendered document to a named output device. An empty
// printer name means the default device.
type Dispatcher interface {
	Dispatch(ctx context.Context, doc Document, printer string) DispatchResult
}

// StepResult is the outcome of one pipeline step.
type StepResult struct {
	Step     string `json:"step"`
	Category string `json:"category,omitempty"`
	Printed  bool   `json:"printed"`
	Printer  string `json:"printer,omitempty"`
	Method   string `json:"method,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Pipeline routes kitchen tickets per item category and the full document to
// the cash printer. Printer names come from configuration; OS-level
// discovery stays outside this package.
type Pipeline struct {
	Renderer    Renderer
	Dispatcher  Dispatcher
	Printers    []string
	CashPrinter string
	Timeout     time.Duration
}

const defaultDispatchTimeout = 15 * time.Second

func (p *Pipeline) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return defaultDispatchTimeout
}

func (p *Pipeline) dispatch(ctx context.Context, doc Document, printer string) DispatchResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()
	res := p.Dispatcher.Dispatch(ctx, doc, printer)
	if ctx.Err() != nil && res.Error == "" {
		res.OK = false
		res.Error = ctx.Err().Error()
	}
	return res
}

// Run executes the print flow for one invoice. Kitchen prints fan out one
// ticket per category to the printer whose name matches the category;
// categories without a matching printer are skipped and reported. The full
// document always goes to the cash printer (or the explicit override).
// Every failure is captured in its step result; nothing aborts the rest.
func (p *Pipeline) Run(ctx context.Context, kind DocumentKind, inv InvoiceView, lines []pos.LineDetail, printerOverride string) []StepResult {
	var steps []StepResult

	if kind == KindKitchen {
		byName := printersByNormalizedName(p.Printers)
		for _, category := range categories(lines) {
			printer, ok := byName[NormalizeName(category)]
			if !ok {
				steps = append(steps, StepResult{
					Step:     "kitchen-ticket",
					Category: category,
					Printed:  false,
					Error:    "no matching printer by name",
				})
				continue
			}
			doc, err := p.Renderer.Render(KindKitchen, inv, linesOfCategory(lines, category))
			if err != nil {
				steps = append(steps, StepResult{Step: "kitchen-ticket", Category: category, Error: err.Error()})
				continue
			}
			doc.Category = category
			res := p.dispatch(ctx, doc, printer)
			steps = append(steps, StepResult{
				Step:     "kitchen-ticket",
				Category: category,
				Printed:  res.OK,
				Printer:  res.Printer,
				Method:   res.Method,
				Error:    res.Error,
			})
		}
	}

	doc, err := p.Renderer.Render(kind, inv, lines)
	if err != nil {
		return append(steps, StepResult{Step: "full-document", Error: err.Error()})
	}
	printer := printerOverride
	if printer == "" {
		printer = p.CashPrinter
	}
	res := p.dispatch(ctx, doc, printer)
	return append(steps, StepResult{
		Step:    "full-document",
		Printed: res.OK,
		Printer: res.Printer,
		Method:  res.Method,
		Error:   res.Error,
	})
}

// RunCancel prints a single-line deletion notice to the line's category
// printer, best-effort.
func (p *Pipeline) RunCancel(ctx context.Context, inv InvoiceView, line pos.LineDetail) StepResult {
	byName := printersByNormalizedName(p.Printers)
	printer, ok := byName[NormalizeName(line.Category)]
	if !ok {
		return StepResult{Step: "cancel-notice", Category: line.Category, Error: "no matching printer by name"}
	}
	doc, err := p.Renderer.Render(KindCancel, inv, []pos.LineDetail{line})
	if err != nil {
		return StepResult{Step: "cancel-notice", Category: line.Category, Error: err.Error()}
	}
	doc.Category = line.Category
	res := p.dispatch(ctx, doc, printer)
	return StepResult{
		Step:     "cancel-notice",
		Category: line.Category,
		Printed:  res.OK,
		Printer:  res.Printer,
		Method:   res.Method,
		Error:    res.Error,
	}
}

func categories(lines []pos.LineDetail) []string {
	var order []string
	seen := map[string]bool{}
	for _, line := range lines {
		category := line.Category
		if category == "" {
			category = "uncategorized"
		}
		if !seen[category] {
			seen[category] = true
			order = append(order, category)
		}
	}
	return order
}

func linesOfCategory(lines []pos.LineDetail, category string) []pos.LineDetail {
	var out []pos.LineDetail
	for _, line := range lines {
		c := line.Category
		if c == "" {
			c = "uncategorized"
		}
		if c == category {
			out = append(out, line)
		}
	}
	return out
}

func printersByNormalizedName(printers []string) map[string]string {
	byName := make(map[string]string, len(printers))
	for _, printer := range printers {
		byName[NormalizeName(printer)] = printer
	}
	return byName
}

var nameFolder = cases.Fold()

// NormalizeName prepares a printer or category name for matching: NFC
// normalization, removal of bidi control characters (printer names copied
// from RTL UIs often carry them), case folding and trimming.
func NormalizeName(name string) string {
	normalized := norm.NFC.String(name)
	normalized = strings.Map(func(r rune) rune {
		switch {
		case r == '\u200E' || r == '\u200F': // LRM, RLM
			return -1
		case r >= '\u202A' && r <= '\u202E': // embedding/override controls
			return -1
		case r >= '\u2066' && r <= '\u2069': // isolate controls
			return -1
		}
		return r
	}, normalized)
	return strings.TrimSpace(nameFolder.String(normalized))
}

// NewJobID tags a rendered document for log correlation.
func NewJobID(invSeq uint) string {
	return fmt.Sprintf("inv%d-%s", invSeq, uuid.New().String())
}
