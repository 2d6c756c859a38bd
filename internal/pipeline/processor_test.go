package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procuredocs/extractor/constants"
	"github.com/procuredocs/extractor/internal/extract"
)

type stubExtractor struct {
	res   extract.Result
	err   error
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (extract.Result, error) {
	s.calls++
	return s.res, s.err
}

func TestProcessInvoiceTextPath(t *testing.T) {
	text := "TAX INVOICE\nVendor: Acme Corp\nInvoice Number: INV-2024-001\nInvoice Date: 15/01/2024\nTotal: $45,230.50\n"
	primary := &stubExtractor{res: extract.Result{Text: text, Pages: 1, Success: true}}
	fallback := &stubExtractor{}

	p := NewProcessor(nil, primary, fallback)
	x := p.Process(context.Background(), "invoice.pdf")

	assert.Equal(t, constants.DocTypeInvoice, x.DocumentType)
	require.NotNil(t, x.VendorName)
	assert.Equal(t, "Acme Corp", *x.VendorName)
	require.NotNil(t, x.InvoiceNumber)
	assert.Equal(t, "INV-2024-001", *x.InvoiceNumber)
	require.NotNil(t, x.InvoiceDate)
	assert.Equal(t, "2024-01-15", *x.InvoiceDate)
	require.NotNil(t, x.TotalAmount)
	assert.Equal(t, "45230.5", *x.TotalAmount)
	require.NotNil(t, x.Currency)
	assert.Equal(t, "USD", *x.Currency)
	assert.Equal(t, constants.MethodPDFText, x.MethodUsed)

	// no eligibility for invoices, and the fallback never ran
	assert.Nil(t, x.Eligibility)
	assert.Empty(t, x.Turnover)
	assert.Zero(t, fallback.calls)
}

func TestProcessFallsBackToVision(t *testing.T) {
	primary := &stubExtractor{res: extract.Result{Text: "  \n ", Success: false}}
	fallback := &stubExtractor{res: extract.Result{Text: "Invoice Number: 7781", Pages: 1, Success: true}}

	p := NewProcessor(nil, primary, fallback)
	x := p.Process(context.Background(), "scan.pdf")

	assert.Equal(t, constants.MethodVision, x.MethodUsed)
	assert.Equal(t, constants.DocTypeInvoice, x.DocumentType)
	require.NotNil(t, x.InvoiceNumber)
	assert.Equal(t, "7781", *x.InvoiceNumber)
	assert.Equal(t, 1, fallback.calls)
}

func TestProcessBothPathsFail(t *testing.T) {
	primary := &stubExtractor{err: errors.New("unreadable")}
	fallback := &stubExtractor{err: errors.New("model offline")}

	p := NewProcessor(nil, primary, fallback)
	x := p.Process(context.Background(), "broken.pdf")

	// worst case is a record of absent fields, never a panic or error
	assert.Equal(t, constants.DocTypeUnknown, x.DocumentType)
	assert.Equal(t, constants.MethodVision, x.MethodUsed)
	assert.Nil(t, x.VendorName)
	assert.Equal(t, "", x.RawText)
	assert.Empty(t, x.LineItems)
}

func TestProcessPQFormTurnoverAndEligibility(t *testing.T) {
	text := "Pre-Qualification Form\nAnnual Turnover\n2021: 400,000\n2022: 500,000\n2023: 600,000\n"
	primary := &stubExtractor{res: extract.Result{Text: text, Pages: 1, Success: true}}

	p := NewProcessor(nil, primary, &stubExtractor{})
	x := p.Process(context.Background(), "pq.pdf")

	assert.Equal(t, constants.DocTypePQForm, x.DocumentType)
	require.Len(t, x.Turnover, 3)
	require.NotNil(t, x.Eligibility)
	require.NotNil(t, x.Eligibility.IsEligible)
	assert.True(t, *x.Eligibility.IsEligible)
	assert.Equal(t, "Meets minimum turnover requirement", x.Eligibility.Reason)
}

func TestProcessLineItemsFromTables(t *testing.T) {
	res := extract.Result{
		Text:    "TAX INVOICE with items",
		Success: true,
		Tables: [][][]string{
			{
				{"Description", "Qty", "Unit Price", "Amount"},
				{"Widget", "10", "5.00", "50.00"},
			},
		},
	}
	p := NewProcessor(nil, &stubExtractor{res: res}, &stubExtractor{})
	x := p.Process(context.Background(), "items.pdf")

	require.Len(t, x.LineItems, 1)
	assert.Equal(t, "Widget", *x.LineItems[0].Description)
	assert.Equal(t, "50", *x.LineItems[0].Amount)
}

func TestProcessVisionPathDropsTables(t *testing.T) {
	primary := &stubExtractor{res: extract.Result{Success: false}}
	fallback := &stubExtractor{res: extract.Result{
		Text:    "TAX INVOICE",
		Success: true,
		Tables: [][][]string{
			{{"h1", "h2", "h3"}, {"a", "1", "2"}},
		},
	}}
	p := NewProcessor(nil, primary, fallback)
	x := p.Process(context.Background(), "scan.pdf")

	assert.Empty(t, x.LineItems)
	assert.Equal(t, constants.MethodVision, x.MethodUsed)
}

func TestProcessTruncatesRawText(t *testing.T) {
	long := "TAX INVOICE " + strings.Repeat("è", constants.RawTextLimit*2)
	primary := &stubExtractor{res: extract.Result{Text: long, Success: true}}

	p := NewProcessor(nil, primary, &stubExtractor{})
	x := p.Process(context.Background(), "long.pdf")

	assert.Equal(t, constants.RawTextLimit, len([]rune(x.RawText)))
	assert.Equal(t, []rune(long)[:constants.RawTextLimit], []rune(x.RawText))
}
