package fields

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		patterns []*regexp.Regexp
		want     string // "" means absent
	}{
		{name: "vendor label", text: "Vendor: Acme Corp\nTotal: 100", patterns: VendorPatterns, want: "Acme Corp"},
		{name: "supplier label", text: "Supplier: Beta Ltd\n", patterns: VendorPatterns, want: "Beta Ltd"},
		{name: "invoice number", text: "Invoice Number: INV-2024-001\n", patterns: InvoiceNumberPatterns, want: "INV-2024-001"},
		{name: "invoice hash", text: "INVOICE #: 7781\n", patterns: InvoiceNumberPatterns, want: "7781"},
		{name: "po ref", text: "PO Ref: PO-778\n", patterns: PONumberPatterns, want: "PO-778"},
		{name: "purchase order number", text: "Purchase Order Number: 4500012345\n", patterns: PONumberPatterns, want: "4500012345"},
		{name: "tax id", text: "Tax ID: AB-123456\n", patterns: TaxIDPatterns, want: "AB-123456"},
		{name: "gstin", text: "GSTIN: 22AAAAA0000A1Z5\n", patterns: TaxIDPatterns, want: "22AAAAA0000A1Z5"},
		{name: "date label", text: "Invoice Date: 15/01/2024\n", patterns: DatePatterns, want: "15/01/2024"},
		{name: "total", text: "Total: $45,230.50\n", patterns: TotalPatterns, want: "45,230.50"},
		{name: "no match", text: "nothing here", patterns: InvoiceNumberPatterns, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := First(tt.text, tt.patterns)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestFirstPatternOrderWins(t *testing.T) {
	// "vendor" is an earlier pattern than "supplier", so it wins even when
	// the supplier line comes first in the text
	text := "Supplier: Beta Ltd\nVendor: Acme Corp\n"
	got := First(text, VendorPatterns)
	require.NotNil(t, got)
	assert.Equal(t, "Acme Corp", *got)
}
