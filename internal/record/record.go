// Package record holds the internal extraction model and its serialized form.
package record

import (
	"github.com/procuredocs/extractor/constants"
	"github.com/procuredocs/extractor/internal/fields"
)

// Extraction is the internal, properly-optional model of one processed
// document. Absent values stay nil here; the placeholder substitution happens
// only at serialization.
type Extraction struct {
	DocumentType      constants.DocType
	VendorName        *string
	VendorAddress     *string
	TaxID             *string
	InvoiceNumber     *string
	PONumber          *string
	InvoiceDate       *string
	DeliveryDate      *string
	TotalAmount       *string
	Currency          *string
	Turnover          []fields.TurnoverEntry
	BudgetRequirement *string
	Eligibility       *fields.EligibilityResult
	LineItems         []fields.LineItem
	RawText           string
	MethodUsed        string
}
