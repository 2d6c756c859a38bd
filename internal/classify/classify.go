// Package classify maps raw document text onto a fixed set of procurement
// document types via ordered keyword rules.
package classify

import (
	"strings"

	"github.com/procuredocs/extractor/constants"
)

// Keyword groups, checked in order; the first group with a hit wins.
var rules = []struct {
	docType constants.DocType
	terms   []string
}{
	{constants.DocTypePQForm, []string{"pre-qualification", "prequalification", "pq form", "turnover"}},
	{constants.DocTypeImpairmentForm, []string{"impairment", "asset impairment"}},
	{constants.DocTypeInvoice, []string{"invoice"}},
	{constants.DocTypePurchaseOrder, []string{"purchase order", "p.o.", "po number"}},
	{constants.DocTypeDeliveryNote, []string{"delivery note", "delivery report", "goods received"}},
	{constants.DocTypeVendorOnboarding, []string{"vendor", "supplier", "onboarding"}},
}

// Detect classifies a document by its textual content. Rule order is part of
// the contract: a pre-qualification form that also mentions an invoice still
// classifies as PQ_FORM.
func Detect(text string) constants.DocType {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, term := range r.terms {
			if strings.Contains(lower, term) {
				return r.docType
			}
		}
	}
	return constants.DocTypeUnknown
}
