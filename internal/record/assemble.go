package record

import (
	"bytes"
	"encoding/json"

	"github.com/procuredocs/extractor/constants"
)

// Document flattens the extraction into its serializable shape, with every
// absent value already replaced by the placeholder, recursively including the
// nested line-item and turnover records.
func (x *Extraction) Document() map[string]any {
	items := make([]any, 0, len(x.LineItems))
	for _, it := range x.LineItems {
		items = append(items, map[string]any{
			"description": it.Description,
			"quantity":    it.Quantity,
			"unit_price":  it.UnitPrice,
			"amount":      it.Amount,
		})
	}

	turnover := make([]any, 0, len(x.Turnover))
	for _, t := range x.Turnover {
		turnover = append(turnover, map[string]any{
			"year":   t.Year,
			"amount": t.Amount,
		})
	}

	// Empty object for documents the eligibility rule does not apply to.
	eligibility := map[string]any{}
	if x.Eligibility != nil {
		eligibility["is_eligible"] = x.Eligibility.IsEligible
		eligibility["reason"] = x.Eligibility.Reason
	}

	doc := map[string]any{
		"document_type":         string(x.DocumentType),
		"vendor_name":           x.VendorName,
		"vendor_address":        x.VendorAddress,
		"tax_id":                x.TaxID,
		"invoice_number":        x.InvoiceNumber,
		"po_number":             x.PONumber,
		"invoice_date":          x.InvoiceDate,
		"delivery_date":         x.DeliveryDate,
		"total_amount":          x.TotalAmount,
		"currency":              x.Currency,
		"turnover_last_3_years": turnover,
		"budget_requirement":    x.BudgetRequirement,
		"eligibility_check":     eligibility,
		"line_items":            items,
		"raw_text":              x.RawText,
		"method_used":           x.MethodUsed,
	}
	return Scrub(doc).(map[string]any)
}

// Scrub walks mappings, sequences and scalars, replacing every absent value
// with the literal placeholder. Typed nil pointers count as absent.
func Scrub(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Scrub(val)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			out = append(out, Scrub(val))
		}
		return out
	case *string:
		if t == nil {
			return constants.Placeholder
		}
		return *t
	case *bool:
		if t == nil {
			return constants.Placeholder
		}
		return *t
	case nil:
		return constants.Placeholder
	default:
		return v
	}
}

// Marshal renders the document as UTF-8 JSON with 2-space indentation.
func Marshal(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
