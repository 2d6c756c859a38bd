// Package fields extracts and normalizes the named procurement fields out of
// raw document text and tables.
package fields

import (
	"regexp"
	"strings"
)

// Ordered pattern lists per field. The first pattern with a match wins and
// its first capture group, trimmed, becomes the raw value.
var (
	VendorPatterns = compile(
		`vendor[:\s]+([^\n]+)`,
		`supplier[:\s]+([^\n]+)`,
		`company[:\s]+([^\n]+)`,
		`buyer[:\s]+([^\n]+)`,
		`^([A-Z][A-Za-z\s]+(?:Inc|Corp|LLC|Ltd|Limited|Co|Corporation|Solutions|Technologies|Enterprises)\.?)`,
	)
	InvoiceNumberPatterns = compile(
		`invoice\s*(?:number|no|#)[:\s]+([^\n\s]+)`,
		`inv[:\s]+([^\n\s]+)`,
	)
	PONumberPatterns = compile(
		`PO\s+Ref:\s*([A-Z0-9\-]+)`,
		`P\.?O\.?\s*Ref:\s*([A-Z0-9\-]+)`,
		`(?:Purchase Order|PO|P\.O\.)\s*(?:Number|No|#|:)\s*[:]?\s*([A-Z0-9\-]+)`,
		`(?:po|p\.o\.)\s*ref:\s*([^\n\s]+)`,
	)
	TaxIDPatterns = compile(
		`(?:tax|gst|vat)\s*(?:id|number|no)?[:\s]+([^\n\s]+)`,
		`gstin[:\s]+([^\n\s]+)`,
	)
	DatePatterns = compile(
		`(?:invoice\s*)?date[:\s]+([^\n]+)`,
		`dated?[:\s]+([^\n]+)`,
	)
	TotalPatterns = compile(
		`total[:\s]+[^\d]*?([\d,\.]+)`,
		`grand\s+total[:\s]+[^\d]*?([\d,\.]+)`,
		`amount[:\s]+[^\d]*?([\d,\.]+)`,
	)
)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// First returns the trimmed first capture group of the first pattern that
// matches, or nil when nothing does. Absence is not an error.
func First(text string, patterns []*regexp.Regexp) *string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			v := strings.TrimSpace(m[1])
			return &v
		}
	}
	return nil
}

func ptr(s string) *string { return &s }
