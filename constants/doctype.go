package constants

// DocType classifies a procurement document by its textual content.
type DocType string

const (
	DocTypePQForm           DocType = "PQ_FORM"
	DocTypeImpairmentForm   DocType = "IMPAIRMENT_FORM"
	DocTypeInvoice          DocType = "INVOICE"
	DocTypePurchaseOrder    DocType = "PURCHASE_ORDER"
	DocTypeDeliveryNote     DocType = "DELIVERY_NOTE"
	DocTypeVendorOnboarding DocType = "VENDOR_ONBOARDING"
	DocTypeUnknown          DocType = "UNKNOWN"
)

var allDocTypes = []DocType{
	DocTypePQForm,
	DocTypeImpairmentForm,
	DocTypeInvoice,
	DocTypePurchaseOrder,
	DocTypeDeliveryNote,
	DocTypeVendorOnboarding,
	DocTypeUnknown,
}

// DocTypeStrings returns every classification the detector can emit.
func DocTypeStrings() []string {
	out := make([]string, 0, len(allDocTypes))
	for _, t := range allDocTypes {
		out = append(out, string(t))
	}
	return out
}
