package constants

// Placeholder is the literal string emitted for absent values in the output
// document. Consumers expect "null" strings, not JSON null.
const Placeholder = "null"

// Stable method labels carried in the method_used field of the output document.
const (
	MethodPDFText = "pdfplumber"
	MethodVision  = "donut"
)

// RawTextLimit caps the raw_text field of the output document, in runes.
const RawTextLimit = 1000

// MinTextChars is the default minimum trimmed text length for the text-layer
// extraction path to count as a success.
const MinTextChars = 20
