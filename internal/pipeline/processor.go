// Package pipeline coordinates the hybrid extraction flow: text layer first,
// vision fallback when that comes up short, then classification, field
// extraction and assembly.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/procuredocs/extractor/constants"
	"github.com/procuredocs/extractor/internal/classify"
	"github.com/procuredocs/extractor/internal/extract"
	"github.com/procuredocs/extractor/internal/fields"
	"github.com/procuredocs/extractor/internal/record"
)

// Processor routes a document through the primary and fallback extraction
// paths and the downstream field pipeline. It holds no per-document state and
// is reusable sequentially.
type Processor struct {
	logger *slog.Logger
	text   extract.TextExtractor
	vision extract.TextExtractor
}

func NewProcessor(logger *slog.Logger, text, vision extract.TextExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, text: text, vision: vision}
}

// Process runs the full pipeline for one document. Stage failures are
// absorbed: the worst case is a record of placeholders, never an error.
func (p *Processor) Process(ctx context.Context, path string) record.Extraction {
	res, err := p.text.Extract(ctx, path)
	if err != nil {
		p.logger.Error("text extraction failed", "path", path, "error", err)
		res = extract.Result{}
	}

	method := constants.MethodPDFText
	if !res.Success {
		p.logger.Warn("text layer insufficient; falling back to vision model",
			"path", path, "chars", len(strings.TrimSpace(res.Text)))
		vres, verr := p.vision.Extract(ctx, path)
		if verr != nil {
			p.logger.Error("vision extraction failed", "path", path, "error", verr)
			vres = extract.Result{}
		}
		// the vision path never yields tables
		res = extract.Result{Text: vres.Text, Success: vres.Success}
		method = constants.MethodVision
	}

	rawText := res.Text
	docType := classify.Detect(rawText)

	x := record.Extraction{
		DocumentType:  docType,
		VendorName:    fields.First(rawText, fields.VendorPatterns),
		TaxID:         fields.First(rawText, fields.TaxIDPatterns),
		InvoiceNumber: fields.First(rawText, fields.InvoiceNumberPatterns),
		PONumber:      fields.First(rawText, fields.PONumberPatterns),
		InvoiceDate:   fields.NormalizeDate(fields.First(rawText, fields.DatePatterns)),
		TotalAmount:   fields.NormalizeCurrency(fields.First(rawText, fields.TotalPatterns)),
		Currency:      fields.DetectCurrency(rawText),
		Turnover:      []fields.TurnoverEntry{},
		LineItems:     fields.LineItems(res.Tables),
		RawText:       truncateRunes(rawText, constants.RawTextLimit),
		MethodUsed:    method,
	}

	if docType == constants.DocTypePQForm {
		x.Turnover = fields.Turnover(rawText)
		elig := fields.CheckEligibility(x.Turnover)
		x.Eligibility = &elig
	}

	p.logger.Info("document processed",
		"path", path,
		"method", method,
		"document_type", string(docType),
		"line_items", len(x.LineItems),
		"turnover_entries", len(x.Turnover),
	)
	return x
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
