package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/procuredocs/extractor/constants"
)

// PDFExtractor pulls the text layer and any detected tables out of a PDF.
// Pages are processed independently: a page may yield text but no tables, or
// neither, without failing the document.
type PDFExtractor struct {
	minTextChars int
	logger       *slog.Logger
}

func NewPDFExtractor(minTextChars int, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if minTextChars <= 0 {
		minTextChars = constants.MinTextChars
	}
	return &PDFExtractor{minTextChars: minTextChars, logger: logger}
}

// Extract concatenates page texts with a newline separator and collects all
// tables across pages in page order. Success requires the trimmed text to
// exceed the minimum character threshold.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}
	defer func(f *os.File) {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("close pdf", "path", path, "error", cerr)
		}
	}(f)

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return Result{}, fmt.Errorf("read pdf: %w", err)
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return Result{}, fmt.Errorf("page count: %w", err)
	}

	var (
		pageTexts []string
		tables    [][][]string
		warnings  []string
	)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		page, err := reader.GetPage(i)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		pageText, _, _, err := ex.ExtractPageText()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		if txt := pageText.Text(); txt != "" {
			pageTexts = append(pageTexts, txt)
		}
		for _, tbl := range pageText.Tables() {
			rows := make([][]string, 0, len(tbl.Cells))
			for _, row := range tbl.Cells {
				cells := make([]string, 0, len(row))
				for _, cell := range row {
					cells = append(cells, strings.TrimSpace(cell.Text))
				}
				rows = append(rows, cells)
			}
			tables = append(tables, rows)
		}
	}

	res := Result{
		Text:     strings.Join(pageTexts, "\n"),
		Tables:   tables,
		Pages:    numPages,
		Warnings: warnings,
	}
	res.Success = len(strings.TrimSpace(res.Text)) > e.minTextChars
	e.logger.Debug("pdf extraction done",
		"path", path,
		"pages", numPages,
		"tables", len(tables),
		"chars", len(res.Text),
		"success", res.Success,
	)
	return res, nil
}
