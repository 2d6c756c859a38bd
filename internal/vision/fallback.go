package vision

import (
	"context"
	"log/slog"

	"github.com/procuredocs/extractor/internal/common"
	"github.com/procuredocs/extractor/internal/extract"
)

// Extractor is the image-based fallback path: rasterize page 1, clean it up,
// and let the document model read it. It never surfaces an error: every
// failure is logged and reported as a failed extraction so the rest of the
// pipeline can keep going. Tables are never produced on this path.
type Extractor struct {
	client   *Client
	runner   Runner
	pdftoppm string
	dpi      int
	logger   *slog.Logger
}

// NewExtractor builds the fallback extractor. A nil client means the vision
// capability is not configured; Extract then reports failure without erroring.
func NewExtractor(client *Client, cfg common.VisionConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	pdftoppm := cfg.Pdftoppm
	if pdftoppm == "" {
		pdftoppm = "pdftoppm"
	}
	return &Extractor{
		client:   client,
		runner:   execRunner{},
		pdftoppm: pdftoppm,
		dpi:      cfg.DPI,
		logger:   logger,
	}
}

// Available reports whether the vision capability is configured.
func (e *Extractor) Available() bool { return e.client != nil }

func (e *Extractor) Extract(ctx context.Context, path string) (extract.Result, error) {
	if e.client == nil {
		e.logger.Warn("vision fallback not configured; skipping", "path", path)
		return extract.Result{}, nil
	}

	img, cleanup, err := rasterizeFirstPage(ctx, e.runner, e.pdftoppm, path, e.dpi)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		e.logger.Error("vision.raster.failed", "path", path, "error", err)
		return extract.Result{}, nil
	}

	if prepped, perr := prepareImage(img); perr == nil {
		img = prepped
	} else {
		// inference still works on the raw raster
		e.logger.Warn("vision.prepare.failed", "path", path, "error", perr)
	}

	seq, err := e.client.Generate(ctx, img)
	if err != nil {
		e.logger.Error("vision.generate.failed", "path", path, "error", err)
		return extract.Result{}, nil
	}

	return extract.Result{Text: seq, Pages: 1, Success: true}, nil
}
