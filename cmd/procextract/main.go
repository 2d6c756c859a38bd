package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/unidoc/unipdf/v3/common/license"

	"github.com/procuredocs/extractor/internal/common"
	"github.com/procuredocs/extractor/internal/extract"
	"github.com/procuredocs/extractor/internal/pipeline"
	"github.com/procuredocs/extractor/internal/record"
	"github.com/procuredocs/extractor/internal/vision"
)

func main() {
	cfg := common.LoadConfig()

	// stdout carries the output document; diagnostics go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: procextract <path-to-pdf>")
		os.Exit(1)
	}
	path := os.Args[1]

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Extract.LicenseKey != "" {
		if err := license.SetMeteredKey(cfg.Extract.LicenseKey); err != nil {
			logger.Warn("unipdf license", "error", err)
		}
	}

	ctx := context.Background()

	textx := extract.NewPDFExtractor(cfg.Extract.MinTextChars, logger)

	var client *vision.Client
	if cfg.Vision.Endpoint != "" {
		client = vision.NewClient(vision.ClientConfig{
			Endpoint:  cfg.Vision.Endpoint,
			Timeout:   cfg.Vision.Timeout,
			MaxLength: cfg.Vision.MaxLength,
		}, logger)
	} else {
		logger.Warn("vision endpoint not configured; fallback extraction disabled")
	}
	visx := vision.NewExtractor(client, cfg.Vision, logger)

	proc := pipeline.NewProcessor(logger, textx, visx)
	x := proc.Process(ctx, path)

	out, err := record.Marshal(x.Document())
	if err != nil {
		logger.Error("encode document", "error", err)
		os.Exit(1)
	}
	if err := record.ValidateAgainstSchema(record.BuildDocumentSchema(), out); err != nil {
		logger.Warn("document failed schema validation", "error", err)
	}
	fmt.Println(string(out))
}
