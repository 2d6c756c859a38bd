package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/unidoc/unipdf/v3/common/license"

	"github.com/procuredocs/extractor/constants"
	"github.com/procuredocs/extractor/internal/common"
	"github.com/procuredocs/extractor/internal/export"
	"github.com/procuredocs/extractor/internal/extract"
	"github.com/procuredocs/extractor/internal/ingest"
	"github.com/procuredocs/extractor/internal/pipeline"
	"github.com/procuredocs/extractor/internal/record"
	"github.com/procuredocs/extractor/internal/repository"
	"github.com/procuredocs/extractor/internal/vision"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir = flag.String("dir", "", "directory to process PDFs from (required)")
		out = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		db  = flag.String("db", "", "sqlite job-history path (optional, defaults to in-memory)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "extractions.xlsx")
	}

	cfg := common.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

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

	dsn := cfg.Store.DSN
	if *db != "" {
		dsn = *db
	}
	jobsRepo, err := repository.Open(dsn, logger)
	if err != nil {
		logger.Error("open job store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := jobsRepo.Close(); cerr != nil {
			logger.Error("close job store", "error", cerr)
		}
	}()

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

	pdfs, stats, err := ingest.ScanDirectory(*dir, nil, true)
	if err != nil {
		logger.Error("scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("starting batch", "dir", *dir, "files", len(pdfs), "scanned", stats.Scanned)

	var (
		rows     []export.Row
		failures int
	)
	for _, path := range pdfs {
		logger.Info("processing file", "path", path)

		job, err := jobsRepo.Start(ctx, path)
		if err != nil {
			logger.Error("start job", "path", path, "error", err)
			failures++
			continue
		}

		x := proc.Process(ctx, path)
		doc := x.Document()

		outJSON, err := record.Marshal(doc)
		if err == nil {
			err = record.ValidateAgainstSchema(record.BuildDocumentSchema(), outJSON)
		}
		if err != nil {
			logger.Error("assemble document", "path", path, "error", err)
			if ferr := jobsRepo.FinishFailure(ctx, job.ID, err.Error()); ferr != nil {
				logger.Error("finish job", "job_id", job.ID, "error", ferr)
			}
			rows = append(rows, export.Row{
				SourcePath: path,
				Status:     string(constants.JobStatusFailed),
				Error:      err.Error(),
			})
			failures++
			continue
		}

		if err := jobsRepo.FinishSuccess(ctx, job.ID, string(x.DocumentType), x.MethodUsed, outJSON); err != nil {
			logger.Error("finish job", "job_id", job.ID, "error", err)
		}
		rows = append(rows, export.Row{
			SourcePath:    path,
			Status:        string(constants.JobStatusSucceeded),
			DocumentType:  string(x.DocumentType),
			VendorName:    deref(x.VendorName),
			InvoiceNumber: deref(x.InvoiceNumber),
			InvoiceDate:   deref(x.InvoiceDate),
			TotalAmount:   deref(x.TotalAmount),
			Currency:      deref(x.Currency),
			Method:        x.MethodUsed,
		})
	}

	logger.Info("exporting to XLSX", "output", *out)
	xlsxBytes, err := export.NewService(logger).BuildXLSX(rows)
	if err != nil {
		logger.Error("build export", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch complete",
		"files", len(pdfs),
		"processed", len(pdfs)-failures,
		"failures", failures,
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files found: %d\n", len(pdfs))
	fmt.Printf("- Processed: %d\n", len(pdfs)-failures)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", *out)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
