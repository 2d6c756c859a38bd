package extract

import "context"

// Result is the outcome of one extraction attempt over a single document.
// Tables are row-major: Tables[t][r][c]. A Result lives for the duration of
// one pipeline pass and is then discarded.
type Result struct {
	Text     string
	Tables   [][][]string
	Pages    int
	Success  bool
	Warnings []string
}

// TextExtractor is stage 1: document path -> raw text, plus tables when the
// backend can see them.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (Result, error)
}
