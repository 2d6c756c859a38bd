package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientConfig holds the inference-service connection settings.
type ClientConfig struct {
	Endpoint  string
	Timeout   time.Duration
	MaxLength int
}

// modelInfo mirrors the /model endpoint of the inference service: the model
// name plus the tokenizer identifiers needed to build a generation request
// and clean its output.
type modelInfo struct {
	Name       string `json:"name"`
	EOSToken   string `json:"eos_token"`
	PadToken   string `json:"pad_token"`
	UnkTokenID int    `json:"unk_token_id"`
}

// Client talks to a document-understanding inference service. Model metadata
// is fetched once on first use and cached for the client's lifetime; reuse is
// sequential only.
type Client struct {
	cfg    ClientConfig
	client *http.Client
	logger *slog.Logger

	// model stays nil until the first successful probe.
	model *modelInfo
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 512
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (c *Client) loadModel(ctx context.Context) (*modelInfo, error) {
	if c.model != nil {
		return c.model, nil
	}
	c.logger.Info("vision.model.load", "endpoint", c.cfg.Endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/model"), nil)
	if err != nil {
		return nil, fmt.Errorf("build model request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe model: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("vision.model.body_close_error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("probe model: non-2xx status: %d", resp.StatusCode)
	}
	var info modelInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode model info: %w", err)
	}
	c.model = &info
	c.logger.Info("vision.model.ready", "model", info.Name)
	return c.model, nil
}

// Generate runs one rasterized page through the model and returns the decoded
// sequence with end-of-sequence and padding markers removed. Decoding is
// greedy (beam width 1) with early stopping, bounded output length, and the
// unknown token suppressed.
func (c *Client) Generate(ctx context.Context, imagePath string) (string, error) {
	info, err := c.loadModel(ctx)
	if err != nil {
		return "", fmt.Errorf("load model: %w", err)
	}

	img, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read raster: %w", err)
	}

	rid := uuid.New().String()
	start := time.Now()

	body := map[string]any{
		"image":          base64.StdEncoding.EncodeToString(img),
		"max_length":     c.cfg.MaxLength,
		"num_beams":      1,
		"early_stopping": true,
		"bad_words_ids":  [][]int{{info.UnkTokenID}},
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/generate"), bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("vision.generate.request",
		"req_id", rid,
		"model", info.Name,
		"image_bytes", len(img),
		"max_length", c.cfg.MaxLength,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("vision.generate.send_error", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("vision.generate.body_close_error", "req_id", rid, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("vision.generate.response",
		"req_id", rid,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	var out struct {
		Sequence string `json:"sequence"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	seq := out.Sequence
	if info.EOSToken != "" {
		seq = strings.ReplaceAll(seq, info.EOSToken, "")
	}
	if info.PadToken != "" {
		seq = strings.ReplaceAll(seq, info.PadToken, "")
	}
	return seq, nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.Endpoint, "/") + path
}
