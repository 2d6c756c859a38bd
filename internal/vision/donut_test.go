package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procuredocs/extractor/internal/common"
)

func newModelServer(t *testing.T, sequence string, probes *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/model", func(w http.ResponseWriter, _ *http.Request) {
		if probes != nil {
			*probes++
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":         "naver-clova-ix/donut-base",
			"eos_token":    "</s>",
			"pad_token":    "<pad>",
			"unk_token_id": 3,
		})
	})
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		img, ok := body["image"].(string)
		require.True(t, ok)
		_, err := base64.StdEncoding.DecodeString(img)
		assert.NoError(t, err)

		assert.Equal(t, float64(512), body["max_length"])
		assert.Equal(t, float64(1), body["num_beams"])
		assert.Equal(t, true, body["early_stopping"])
		bad, ok := body["bad_words_ids"].([]any)
		require.True(t, ok)
		require.Len(t, bad, 1)
		assert.Equal(t, []any{float64(3)}, bad[0])

		_ = json.NewEncoder(w).Encode(map[string]string{"sequence": sequence})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8))))
}

func TestClientGenerateStripsSpecialTokens(t *testing.T) {
	srv := newModelServer(t, "<pad><pad>Invoice Number: 7781</s>", nil)

	img := filepath.Join(t.TempDir(), "page.png")
	writeTestPNG(t, img)

	c := NewClient(ClientConfig{Endpoint: srv.URL}, nil)
	seq, err := c.Generate(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "Invoice Number: 7781", seq)
}

func TestClientProbesModelOnce(t *testing.T) {
	var probes int
	srv := newModelServer(t, "text", &probes)

	img := filepath.Join(t.TempDir(), "page.png")
	writeTestPNG(t, img)

	c := NewClient(ClientConfig{Endpoint: srv.URL + "/"}, nil) // trailing slash handled
	for i := 0; i < 3; i++ {
		_, err := c.Generate(context.Background(), img)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, probes)
}

func TestClientGenerateNon2xx(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/model", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	img := filepath.Join(t.TempDir(), "page.png")
	writeTestPNG(t, img)

	c := NewClient(ClientConfig{Endpoint: srv.URL}, nil)
	_, err := c.Generate(context.Background(), img)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load model")
}

// fakeRunner stands in for pdftoppm: it writes a real PNG where the binary
// would, using the output prefix passed as the final argument.
type fakeRunner struct {
	t    *testing.T
	args []string
	err  error
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	f.args = args
	if f.err != nil {
		return nil, []byte("rasterizer exploded"), f.err
	}
	prefix := args[len(args)-1]
	writeTestPNG(f.t, prefix+"-1.png")
	return nil, nil, nil
}

func TestExtractorFullPath(t *testing.T) {
	srv := newModelServer(t, "Pre-Qualification Form</s>", nil)
	client := NewClient(ClientConfig{Endpoint: srv.URL}, nil)

	e := NewExtractor(client, common.VisionConfig{DPI: 200}, nil)
	runner := &fakeRunner{t: t}
	e.runner = runner

	res, err := e.Extract(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Pre-Qualification Form", res.Text)
	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, res.Tables)

	// pdftoppm invocation shape: first page only, requested dpi, png output
	require.GreaterOrEqual(t, len(runner.args), 8)
	assert.Equal(t, []string{"-f", "1", "-l", "1", "-r", "200"}, runner.args[:6])
	assert.Equal(t, "-png", runner.args[len(runner.args)-3])
	assert.Equal(t, "scan.pdf", runner.args[len(runner.args)-2])
}

func TestExtractorRasterFailure(t *testing.T) {
	srv := newModelServer(t, "unused", nil)
	e := NewExtractor(NewClient(ClientConfig{Endpoint: srv.URL}, nil), common.VisionConfig{}, nil)
	e.runner = &fakeRunner{t: t, err: os.ErrPermission}

	res, err := e.Extract(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.Text)
}

func TestExtractorUnconfigured(t *testing.T) {
	e := NewExtractor(nil, common.VisionConfig{}, nil)
	assert.False(t, e.Available())

	res, err := e.Extract(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.Text)
}
