package vision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

// rasterizeFirstPage renders page 1 of the PDF to a PNG. The first page is
// assumed representative of the whole document. Returns the image path and a
// cleanup func for the temp directory.
func rasterizeFirstPage(ctx context.Context, r Runner, pdftoppm, path string, dpi int) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "procx-raster-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f 1 -l 1 [-r dpi] -png <in.pdf> <tmp/page>
	args := []string{"-f", "1", "-l", "1"}
	if dpi > 0 {
		args = append(args, "-r", fmt.Sprintf("%d", dpi))
	}
	args = append(args, "-png", path, prefix)
	if _, errb, err := r.Run(ctx, pdftoppm, args...); err != nil {
		return "", cleanup, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", cleanup, fmt.Errorf("pdftoppm produced no image")
	}
	return matches[0], cleanup, nil
}

// prepareImage applies the usual scan cleanup before inference: grayscale,
// a contrast bump, and a sharpen pass so glyph edges survive the model's
// input downscaling.
func prepareImage(in string) (string, error) {
	src, err := imaging.Open(in)
	if err != nil {
		return "", fmt.Errorf("open raster: %w", err)
	}
	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)

	out := in[:len(in)-len(filepath.Ext(in))] + ".prep.png"
	if err := imaging.Save(img, out); err != nil {
		return "", fmt.Errorf("save raster: %w", err)
	}
	return out, nil
}
