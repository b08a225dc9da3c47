package ambient

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot writes the current contents of the engine's surface as a PNG file
// in the snapshot directory (see WithSnapshotDir) and returns its path. The
// surface must implement Imager. Safe to call between frames.
func (e *Engine) Snapshot(label string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return "", ErrDisposed
	}
	img, ok := e.surface.(Imager)
	if !ok {
		return "", fmt.Errorf("snapshot: %w: surface cannot be read back", ErrSurfaceUnavailable)
	}

	dir := e.opts.snapshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
	}

	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, img.Image()); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	e.logger().Info("ambient: snapshot written", "path", path)
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
