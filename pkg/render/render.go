package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Image formats a renderer may produce. DOT is not an image format: it is
// passed through by [Cached] without calling the backend.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ErrUnsupportedFormat is returned by renderers for formats they cannot
// produce.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Renderer converts DOT text to an image.
type Renderer interface {
	Render(ctx context.Context, dot []byte, format string) ([]byte, error)

	// Name identifies the backend in cache keys and logs.
	Name() string
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// CheckFormat returns an error wrapping [ErrUnsupportedFormat] unless
// format is in supported.
func CheckFormat(format string, supported ...string) error {
	if slices.Contains(supported, format) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
