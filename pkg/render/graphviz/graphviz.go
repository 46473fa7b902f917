// Package graphviz renders DOT in process with go-graphviz, which embeds
// Graphviz compiled to WebAssembly. No external binaries are needed.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/robdd/pkg/render"
)

// Name is the backend name used in cache keys.
const Name = "graphviz"

// Renderer is the local Graphviz backend. It is safe for concurrent use;
// each call starts its own Graphviz instance.
type Renderer struct{}

// New returns a local renderer.
func New() *Renderer { return &Renderer{} }

func (*Renderer) Name() string { return Name }

// Render lays out dot with the dot engine and returns SVG or PNG bytes.
func (*Renderer) Render(ctx context.Context, dot []byte, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case render.FormatSVG:
		gvFormat = graphviz.SVG
	case render.FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, render.CheckFormat(format, render.FormatSVG, render.FormatPNG)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if format == render.FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based width/height with the
// viewBox size so the SVG scales when embedded in HTML.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

var _ render.Renderer = (*Renderer)(nil)
