// Package pipeline provides the build pipeline shared by the CLI and the
// HTTP API.
//
// A run parses a formula, compiles it to a circuit oracle, builds the ROBDD
// by Shannon decomposition and renders it in the requested formats:
//
//  1. Parse: formula text to a syntax tree and a variable order
//  2. Build: one oracle call per total assignment, reduced on the fly
//  3. Render: DOT text, JSON node table, or SVG/PNG through a [render.Renderer]
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, graphviz.New(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Formula: "(a and not c) or (b ^ d)",
//	    Order:   []string{"a", "c", "b", "d"},
//	    Formats: []string{"dot", "png"},
//	})
//	png := result.Artifacts["png"]
//
// Build and render can also be run separately with [Runner.Build] and
// [Runner.Render].
package pipeline

import (
	"time"

	"github.com/matzehuels/robdd/pkg/bdd"
	"github.com/matzehuels/robdd/pkg/cache"
	"github.com/matzehuels/robdd/pkg/crosscheck"
	"github.com/matzehuels/robdd/pkg/errors"
	"github.com/matzehuels/robdd/pkg/formula"
	"github.com/matzehuels/robdd/pkg/render"
)

// Output formats.
const (
	FormatDOT  = render.FormatDOT
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatJSON = "json"
)

// DefaultStrategy is the traversal used when Options.Strategy is empty.
var DefaultStrategy = bdd.Recursive.String()

// TTLDiagram is how long built diagrams stay in the cache.
const TTLDiagram = 7 * 24 * time.Hour

// Options configures one pipeline run. It doubles as the JSON body of API
// requests.
type Options struct {
	Formula  string   `json:"formula"`
	Order    []string `json:"order,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Verify   bool     `json:"verify,omitempty"`

	// Name is the DOT graph name; Ranks groups nodes of one variable on one
	// rank.
	Name  string `json:"name,omitempty"`
	Ranks bool   `json:"ranks,omitempty"`

	// Refresh skips the diagram cache lookup.
	Refresh bool `json:"refresh,omitempty"`
}

// SetDefaults fills unset fields. The order is not defaulted here because it
// depends on the parsed formula.
func (o *Options) SetDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
}

// Validate checks the options without parsing the formula.
func (o *Options) Validate() error {
	if err := errors.ValidateFormula(o.Formula); err != nil {
		return err
	}
	if err := errors.ValidateOrder(o.Order); err != nil {
		return err
	}
	if _, ok := bdd.ParseStrategy(o.Strategy); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown strategy %q (want recursive or iterative)", o.Strategy)
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// DiagramKeyOpts returns the cache key options of the built diagram.
func (o *Options) DiagramKeyOpts(order []string) cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{Order: order, Strategy: o.Strategy}
}

// Result is the outcome of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	Expr    formula.Expr
	Diagram *bdd.Diagram

	// Reference is set when Options.Verify was requested.
	Reference *crosscheck.Report

	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains sizes and timings of a run.
type Stats struct {
	Variables   int
	Gates       int
	Nodes       int
	Evaluations int
	ParseTime   time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	DiagramHit bool
}
