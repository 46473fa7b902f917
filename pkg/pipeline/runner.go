package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/robdd/pkg/bdd"
	"github.com/matzehuels/robdd/pkg/cache"
	"github.com/matzehuels/robdd/pkg/crosscheck"
	"github.com/matzehuels/robdd/pkg/errors"
	"github.com/matzehuels/robdd/pkg/formula"
	bddio "github.com/matzehuels/robdd/pkg/io"
	"github.com/matzehuels/robdd/pkg/observability"
	"github.com/matzehuels/robdd/pkg/render"
	"github.com/matzehuels/robdd/pkg/render/dot"
)

// TTLArtifact is how long rendered images stay in the cache.
const TTLArtifact = 30 * 24 * time.Hour

// Runner executes the pipeline with caching. It keeps no per-run state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Renderer produces svg and png. It is nil when image rendering is
	// disabled.
	Renderer render.Renderer

	// TTL is how long built diagrams stay in the cache.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects [cache.DefaultKeyer] and a nil renderer disables svg and png.
// The renderer is wrapped so that images are cached as well.
func NewRunner(c cache.Cache, keyer cache.Keyer, renderer render.Renderer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if renderer != nil {
		renderer = render.NewCached(renderer, c, keyer, TTLArtifact)
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Renderer: renderer,
		TTL:      TTLDiagram,
	}
}

// Execute builds the diagram and renders every requested format.
//
// A failed image render does not discard the build: the result is returned
// together with the error, holding the diagram and every artifact that was
// produced. The result is nil only when the build itself failed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	opts.SetDefaults()

	start := time.Now()
	artifacts, err := r.Render(ctx, result.Diagram, opts)
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	if err != nil {
		r.Logger.Warn("rendering failed",
			"id", result.ID,
			"rendered", slices.Sorted(maps.Keys(artifacts)),
			"error", err)
		return result, err
	}

	r.Logger.Info("rendered outputs",
		"id", result.ID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Build parses the formula and constructs its ROBDD. Errors carry an
// [errors.Code]: INVALID_FORMULA for syntax errors, INVALID_VARIABLE_ORDER
// for bad orders and ORACLE_FAILURE when evaluation fails.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{ID: uuid.NewString()}
	logger := r.Logger.With("id", result.ID)

	// Parse
	hooks.OnParseStart(ctx, opts.Formula)
	start := time.Now()
	expr, order, err := parse(opts)
	result.Stats.ParseTime = time.Since(start)
	hooks.OnParseComplete(ctx, opts.Formula, len(order), result.Stats.ParseTime, err)
	if err != nil {
		return nil, err
	}
	result.Expr = expr
	result.Stats.Variables = len(order)
	logger.Debug("parsed formula", "formula", expr.String(), "order", order)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "build cancelled")
	}

	// Build, or load from cache
	key := r.Keyer.DiagramKey(expr.String(), opts.DiagramKeyOpts(order))
	if !opts.Refresh {
		if d := r.cachedDiagram(ctx, key, order); d != nil {
			result.Diagram = d
			result.Stats.Nodes = d.NodeCount()
			result.CacheInfo.DiagramHit = true
			logger.Debug("diagram cache hit", "nodes", result.Stats.Nodes)
		}
	}

	if result.Diagram == nil {
		strategy, _ := bdd.ParseStrategy(opts.Strategy)
		hooks.OnBuildStart(ctx, strategy.String(), len(order))
		start = time.Now()
		d, gates, err := build(expr, order, strategy)
		result.Stats.BuildTime = time.Since(start)
		nodes, evals := 0, 0
		if d != nil {
			nodes, evals = d.NodeCount(), d.Evaluations()
		}
		hooks.OnBuildComplete(ctx, nodes, evals, result.Stats.BuildTime, err)
		if err != nil {
			return nil, err
		}

		result.Diagram = d
		result.Stats.Gates = gates
		result.Stats.Nodes = nodes
		result.Stats.Evaluations = evals
		r.storeDiagram(ctx, key, d, expr.String())

		logger.Info("built diagram",
			"nodes", nodes,
			"oracle_calls", evals,
			"strategy", strategy,
			"duration", result.Stats.BuildTime)
	}

	if opts.Verify {
		ref, err := crosscheck.Verify(expr, result.Diagram)
		if err != nil {
			if stderrors.Is(err, crosscheck.ErrMismatch) {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "cross-check")
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "reference build")
		}
		result.Reference = &ref
		logger.Debug("cross-check passed", "nodes", ref.Nodes, "satisfying", ref.SatCount)
	}

	return result, nil
}

// parse returns the syntax tree and the effective order: the given one, or
// the formula's variables in order of first appearance.
func parse(opts Options) (formula.Expr, []string, error) {
	expr, err := formula.Parse(opts.Formula)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormula, err, "parse formula")
	}

	order := opts.Order
	if len(order) == 0 {
		order = formula.Vars(expr)
		if len(order) == 0 {
			return nil, nil, errors.New(errors.ErrCodeInvalidVariableOrder,
				"formula %s has no variables; give an explicit order", expr)
		}
	}
	if err := errors.ValidateOrder(order); err != nil {
		return nil, nil, err
	}
	if err := bdd.ValidateOrder(order); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidVariableOrder, err, "variable order")
	}
	return expr, order, nil
}

func build(expr formula.Expr, order []string, strategy bdd.Strategy) (*bdd.Diagram, int, error) {
	circuit, err := formula.Compile(expr, order)
	if err != nil {
		var undef *formula.UndefinedVariableError
		if stderrors.As(err, &undef) {
			return nil, 0, errors.Wrap(errors.ErrCodeInvalidVariableOrder, err, "order does not cover the formula")
		}
		return nil, 0, errors.Wrap(errors.ErrCodeInternal, err, "compile formula")
	}

	d, err := bdd.NewBuilder(bdd.WithStrategy(strategy)).Build(circuit, order)
	if err != nil {
		var oe *bdd.OracleError
		if stderrors.As(err, &oe) {
			return nil, 0, errors.Wrap(errors.ErrCodeOracleFailure, err, "evaluate formula")
		}
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidVariableOrder, err, "build")
	}
	return d, circuit.Gates(), nil
}

// cachedDiagram returns the diagram stored under key, or nil. Entries that
// fail to decode or were built over another order are treated as misses.
func (r *Runner) cachedDiagram(ctx context.Context, key string, order []string) *bdd.Diagram {
	hooks := observability.Cache()
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil || !ok {
		hooks.OnCacheMiss(ctx, cache.KeyTypeDiagram)
		return nil
	}
	d, _, err := bddio.ReadJSON(bytes.NewReader(data))
	if err != nil || !slices.Equal(d.Order(), order) {
		hooks.OnCacheMiss(ctx, cache.KeyTypeDiagram)
		return nil
	}
	hooks.OnCacheHit(ctx, cache.KeyTypeDiagram)
	return d
}

func (r *Runner) storeDiagram(ctx context.Context, key string, d *bdd.Diagram, src string) {
	var buf bytes.Buffer
	if err := bddio.WriteJSON(&buf, d, src); err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), r.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeDiagram, buf.Len())
	}
}

// Render produces the requested formats of d. DOT and JSON are generated
// locally; svg and png go through the runner's renderer.
//
// When an image format fails the remaining formats are still produced, and
// the artifacts that succeeded are returned along with the first error.
func (r *Runner) Render(ctx context.Context, d *bdd.Diagram, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := r.render(ctx, d, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, d *bdd.Diagram, opts Options) (map[string][]byte, error) {
	src := []byte(dot.ToDOT(d, dot.Options{Name: opts.Name, Ranks: opts.Ranks}))
	artifacts := make(map[string][]byte, len(opts.Formats))
	var failed error

	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = src
		case FormatJSON:
			var buf bytes.Buffer
			if err := bddio.WriteJSON(&buf, d, opts.Formula); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
			}
			artifacts[format] = buf.Bytes()
		case FormatSVG, FormatPNG:
			data, err := r.renderImage(ctx, src, format)
			if err != nil {
				if failed == nil {
					failed = err
				}
				continue
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}
	}
	return artifacts, failed
}

// renderImage runs the renderer and gives its failure an error code.
func (r *Runner) renderImage(ctx context.Context, src []byte, format string) ([]byte, error) {
	if r.Renderer == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs a renderer; none is configured", format)
	}
	data, err := r.Renderer.Render(ctx, src, format)
	if err == nil {
		return data, nil
	}
	if errors.GetCode(err) != "" {
		return nil, err
	}
	var limited *errors.RateLimitedError
	if stderrors.As(err, &limited) {
		return nil, errors.Wrap(errors.ErrCodeRateLimited, err, "render %s", format)
	}
	return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s with %s", format, r.Renderer.Name())
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
