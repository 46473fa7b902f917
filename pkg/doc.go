// Package pkg provides the libraries behind robdd, a builder for reduced
// ordered binary decision diagrams.
//
// # Overview
//
// robdd turns a Boolean function into its canonical ROBDD by Shannon
// decomposition over a fixed variable order. The function is supplied as an
// oracle: anything that can evaluate a total assignment. The pkg directory is
// organized into three areas:
//
//  1. Core: [bdd], [formula] and [crosscheck]
//  2. Output: [render] (with [render/dot], [render/graphviz] and
//     [render/quickchart]) and [io]
//  3. Plumbing: [pipeline], [api], [cache], [config], [errors],
//     [observability] and [httputil]
//
// # Architecture
//
// The typical data flow for one diagram:
//
//	formula text
//	     ↓
//	[formula] package (parse, then compile to a logic circuit oracle)
//	     ↓
//	[bdd] package (decompose and reduce through the unique table)
//	     ↓
//	[render] / [io] packages (DOT, SVG, PNG or JSON document)
//
// # Quick Start
//
//	e, _ := formula.Parse("(x1 and x2) or x3")
//	oracle, _ := formula.Compile(e, []string{"x1", "x2", "x3"})
//
//	d, _ := bdd.NewBuilder().Build(oracle, []string{"x1", "x2", "x3"})
//	fmt.Println(d.NodeCount()) // 5
//
//	fmt.Print(dot.ToDOT(d, dot.Options{}))
//
// # Main Packages
//
// [bdd] - The node store with its unique table, the recursive and iterative
// builders, and the [bdd.Diagram] view with counting, evaluation and
// validation.
//
// [formula] - A small Boolean expression language. Parsed expressions are
// compiled into a gini logic circuit that serves as the oracle.
//
// [crosscheck] - Builds the same function with the rudd BDD library and
// compares satisfying counts, so results can be verified independently.
//
// [render] - Renderer interface for image formats, plus a caching decorator.
// [render/dot] writes DOT text, [render/graphviz] lays it out in-process and
// [render/quickchart] delegates to a remote Graphviz service.
//
// [io] - JSON import and export of diagrams, keyed by node handle.
//
// [pipeline] - Parse → build → render orchestration shared by the CLI and the
// HTTP API, with diagram and artifact caching.
//
// [api] - HTTP server exposing the pipeline.
//
// [cache] - File, Redis and no-op caches with content-addressed keys.
//
// [config] - TOML batch manifests describing many diagrams at once.
//
// # Testing
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/bdd/...         # Specific package
//	go test -run Example ./pkg/...
//
// [bdd]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/bdd
// [formula]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/formula
// [crosscheck]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/crosscheck
// [render]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/render/dot
// [render/graphviz]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/render/graphviz
// [render/quickchart]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/render/quickchart
// [io]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/api
// [cache]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/robdd/pkg/httputil
package pkg
