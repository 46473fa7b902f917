// Package render turns DOT documents into images.
//
// A [Renderer] takes DOT text and an output format. Two backends exist:
//
//   - [graphviz]: in-process rendering with go-graphviz, no network access.
//   - [quickchart]: the QuickChart Graphviz web service.
//
// [Cached] wraps any renderer with a [cache.Cache], keyed by the hash of
// the DOT text, the format and the backend name.
//
// DOT itself is produced by the [dot] subpackage from a [bdd.Diagram].
//
// [graphviz]: github.com/matzehuels/robdd/pkg/render/graphviz
// [quickchart]: github.com/matzehuels/robdd/pkg/render/quickchart
// [dot]: github.com/matzehuels/robdd/pkg/render/dot
// [cache.Cache]: github.com/matzehuels/robdd/pkg/cache.Cache
// [bdd.Diagram]: github.com/matzehuels/robdd/pkg/bdd.Diagram
package render
