// Package bdd builds Reduced Ordered Binary Decision Diagrams (ROBDDs).
//
// # Overview
//
// A ROBDD is a canonical directed acyclic graph for a Boolean function over a
// fixed variable order. Every internal node tests one variable and has two
// children: Low (the variable is false) and High (the variable is true). The
// two terminal nodes stand for the constants false and true and always carry
// the handles 0 and 1.
//
// The package is split in two parts:
//
//   - [Store]: the unique table. It owns every node and is the only place where
//     identity and reduction are decided (see [Store.MakeNode]).
//   - [Builder]: Shannon decomposition over a variable order. It consults an
//     [Oracle] once per total assignment and assembles the result bottom-up
//     through the store.
//
// # Basic Usage
//
//	order := []string{"a", "b", "c"}
//	f := bdd.OracleFunc(func(a bdd.Assignment) (bool, error) {
//	    x, _ := a.Lookup("a")
//	    y, _ := a.Lookup("b")
//	    z, _ := a.Lookup("c")
//	    return (x && y) || z, nil
//	})
//	d, err := bdd.NewBuilder().Build(f, order)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.NodeCount()) // 5
//
// # Canonicity
//
// Two functions that are equal under the same order produce the same root
// handle when built into the same store with [Builder.BuildInto], and
// isomorphic diagrams when built into two fresh stores (see
// [Diagram.Isomorphic]). Canonicity only holds relative to one order: the
// same function under a permuted order may have a different size.
//
// # Concurrency
//
// A [Store] is not safe for concurrent mutation. Read-only traversals such as
// [Diagram.NodeCount] and [Diagram.Nodes] may run concurrently with each other
// but never with a build into the same store.
package bdd
