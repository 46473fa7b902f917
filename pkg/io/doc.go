// Package io reads and writes diagrams as JSON.
//
// The format lists the variable order, the root and every reachable internal
// node with its children. Terminals are implicit: IDs 0 and 1 always denote
// false and true.
//
//	{
//	  "formula": "a and b",
//	  "order": ["a", "b"],
//	  "root": 3,
//	  "nodes": [
//	    {"id": 3, "var": "a", "low": 0, "high": 2},
//	    {"id": 2, "var": "b", "low": 0, "high": 1}
//	  ]
//	}
//
// IDs in a file are only labels. [ReadJSON] rebuilds the diagram in a fresh
// store and rejects input that is not a reduced, ordered diagram: redundant
// tests, duplicate nodes, dangling references and order violations.
package io
