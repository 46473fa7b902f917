package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/robdd/pkg/bdd"
)

// Document is the JSON form of a diagram.
type Document struct {
	Formula string     `json:"formula,omitempty"`
	Order   []string   `json:"order"`
	Root    bdd.Handle `json:"root"`
	Nodes   []Node     `json:"nodes"`
}

// Node is one internal node of a [Document].
type Node struct {
	ID   bdd.Handle `json:"id"`
	Var  string     `json:"var"`
	Low  bdd.Handle `json:"low"`
	High bdd.Handle `json:"high"`
}

// NewDocument captures the reachable part of d, root first.
func NewDocument(d *bdd.Diagram, formula string) Document {
	doc := Document{
		Formula: formula,
		Order:   d.Order(),
		Root:    d.Root(),
		Nodes:   []Node{},
	}
	for _, n := range d.Nodes() {
		if n.IsTerminal() {
			continue
		}
		doc.Nodes = append(doc.Nodes, Node{ID: n.Handle, Var: n.Var, Low: n.Low, High: n.High})
	}
	return doc
}

// WriteJSON encodes d as indented JSON. formula may be empty.
func WriteJSON(w io.Writer, d *bdd.Diagram, formula string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(d, formula)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes d to a JSON file at path.
func ExportJSON(path string, d *bdd.Diagram, formula string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, d, formula); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
