// Package pkg provides the core libraries for topograph Reeb graph
// computation.
//
// # Overview
//
// topograph computes the Reeb graph of a piecewise-linear scalar field on
// a simplicial mesh and simplifies it by topological persistence. The pkg
// directory is organized into five main areas:
//
//  1. [reeb] - The streaming builder, simplifier and publisher
//  2. [mesh] - Simplicial mesh documents and scalar fields
//  3. [graph] - The published directed graph and its serialization
//  4. [render] - Diagram output for published graphs
//  5. [cache], [errors], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through topograph:
//
//	Mesh document (triangles / tetrahedra + scalar field)
//	         ↓
//	    [reeb] package (online streaming construction, the "zip")
//	         ↓
//	    [reeb] package (persistence simplification, loop surgery)
//	         ↓
//	    [graph] package (published critical points + regions)
//	         ↓
//	    JSON / DOT / SVG / PNG output
//
// # Quick Start
//
// Stream a mesh and publish its Reeb graph:
//
//	import (
//	    "github.com/matzehuels/topograph/pkg/graph"
//	    "github.com/matzehuels/topograph/pkg/mesh"
//	    "github.com/matzehuels/topograph/pkg/reeb"
//	)
//
//	m, _ := mesh.ReadFile("torus.json")
//	g := reeb.New()
//	if err := reeb.BuildByName(g, m, "height"); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := g.Simplify(0.05, nil); err != nil {
//	    log.Fatal(err)
//	}
//	doc, _ := g.Document()
//	graph.WriteGraphFile(doc, "reeb.json")
package pkg
