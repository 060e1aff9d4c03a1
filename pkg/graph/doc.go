// Package graph normalizes graph inputs into dense adjacency matrices.
//
// Every plotting entry point accepts a [Source]: anything that can produce a
// square weighted adjacency matrix. The package provides adapters for the
// common representations and resolves them once with [Import], so the sorter
// and renderers only ever see a *mat.Dense.
//
// # Adapters
//
//   - [FromMatrix]: any gonum mat.Matrix (copied, never aliased)
//   - [Rows]: a [][]float64 literal
//   - [Graph]: sparse node-link form, also the JSON wire format
//   - [FromGonum]: any gonum graph.Graph, weighted or not
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "directed": false,
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b", "weight": 2.5}]
//	}
//
// Edges without a weight count as 1. Undirected graphs produce a symmetric
// matrix. Node order in the file fixes the row order of the matrix.
//
//	g, _ := graph.ReadGraphFile("net.json")
//	adj, _ := graph.Import(g)
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
