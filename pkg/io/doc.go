// Package io reads plot inputs from files and writes rendered figures.
//
// # Matrices
//
// [ImportMatrix] picks a decoder by file extension:
//
//   - .csv: comma separated rows of numbers, '#' starts a comment line
//   - .json: a dense {"matrix": [[...]]}, an index edge list
//     {"n": 3, "edges": [{"from": 0, "to": 1, "weight": 2}]}, or the
//     node-link form of [graph.Graph]
//   - .edges: whitespace separated "i j [w]" lines
//
// Edge lists are undirected unless a JSON document sets "directed". Data
// matrices, such as embeddings for pair plots, may be rectangular.
//
// # Labels, Tables and Models
//
// [ImportLabels] reads one label per line. [ImportTable] reads a CSV node
// table with a header row, and [ImportModel] a fitted mixture model in the
// JSON form of [gmm.Model].
//
// # Export
//
// [ExportFigure] renders a figure in the format named by the file extension
// (svg, png, pdf, eps, jpg, tiff). [ExportMatrix] writes a matrix as CSV or
// JSON that the importers read back unchanged:
//
//	adj, err := io.ImportMatrix("net.edges")
//	if err != nil {
//	    return err
//	}
//	fig, err := plot.Heatmap(graph.FromMatrix(adj), plot.HeatmapOptions{})
//	if err != nil {
//	    return err
//	}
//	return io.ExportFigure(fig, "net.svg", "")
//
// Every file read or written is reported to the [observability.IOHooks].
//
// [graph.Graph]: github.com/matzehuels/graphplot/pkg/graph.Graph
// [gmm.Model]: github.com/matzehuels/graphplot/pkg/gmm.Model
// [observability.IOHooks]: github.com/matzehuels/graphplot/pkg/observability.IOHooks
package io
