// Package pkg provides the libraries behind graphplot, a toolkit for plotting
// graphs, their embeddings and their mixture models.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Data: [graph] adjacency sources, [hier] hierarchical labels and node
//     sorting, [table] node attribute tables, [gmm] fitted Gaussian mixtures
//     and [transform] matrix transforms
//  2. Plotting: [plot] entry points (heatmap, gridplot, pairplot, degree and
//     edge distributions, network and scree plots) drawn on [render] figures,
//     with [render/nodelink] exporting networks to Graphviz
//  3. IO: [io] readers and writers for matrices, labels, tables, models and
//     rendered artifacts, and [cache] for reusing artifacts across runs
//  4. Support: [errors] coded errors, [observability] hooks, [fonts] and
//     [buildinfo]
//
// # Architecture
//
// The typical data flow through graphplot:
//
//	CSV / JSON / edge list
//	         ↓
//	    [io] package (decode into a gonum matrix)
//	         ↓
//	    [transform] and [hier] packages (rescale, sort into groups)
//	         ↓
//	    [plot] package (draw marks and brackets onto a [render.Figure])
//	         ↓
//	    SVG/PDF/PNG/EPS/JPEG/TIFF output
//
// # Quick Start
//
// Plot a grouped adjacency matrix:
//
//	import (
//	    graphio "github.com/matzehuels/graphplot/pkg/io"
//	    "github.com/matzehuels/graphplot/pkg/graph"
//	    "github.com/matzehuels/graphplot/pkg/plot"
//	)
//
//	adj, _ := graphio.ImportMatrix("connectome.csv")
//	blocks, _ := graphio.ImportLabels("blocks.txt")
//
//	fig, _ := plot.Heatmap(graph.FromMatrix(adj), plot.HeatmapOptions{
//	    Common:    plot.Common{Title: "Connectome"},
//	    Inner:     blocks,
//	    Transform: "zero-boost",
//	})
//	_ = graphio.ExportFigure(fig, "connectome.svg", "")
//
// # Error Handling
//
// Validation failures carry an [errors.Code] so callers can tell a bad
// option (INVALID_VALUE) from a bad shape (DIMENSION_MISMATCH) or a missing
// column (KEY_NOT_FOUND):
//
//	if errors.GetCode(err) == errors.ErrCodeDimensionMismatch { ... }
package pkg
