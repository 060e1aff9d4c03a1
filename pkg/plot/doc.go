// Package plot draws statistical graphics of graphs and embeddings.
//
// Every entry point follows the same pipeline: validate the options, import
// the graph through [graph.Source], apply the requested [transform.Method],
// sort nodes hierarchically by their labels, draw the marks onto a
// [render.Figure] and, when grouping labels were given, annotate the groups
// with brackets on the top and left margins.
//
// # Entry Points
//
//   - [Heatmap]: a single graph as a color-coded matrix
//   - [Gridplot]: several graphs on the same nodes as a weighted scatter
//   - [Pairplot]: pairwise scatter plots of an embedding
//   - [PairplotWithGMM]: the same, overlaid with Gaussian mixture ellipses
//   - [Degreeplot] and [Edgeplot]: cumulative distributions of node degrees
//     and edge weights
//   - [Networkplot]: a node-link drawing at fixed positions
//   - [Screeplot]: the singular value spectrum
//
// Each function takes an options struct whose zero value is usable; unset
// fields are filled by its SetDefaults method. Plots are drawn inside the
// options' plotting context, which is restored before the function returns.
//
// # Grouping
//
// Inner labels split nodes into groups; outer labels, when given, group
// those groups again. Nodes are ordered by outer group size, outer label,
// inner group size and inner label, all stable, and optionally by degree
// within a group:
//
//	fig, err := plot.Heatmap(graph.Rows(adj), plot.HeatmapOptions{
//		Common:    plot.Common{Title: "Connectome"},
//		Inner:     hier.FromInts(blocks),
//		Transform: transform.ZeroBoost,
//	})
//	if err != nil {
//		return err
//	}
//	svg, err := fig.Encode("svg")
//
// Group order in brackets follows first appearance in the sorted labels.
package plot
