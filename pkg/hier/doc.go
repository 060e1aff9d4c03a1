// Package hier computes hierarchical node groupings for matrix plots.
//
// # Overview
//
// Nodes of a graph may carry up to two levels of categorical labels: an inner
// label (for example a block or community) and an outer label (a coarser
// grouping of the inner blocks). This package provides:
//
//   - [UniqueLike]: distinct values in first-occurrence order with counts
//   - [FreqVec]: the global frequency of each node's label
//   - [Freqs]: per-outer-segment inner counts and cumulative boundaries
//   - [SortIndices] / [SortGraph]: the stable permutation that groups nodes
//
// # Sort Order
//
// Nodes are ordered by the key
//
//	(n - outer_count, outer_label, n - inner_count, inner_label[, max_edgesum - edgesum])
//
// so that larger groups come first, ties are broken by label value, and (when
// requested) higher-degree nodes come first within a group. The sort is
// stable: nodes sharing every key keep their original relative order.
//
// # Label Comparison
//
// A [Labels] vector whose values all parse as numbers is compared
// numerically; any other vector is compared lexicographically.
//
// # Implicit Outer Level
//
// When no outer labels are supplied, [Implicit] synthesizes a constant vector
// so the sorter and annotator always work with two levels.
package hier
