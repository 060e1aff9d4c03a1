// Package nodelink exports positioned networks to Graphviz.
//
// # Overview
//
// A network plot normally draws through gonum/plot. This package is the
// alternative path: it writes the same nodes and edges as Graphviz DOT with
// every node pinned to its position, and renders the result with the neato
// engine. Graphviz computes no layout; it only draws.
//
// # Usage
//
//	dot := nodelink.ToDOT(net, nodelink.Options{Width: 10, Height: 10})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Render] also produces PNG and JPEG, and returns the DOT source itself for
// the "dot" format so it can be post-processed with external tools.
//
// # Encoding
//
// Positions are scaled uniformly so that the network fits the requested
// size in inches. Node areas are square points, like plot marker sizes.
// Colors keep their alpha as #rrggbbaa. Undirected networks list each edge
// once, from the lower to the higher index.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process without a system installation.
package nodelink
