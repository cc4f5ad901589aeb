// Package render draws road networks as node-link diagrams.
//
// # Overview
//
// This package transforms a constructed road graph into visual outputs.
// Junctions appear as boxes connected by directed arrows; reversed edges
// (the backward orientation of a two-way road) are drawn dashed.
//
// Rendering goes through Graphviz DOT as the intermediate form:
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.SVG(dot)
//	png, err := render.PNG(dot)
//
// The DOT string itself is a supported output format, useful for piping
// into other Graphviz tooling.
package render
