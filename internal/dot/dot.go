// Package dot renders a graph and its solution as a Graphviz DOT
// document and, optionally, as rasterized image bytes. This is
// per-solution visualization only, not part of the solved core (§6).
package dot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/ni/delaygraph/core"
)

// ToDOT renders g under sol as a DOT document. Effectively registered
// vertices are drawn filled; everything else is outlined only.
func ToDOT(g *core.Graph, sol *core.Solution) string {
	var buf bytes.Buffer
	buf.WriteString("digraph delaygraph {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10];\n\n")

	for _, v := range g.Vertices() {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(v.ID), nodeAttrs(v, sol))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		style := ""
		if e.IsFeedback {
			style = ", style=dashed, color=red"
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q%s];\n", nodeID(e.Source), nodeID(e.Target), fmt.Sprintf("%dps", e.Delay), style)
	}

	buf.WriteString("}\n")

	return buf.String()
}

func nodeID(id core.VertexID) string {
	return fmt.Sprintf("n%d", id)
}

func nodeAttrs(v *core.Vertex, sol *core.Solution) string {
	label := fmt.Sprintf("%s\\n%s", nodeID(v.ID), v.NodeType)
	if sol != nil && sol.EffectivelyRegistered(v) {
		return fmt.Sprintf("label=%q, style=filled, fillcolor=lightblue", label)
	}

	return fmt.Sprintf("label=%q", label)
}

// Render rasterizes a DOT document to the given Graphviz output format
// (e.g. graphviz.SVG, graphviz.PNG).
func Render(ctx context.Context, dotSource string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("dot: init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dotSource))
	if err != nil {
		return nil, fmt.Errorf("dot: parse: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("dot: render: %w", err)
	}

	return buf.Bytes(), nil
}
