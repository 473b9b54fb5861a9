package hfsm

import (
	"fmt"
	"strings"

	"github.com/enetx/g"
)

// dotWriter renders one machine level into DOT lines. Node names are
// prefixed with the path of the enclosing composite states.
type dotWriter interface {
	writeDOT(lines *g.Slice[g.String], prefix g.String, depth int)
}

// dotNested is implemented by states that own a nested machine.
type dotNested interface {
	nestedDOT() dotWriter
}

// ToDOT generates a DOT language representation of the machine for
// visualization. Composite states are drawn as clusters holding their nested
// machine, guarded edges are dashed and event transitions are labelled with
// their event id.
func (m *StateMachine[S]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph HFSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	var lines g.Slice[g.String]
	m.writeDOT(&lines, "", 1)

	b.WriteString(lines.Join("\n"))
	b.WriteString("\n")

	b.WriteString("\n  subgraph cluster_legend {\n")
	b.WriteString("    label = \"Legend\";\n")
	b.WriteString("    style = dashed;\n")
	b.WriteString(`    key [label=<
      <table border="0" cellpadding="4" cellspacing="0" cellborder="0">
        <tr><td align="right">●</td><td>State</td></tr>
        <tr><td align="right"><font color="green">◎</font></td><td>Active state</td></tr>
        <tr><td align="right">▭</td><td>Composite state</td></tr>
        <tr><td align="right"><font color="red">→</font></td><td>Guarded transition</td></tr>
      </table>
    >, shape=none];`)

	b.WriteString("\n  }\n")
	b.WriteString("}\n")

	return b.String()
}

func (m *StateMachine[S]) writeDOT(lines *g.Slice[g.String], prefix g.String, depth int) {
	indent := g.String(strings.Repeat("  ", depth))
	node := func(id S) g.String { return prefix + g.String(fmt.Sprint(id)) }

	if m.initialID.IsSome() {
		start := prefix + "__start"
		lines.Push(indent + g.Format("\"{}\" [shape=point, style=invis];", start))
		lines.Push(indent + g.Format("\"{}\" -> \"{}\" [label=\" initial\"];", start, node(m.initialID.Some())))
	}

	for id := range m.order.Iter() {
		state := m.bundles[id].state
		label := g.String(fmt.Sprint(id))
		active := m.active != nil && m.active.state.ID() == id

		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", label))

		if active {
			attrs.Push("fillcolor=\"#90ee90\"")
		}

		if nested, ok := state.(dotNested); ok {
			if w := nested.nestedDOT(); w != nil {
				attrs.Push("shape=box")

				lines.Push(indent + "subgraph \"cluster_" + node(id) + "\" {")
				lines.Push(indent + g.Format("  label=\"{}\";", label))
				lines.Push(indent + "  style=rounded;")
				lines.Push(indent + g.Format("  \"{}\" [{}];", node(id), attrs.Join(", ")))
				w.writeDOT(lines, node(id)+"/", depth+1)
				lines.Push(indent + "}")

				continue
			}
		}

		if active {
			attrs.Push("shape=doublecircle")
		}

		lines.Push(indent + g.Format("\"{}\" [{}];", node(id), attrs.Join(", ")))
	}

	for id := range m.order.Iter() {
		for t := range m.bundles[id].transitions.Iter() {
			lines.Push(indent + edgeLine(node(id), node(t.To()), "", t))
		}
	}

	var events g.Slice[eventEdge[S]]
	if m.eventEdges != nil {
		events = m.eventEdges()
	}

	anyNode := prefix + "__any"
	hasAny := m.anyTransitions.NotEmpty()

	for e := range events.Iter() {
		hasAny = hasAny || e.wildcard
	}

	if hasAny {
		lines.Push(indent + g.Format("\"{}\" [shape=none, style=\"\", label=\"any\"];", anyNode))
	}

	for t := range m.anyTransitions.Iter() {
		lines.Push(indent + edgeLine(anyNode, node(t.To()), "", t))
	}

	for e := range events.Iter() {
		from := node(e.transition.From())
		if e.wildcard {
			from = anyNode
		}

		lines.Push(indent + edgeLine(from, node(e.transition.To()), g.String(fmt.Sprint(e.event)), e.transition))
	}
}

// edgeLine renders one transition. Transitions that do not report whether
// they are guarded are drawn as guarded.
func edgeLine(from, to, label g.String, t any) g.String {
	guarded := true
	if gt, ok := t.(interface{ Guarded() bool }); ok {
		guarded = gt.Guarded()
	}

	if guarded {
		label = (label + " (guarded)").Trim()
	}

	var attrs g.Slice[g.String]
	if label != "" {
		attrs.Push(g.Format("label=\" {} \"", label))
	}

	if guarded {
		attrs.Push("style=dashed", "color=red", "arrowhead=odiamond")
	}

	if attrs.Empty() {
		return g.Format("\"{}\" -> \"{}\";", from, to)
	}

	return g.Format("\"{}\" -> \"{}\" [{}];", from, to, attrs.Join(", "))
}
