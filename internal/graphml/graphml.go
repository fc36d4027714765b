// Package graphml ingests the GraphML variant spec.md §6 defines and the
// accompanying goal file, producing the core.Graph and target period a
// solve needs. Malformed input is rejected here, before it ever reaches
// the core engine.
package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ni/delaygraph/core"
)

type document struct {
	Graph struct {
		EdgeDefault string  `xml:"edgedefault,attr"`
		Nodes       []xNode `xml:"node"`
		Edges       []xEdge `xml:"edge"`
	} `xml:"graph"`
}

type xNode struct {
	ID   string  `xml:"id,attr"`
	Data []xData `xml:"data"`
}

type xEdge struct {
	Source string  `xml:"source,attr"`
	Target string  `xml:"target,attr"`
	Data   []xData `xml:"data"`
}

type xData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Load parses r as the GraphML variant described in §6 and returns the
// resulting graph. Every XML node's id attribute is used only to resolve
// edge endpoints; the authoritative vertex identity is the VertexId data
// field.
func Load(r io.Reader) (*core.Graph, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("graphml: decode: %w", err)
	}

	g := core.NewGraph()
	byXMLID := make(map[string]core.VertexID, len(doc.Graph.Nodes))

	for _, n := range doc.Graph.Nodes {
		v, err := decodeVertex(n)
		if err != nil {
			return nil, fmt.Errorf("graphml: node %s: %w", n.ID, err)
		}
		if _, err := g.AddVertex(v); err != nil {
			return nil, fmt.Errorf("graphml: node %s: %w", n.ID, err)
		}
		byXMLID[n.ID] = v.ID
	}

	for _, xe := range doc.Graph.Edges {
		source, ok := byXMLID[xe.Source]
		if !ok {
			return nil, fmt.Errorf("graphml: edge references unknown source node %q", xe.Source)
		}
		target, ok := byXMLID[xe.Target]
		if !ok {
			return nil, fmt.Errorf("graphml: edge references unknown target node %q", xe.Target)
		}

		e, err := decodeEdge(xe, source, target)
		if err != nil {
			return nil, fmt.Errorf("graphml: edge %s->%s: %w", xe.Source, xe.Target, err)
		}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("graphml: edge %s->%s: %w", xe.Source, xe.Target, err)
		}
	}

	return g, nil
}

func decodeVertex(n xNode) (*core.Vertex, error) {
	v := &core.Vertex{}
	for _, d := range n.Data {
		switch d.Key {
		case "VertexId":
			id, err := strconv.Atoi(d.Value)
			if err != nil {
				return nil, fmt.Errorf("VertexId: %w", err)
			}
			v.ID = core.VertexID(id)
		case "NodeType":
			ordinal, err := strconv.Atoi(d.Value)
			if err != nil {
				return nil, fmt.Errorf("NodeType: %w", err)
			}
			v.NodeType = core.NodeType(ordinal)
		case "NodeUniqueId":
			id, err := strconv.Atoi(d.Value)
			if err != nil {
				return nil, fmt.Errorf("NodeUniqueId: %w", err)
			}
			v.NodeUniqueID = id
		case "ThroughputCostIfRegistered":
			n, err := strconv.ParseInt(d.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("ThroughputCostIfRegistered: %w", err)
			}
			v.ThroughputCostIfRegistered = n
		case "LatencyCostIfRegistered":
			n, err := strconv.ParseInt(d.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("LatencyCostIfRegistered: %w", err)
			}
			v.LatencyCostIfRegistered = n
		case "RegisterCostIfRegistered":
			n, err := strconv.ParseInt(d.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("RegisterCostIfRegistered: %w", err)
			}
			v.RegisterCostIfRegistered = n
		case "IsRegistered":
			b, err := strconv.ParseBool(d.Value)
			if err != nil {
				return nil, fmt.Errorf("IsRegistered: %w", err)
			}
			v.IsRegistered = b
		case "IsInputTerminal":
			b, err := strconv.ParseBool(d.Value)
			if err != nil {
				return nil, fmt.Errorf("IsInputTerminal: %w", err)
			}
			v.IsInputTerminal = b
		case "IsOutputTerminal":
			b, err := strconv.ParseBool(d.Value)
			if err != nil {
				return nil, fmt.Errorf("IsOutputTerminal: %w", err)
			}
			v.IsOutputTerminal = b
		case "DisallowRegister":
			b, err := strconv.ParseBool(d.Value)
			if err != nil {
				return nil, fmt.Errorf("DisallowRegister: %w", err)
			}
			v.DisallowRegister = b
		}
	}

	return v, nil
}

func decodeEdge(xe xEdge, source, target core.VertexID) (*core.Edge, error) {
	e := &core.Edge{Source: source, Target: target}
	for _, d := range xe.Data {
		switch d.Key {
		case "Delay":
			n, err := strconv.ParseInt(d.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("Delay: %w", err)
			}
			e.Delay = n
		case "IsFeedback":
			b, err := strconv.ParseBool(d.Value)
			if err != nil {
				return nil, fmt.Errorf("IsFeedback: %w", err)
			}
			e.IsFeedback = b
		}
	}

	return e, nil
}
