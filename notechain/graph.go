package notechain

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// InputNodeID is the reserved node ID where notes enter the chain.
	InputNodeID = "_input"
	// OutputNodeID is the reserved node ID where notes leave the chain.
	OutputNodeID = "_output"
)

// ErrCycle is returned for graphs whose targets loop back on themselves.
var ErrCycle = errors.New("invalid note graph: contains cycle")

// Node is a serializable node of a note graph.
type Node struct {
	ID       string `json:"id"                 yaml:"id"`
	Type     string `json:"type"               yaml:"type"`
	Target   string `json:"target,omitempty"   yaml:"target,omitempty"`
	Bypassed bool   `json:"bypassed,omitempty" yaml:"bypassed,omitempty"`
	Params   any    `json:"params,omitempty"   yaml:"params,omitempty"`
}

// Graph is the root structure of a patch file.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// compiledGraph holds the validated nodes and a topologically sorted
// traversal order following the targets.
type compiledGraph struct {
	Nodes map[string]Params
	Order []string
}

// ParseGraph decodes a JSON patch. An empty string is an empty graph.
func ParseGraph(raw string) (Graph, error) {
	var g Graph
	if raw == "" {
		return g, nil
	}
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return Graph{}, fmt.Errorf("invalid note graph json: %w", err)
	}
	return g, nil
}

// ParseGraphYAML decodes a YAML patch. An empty string is an empty graph.
func ParseGraphYAML(raw string) (Graph, error) {
	var g Graph
	if raw == "" {
		return g, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &g); err != nil {
		return Graph{}, fmt.Errorf("invalid note graph yaml: %w", err)
	}
	return g, nil
}

// compileGraph validates the nodes and sorts them with Kahn's algorithm.
// Nodes without ID or type are ignored, the first node with a given ID wins
// and targets naming unknown nodes are dropped. Ties are broken by
// declaration order so the result is reproducible. The reserved IDs always
// carry their own type and no other node may use a reserved type.
func compileGraph(g Graph) (*compiledGraph, error) {
	nodes := make(map[string]Params, len(g.Nodes))
	declared := make([]string, 0, len(g.Nodes))

	for _, n := range g.Nodes {
		if n.ID == "" || n.Type == "" {
			continue
		}

		if _, dup := nodes[n.ID]; dup {
			continue
		}

		switch {
		case isReservedNodeType(n.ID):
			n.Type = n.ID
		case isReservedNodeType(n.Type):
			continue
		}

		num, str := parseNodeParams(n.Params)
		nodes[n.ID] = Params{
			ID:       n.ID,
			Type:     n.Type,
			Target:   n.Target,
			Bypassed: n.Bypassed,
			Num:      num,
			Str:      str,
		}
		declared = append(declared, n.ID)
	}

	indegree := make(map[string]int, len(nodes))
	for _, id := range declared {
		p := nodes[id]
		if _, ok := nodes[p.Target]; !ok || p.Target == id || p.Type == OutputNodeID {
			p.Target = ""
			nodes[id] = p
			continue
		}
		indegree[p.Target]++
	}

	queue := make([]string, 0, len(nodes))
	for _, id := range declared {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		if next := nodes[id].Target; next != "" {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, ErrCycle
	}

	return &compiledGraph{
		Nodes: nodes,
		Order: order,
	}, nil
}

// parseNodeParams extracts numeric and string parameters from a decoded
// params value. JSON yields float64 numbers, YAML yields int or float64.
func parseNodeParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case float32:
			num[k] = float64(t)
		case int:
			num[k] = float64(t)
		case int64:
			num[k] = float64(t)
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}

// isReservedNodeType returns true for the entry and exit nodes, which have
// no module.
func isReservedNodeType(nodeType string) bool {
	return nodeType == InputNodeID || nodeType == OutputNodeID
}
