package notechain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-notemod/note"
)

// ErrUnknownModule is returned when a node references an unregistered module type.
var ErrUnknownModule = errors.New("unknown module type")

type nodeRuntime struct {
	moduleType string
	module     Module
}

// Chain owns a graph of note modules: topology, module instances and the
// entry and exit points. It is not safe for concurrent use.
type Chain struct {
	ctx      Context
	registry *Registry

	graph *compiledGraph
	nodes map[string]*nodeRuntime

	entry note.Output
	exit  note.Output
}

// New creates an empty Chain with the given context and registry.
func New(ctx Context, registry *Registry) *Chain {
	return &Chain{
		ctx:      ctx,
		registry: registry,
		nodes:    make(map[string]*nodeRuntime),
	}
}

// Context returns the chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// HasGraph returns true if the chain has a loaded graph with both reserved
// nodes.
func (c *Chain) HasGraph() bool {
	if c.graph == nil {
		return false
	}
	_, in := c.graph.Nodes[InputNodeID]
	_, out := c.graph.Nodes[OutputNodeID]
	return in && out
}

// LoadGraph parses a JSON graph, compiles the topology and synchronizes the
// modules. An empty string clears the graph.
func (c *Chain) LoadGraph(jsonGraph string) error {
	g, err := ParseGraph(jsonGraph)
	if err != nil {
		return err
	}
	return c.Apply(g)
}

// LoadGraphYAML is LoadGraph for YAML patches.
func (c *Chain) LoadGraphYAML(yamlGraph string) error {
	g, err := ParseGraphYAML(yamlGraph)
	if err != nil {
		return err
	}
	return c.Apply(g)
}

// Apply compiles g and synchronizes the modules with it. Modules whose node
// keeps its ID and type are reconfigured in place, so their voices and
// oscillator phases survive. On error the previous topology stays active,
// though modules configured before the failing node keep their new
// parameters.
func (c *Chain) Apply(g Graph) error {
	graph, err := compileGraph(g)
	if err != nil {
		return err
	}

	err = c.syncNodes(graph)
	if err != nil {
		return err
	}

	c.graph = graph
	c.connect()

	return nil
}

// PlayNote sends m into the chain.
func (c *Chain) PlayNote(m note.Message) {
	c.entry.Forward(m)
}

// SetOutput connects the receiver of notes leaving the chain.
func (c *Chain) SetOutput(r note.Receiver) {
	c.exit.SetTarget(r)
}

// Module returns the module of node id, or nil.
func (c *Chain) Module(id string) Module {
	if rt := c.nodes[id]; rt != nil {
		return rt.module
	}
	return nil
}

// Order returns the node IDs in processing order.
func (c *Chain) Order() []string {
	if c.graph == nil {
		return nil
	}
	return append([]string(nil), c.graph.Order...)
}

// Reset closes every module and clears the graph. The output receiver is
// kept.
func (c *Chain) Reset() error {
	var errs []error
	for _, id := range c.closeOrder() {
		errs = append(errs, c.nodes[id].module.Close())
	}
	c.graph = nil
	c.nodes = make(map[string]*nodeRuntime)
	c.entry.SetTarget(nil)
	return errors.Join(errs...)
}

// syncNodes synchronises module instances with the compiled graph. Modules
// that are no longer present are closed; new or type-changed nodes are
// (re)created in processing order and configured. New modules are built
// before anything is closed so a failed sync keeps the previous modules.
func (c *Chain) syncNodes(graph *compiledGraph) error {
	created := map[string]*nodeRuntime{}
	abort := func(err error) error {
		for _, rt := range created {
			_ = rt.module.Close()
		}
		return err
	}

	for _, id := range graph.Order {
		node := graph.Nodes[id]
		if isReservedNodeType(node.Type) {
			continue
		}

		rt := c.nodes[id]
		if rt == nil || rt.moduleType != node.Type {
			module, err := c.newModule(node.Type)
			if err != nil {
				return abort(fmt.Errorf("notechain: node %q: %w", id, err))
			}
			rt = &nodeRuntime{moduleType: node.Type, module: module}
			created[id] = rt
		}
	}

	next := make(map[string]*nodeRuntime, len(graph.Nodes))
	for _, id := range graph.Order {
		node := graph.Nodes[id]
		if isReservedNodeType(node.Type) {
			continue
		}

		rt := created[id]
		if rt == nil {
			rt = c.nodes[id]
		}

		err := rt.module.Configure(node)
		if err != nil {
			return abort(fmt.Errorf("notechain: configure node %q (%s): %w", id, node.Type, err))
		}
		next[id] = rt
	}

	for id, rt := range c.nodes {
		if next[id] != rt {
			_ = rt.module.Close()
		}
	}
	c.nodes = next

	return nil
}

// connect points every module, and the chain entry, at its target.
func (c *Chain) connect() {
	c.entry.SetTarget(nil)
	for _, id := range c.graph.Order {
		node := c.graph.Nodes[id]
		target := c.receiver(node.Target)
		switch {
		case node.Type == InputNodeID:
			c.entry.SetTarget(target)
		case !isReservedNodeType(node.Type):
			c.nodes[id].module.SetTarget(target)
		}
	}
}

// receiver resolves a target ID. Unconnected targets drop notes.
func (c *Chain) receiver(id string) note.Receiver {
	switch {
	case id == "":
		return nil
	case id == OutputNodeID:
		return note.ReceiverFunc(c.exit.Forward)
	default:
		if rt := c.nodes[id]; rt != nil {
			return rt.module
		}
		return nil
	}
}

// closeOrder lists live modules in reverse processing order.
func (c *Chain) closeOrder() []string {
	if c.graph == nil {
		return nil
	}
	ids := make([]string, 0, len(c.nodes))
	for i := len(c.graph.Order) - 1; i >= 0; i-- {
		if _, ok := c.nodes[c.graph.Order[i]]; ok {
			ids = append(ids, c.graph.Order[i])
		}
	}
	return ids
}

func (c *Chain) newModule(moduleType string) (Module, error) {
	factory := c.registry.Lookup(moduleType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, moduleType)
	}

	return factory(c.ctx)
}
