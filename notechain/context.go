package notechain

import (
	"github.com/cwbudde/algo-notemod/dsp/core"
	"github.com/cwbudde/algo-notemod/transport"
)

// Context provides what module factories need to build a module.
type Context struct {
	Config    core.ProcessorConfig
	Transport *transport.Transport
}

// NewContext returns a context for modules driven by t.
func NewContext(t *transport.Transport) Context {
	return Context{Config: t.Config(), Transport: t}
}
