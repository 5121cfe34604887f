package notefx

import (
	"errors"

	"github.com/cwbudde/algo-notemod/note"
	"github.com/cwbudde/algo-notemod/transport"
)

// ErrNilTransport is returned when a module is built without a transport.
var ErrNilTransport = errors.New("notefx: nil transport")

// router holds the state every note module shares: the enable switch, the
// downstream receiver and the transport registration.
type router struct {
	out      note.Output
	enabled  bool
	reg      *transport.Registration
	clock    *transport.Transport
	disabled func()
}

// SetTarget connects the downstream receiver. nil disconnects.
func (r *router) SetTarget(rcv note.Receiver) {
	r.out.SetTarget(rcv)
}

// Target returns the downstream receiver.
func (r *router) Target() note.Receiver {
	return r.out.Target()
}

// Enabled reports whether the module modulates notes.
func (r *router) Enabled() bool {
	return r.enabled
}

// SetEnabled toggles the module. A disabled module forwards notes unchanged.
func (r *router) SetEnabled(enabled bool) {
	if r.enabled == enabled {
		return
	}
	r.enabled = enabled
	if !enabled && r.disabled != nil {
		r.disabled()
	}
}

// Close detaches the module from its transport. The module keeps routing
// notes but no longer refreshes per-block state.
func (r *router) Close() error {
	return r.reg.Close()
}
