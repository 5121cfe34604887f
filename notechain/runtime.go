package notechain

import "github.com/cwbudde/algo-notemod/note"

// Module is the per-node routing and configuration contract.
type Module interface {
	note.Receiver
	Configure(params Params) error
	SetTarget(r note.Receiver)
	SetEnabled(enabled bool)
	Close() error
}
