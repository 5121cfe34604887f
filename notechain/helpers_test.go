package notechain

import (
	"testing"

	"github.com/cwbudde/algo-notemod/dsp/core"
	"github.com/cwbudde/algo-notemod/note"
	"github.com/cwbudde/algo-notemod/transport"
)

// stubModule is a minimal Module that tags notes with its name.
type stubModule struct {
	name           string
	log            *[]string
	out            note.Output
	enabled        bool
	configureErr   error
	configureCalls int
	closed         bool
	lastParams     Params
}

func (s *stubModule) PlayNote(m note.Message) {
	if s.log != nil {
		*s.log = append(*s.log, s.name)
	}
	if s.enabled {
		m.Velocity += 1
	}
	s.out.Forward(m)
}

func (s *stubModule) Configure(params Params) error {
	s.configureCalls++
	s.lastParams = params
	s.enabled = !params.Bypassed
	if s.configureErr != nil {
		return s.configureErr
	}
	if params.Str["name"] != "" {
		s.name = params.Str["name"]
	}
	return nil
}

func (s *stubModule) SetTarget(r note.Receiver) { s.out.SetTarget(r) }

func (s *stubModule) SetEnabled(enabled bool) { s.enabled = enabled }

func (s *stubModule) Close() error {
	s.closed = true
	return nil
}

// testRegistry creates a registry with a stub module type whose instances
// share log.
func testRegistry(log *[]string) *Registry {
	r := NewRegistry()

	r.MustRegister("stub", func(_ Context) (Module, error) {
		return &stubModule{name: "stub", log: log}, nil
	})
	r.MustRegister("other", func(_ Context) (Module, error) {
		return &stubModule{name: "other", log: log}, nil
	})

	return r
}

func newTestContext(t *testing.T, opts ...transport.Option) Context {
	t.Helper()
	tr, err := transport.New(core.ProcessorConfig{SampleRate: 48000, BlockSize: 128}, opts...)
	if err != nil {
		t.Fatalf("transport.New() error = %v", err)
	}
	return NewContext(tr)
}
