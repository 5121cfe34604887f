package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/cwbudde/algo-notemod/dsp/buffer"
	"github.com/cwbudde/algo-notemod/dsp/core"
	"github.com/cwbudde/algo-notemod/midinote"
	"github.com/cwbudde/algo-notemod/note"
	"github.com/cwbudde/algo-notemod/notechain"
	"github.com/cwbudde/algo-notemod/stats/trace"
	"github.com/cwbudde/algo-notemod/transport"
	"github.com/cwbudde/algo-notemod/voice"
)

var destinations = [...]note.Destination{note.DestPitchBend, note.DestModWheel, note.DestPressure}

type renderOptions struct {
	sampleRate float64
	blockSize  int
	tempo      float64   // overrides the score tempo when > 0
	keepTraces bool      // keep every sample for period estimation
	dump       io.Writer // receives one MIDI modulation message per row and block
}

// row accumulates the modulation one held note received on one destination.
type row struct {
	label   string
	pitch   int
	dest    note.Destination
	stats   trace.Streaming
	samples []float64
}

type report struct {
	cfg    core.ProcessorConfig
	tempo  float64
	blocks int
	notes  int
	rows   []*row
}

type heldNote struct {
	msg  note.Message
	rows [len(destinations)]*row
}

// collector is the receiver at the end of the chain. It keeps the payload
// of every sounding note so the chains can be rendered block by block.
type collector struct {
	held  map[int]*heldNote
	notes int
	rows  []*row
}

func newCollector() *collector {
	return &collector{held: make(map[int]*heldNote)}
}

func (c *collector) PlayNote(m note.Message) {
	if !m.IsOn() {
		delete(c.held, m.Pitch)
		return
	}

	c.notes++
	h := &heldNote{msg: m}
	for i, d := range destinations {
		if m.Modulation.Chain(d).Len() == 0 {
			continue
		}
		r := &row{label: noteLabel(m, c.notes), pitch: m.Pitch, dest: d}
		h.rows[i] = r
		c.rows = append(c.rows, r)
	}
	c.held[m.Pitch] = h
}

func noteLabel(m note.Message, n int) string {
	if m.Voice == voice.Unassigned {
		return fmt.Sprintf("#%d", n)
	}
	return fmt.Sprintf("#%d v%d", n, m.Voice)
}

// render plays score through the patch and returns the per-note statistics.
func render(patch string, score Score, opts renderOptions) (*report, error) {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(opts.sampleRate),
		core.WithBlockSize(opts.blockSize),
	)

	tempo := score.Tempo
	if opts.tempo > 0 {
		tempo = opts.tempo
	}
	var tOpts []transport.Option
	if tempo > 0 {
		tOpts = append(tOpts, transport.WithTempo(tempo))
	}
	if len(score.TimeSignature) == 2 {
		tOpts = append(tOpts, transport.WithTimeSignature(score.TimeSignature[0], score.TimeSignature[1]))
	}
	clock, err := transport.New(cfg, tOpts...)
	if err != nil {
		return nil, err
	}

	chain := notechain.New(notechain.NewContext(clock), notechain.DefaultRegistry())
	if err := chain.LoadGraphYAML(patch); err != nil {
		return nil, err
	}
	defer func() { _ = chain.Reset() }()
	if !chain.HasGraph() {
		return nil, fmt.Errorf("patch needs both %s and %s nodes", notechain.InputNodeID, notechain.OutputNodeID)
	}

	out := newCollector()
	chain.SetOutput(out)

	pool := buffer.NewPool()
	block := pool.Get(cfg.BlockSize)
	scratch := pool.Get(cfg.BlockSize)
	defer pool.Put(block)
	defer pool.Put(scratch)

	messages := score.messages()
	end := score.length()
	blockMs := cfg.BlockDurationMs()

	rep := &report{cfg: cfg, tempo: clock.Tempo()}
	next := 0
	for {
		clock.Tick()
		now := clock.Now()
		if now >= end {
			break
		}
		rep.blocks++

		for next < len(messages) && messages[next].at < now+blockMs {
			if ev, ok := midinote.Decode(messages[next].msg, messages[next].at); ok {
				chain.PlayNote(ev.Note)
			}
			next++
		}

		for _, pitch := range slices.Sorted(maps.Keys(out.held)) {
			h := out.held[pitch]
			for i, r := range h.rows {
				if r == nil {
					continue
				}
				h.msg.Modulation.Chain(destinations[i]).Render(block.Samples(), scratch.Samples())
				r.stats.Update(block.Samples())
				if opts.keepTraces {
					r.samples = append(r.samples, block.Samples()...)
				}
				if opts.dump != nil {
					dumpBlock(opts.dump, now, h.msg, r.dest, block.At(0))
				}
			}
		}
	}

	rep.notes = out.notes
	rep.rows = out.rows
	return rep, nil
}

// dumpBlock writes the first sample of a block as the MIDI message a host
// would send on the voice's channel.
func dumpBlock(w io.Writer, now float64, m note.Message, d note.Destination, value float64) {
	channel := uint8(0)
	if m.Voice >= 0 {
		channel = uint8(m.Voice)
	}
	msg := midinote.EncodeModulation(d, channel, value)
	_, _ = fmt.Fprintf(w, "%10.2f ms  pitch %3d  %-9s  % X\n", now, m.Pitch, d, []byte(msg))
}
