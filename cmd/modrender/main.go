// Command modrender plays a score through a note-modulation patch offline
// and prints statistics of the modulation every note received.
//
// Usage:
//
//	modrender [flags] -patch patch.yaml -score score.yaml
//
// The patch is a notechain graph in YAML. The score lists notes (expanded
// to MIDI note-on/off pairs) and raw MIDI events, both timed in
// milliseconds.
//
// Examples:
//
//	modrender -patch drift.yaml -score chord.yaml
//	modrender -patch vibrato.yaml -score chord.yaml -bpm 90 -period
//	modrender -patch drift.yaml -score chord.yaml -dump
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-notemod/measure/period"
)

func main() {
	patchPath := flag.String("patch", "", "YAML patch graph (required)")
	scorePath := flag.String("score", "", "YAML score (required)")
	bpm := flag.Float64("bpm", 0, "tempo in quarter notes per minute (overrides the score)")
	sampleRate := flag.Float64("rate", 48000, "sample rate in Hz")
	blockSize := flag.Int("block", 512, "block size in samples")
	showPeriod := flag.Bool("period", false, "estimate the period of each modulation trace")
	dump := flag.Bool("dump", false, "print one MIDI modulation message per note and block")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modrender [flags] -patch patch.yaml -score score.yaml\n\n")
		fmt.Fprintf(os.Stderr, "Renders a score through a note-modulation patch and prints per-note statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modrender -patch drift.yaml -score chord.yaml\n")
		fmt.Fprintf(os.Stderr, "  modrender -patch vibrato.yaml -score chord.yaml -bpm 90 -period\n")
	}
	flag.Parse()

	if err := run(*patchPath, *scorePath, renderOptions{
		sampleRate: *sampleRate,
		blockSize:  *blockSize,
		tempo:      *bpm,
		keepTraces: *showPeriod,
		dump:       dumpWriter(*dump),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func dumpWriter(enabled bool) io.Writer {
	if enabled {
		return os.Stdout
	}
	return nil
}

func run(patchPath, scorePath string, opts renderOptions) error {
	if patchPath == "" || scorePath == "" {
		flag.Usage()
		return errors.New("-patch and -score are required")
	}
	if opts.sampleRate <= 0 || opts.blockSize <= 0 {
		return fmt.Errorf("sample rate and block size must be positive: %g, %d", opts.sampleRate, opts.blockSize)
	}

	patch, err := os.ReadFile(patchPath)
	if err != nil {
		return err
	}
	score, err := LoadScore(scorePath)
	if err != nil {
		return fmt.Errorf("%s: %w", scorePath, err)
	}

	rep, err := render(string(patch), score, opts)
	if err != nil {
		return err
	}
	return printReport(os.Stdout, rep, opts.keepTraces)
}

func printReport(w io.Writer, rep *report, withPeriod bool) error {
	if _, err := fmt.Fprintf(w, "%d notes, %d blocks of %d samples at %g Hz, %g bpm\n\n",
		rep.notes, rep.blocks, rep.cfg.BlockSize, rep.cfg.SampleRate, rep.tempo); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if len(rep.rows) == 0 {
		_, err := fmt.Fprintln(w, "no modulation reached the output")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Note\tPitch\tDestination\tSamples\tMean\tStdDev\tMin\tMax\tMax Step\tZero X"
	rule := "----\t-----\t-----------\t-------\t----\t------\t---\t---\t--------\t------"
	if withPeriod {
		header += "\tPeriod [ms]"
		rule += "\t-----------"
	}
	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, r := range rep.rows {
		s := r.stats.Result()
		line := fmt.Sprintf("%s\t%d\t%s\t%d\t%+.5f\t%.5f\t%+.5f\t%+.5f\t%.6f\t%d",
			r.label, r.pitch, r.dest, s.Length, s.Mean, s.StdDev, s.Min, s.Max, s.MaxStep, s.ZeroCrossings)
		if withPeriod {
			line += "\t" + periodColumn(r.samples, rep.cfg.SampleRate)
		}
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func periodColumn(samples []float64, sampleRate float64) string {
	res, err := period.Estimate(samples, period.Config{SampleRate: sampleRate})
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", res.PeriodSeconds*1000)
}
