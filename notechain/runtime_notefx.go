package notechain

import (
	"math"

	"github.com/cwbudde/algo-notemod/modulation"
	"github.com/cwbudde/algo-notemod/notefx"
)

type instabilityRuntime struct {
	*notefx.Instability
}

func (r *instabilityRuntime) Configure(p Params) error {
	if err := r.SetAmount(p.GetNum("amount", r.Amount())); err != nil {
		return err
	}
	if err := r.SetWarble(p.GetNum("warble", r.Warble())); err != nil {
		return err
	}
	if err := r.SetNoise(p.GetNum("noise", r.Noise())); err != nil {
		return err
	}
	r.SetSeed(int64(math.Round(p.GetNum("seed", float64(r.Seed())))))
	r.SetEnabled(!p.Bypassed)
	return nil
}

type vibratoRuntime struct {
	*notefx.Vibrato
}

func (r *vibratoRuntime) Configure(p Params) error {
	if err := r.SetRange(p.GetNum("range", r.Range())); err != nil {
		return err
	}
	if err := r.SetDepth(p.GetNum("depth", r.Depth())); err != nil {
		return err
	}
	if label := p.GetStr("interval", ""); label != "" {
		interval, err := modulation.ParseInterval(label)
		if err != nil {
			return err
		}
		if err := r.SetInterval(interval); err != nil {
			return err
		}
	}
	r.SetEnabled(!p.Bypassed)
	return nil
}
