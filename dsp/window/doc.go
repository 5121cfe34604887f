// Package window generates taper coefficients for spectral measurements of
// rendered modulation signals.
package window
