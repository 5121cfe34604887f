// Package buffer provides the fixed-length float64 block used to carry one
// continuous control signal per voice, plus a pool for scratch blocks used
// while rendering composed modulation. Bulk arithmetic is delegated to
// algo-vecmath.
package buffer
