// Package noise provides software noise sources for the entropy pool.
// Each source implements rng.NoiseSource: the pool polls it on every
// housekeeping pass and the source pushes whatever it has gathered
// back through the Stirrer, asserting its own conservative credit.
//
// Hardware sources (transistor noise, ring oscillators) live with
// their platform code and implement the same interface.
package noise
