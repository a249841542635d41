// Package rng implements a cryptographic pseudo-random number
// generator for devices that lack a trustworthy, high-rate hardware
// entropy source.
//
// The generator keeps a 48-byte secret pool that is mixed and
// extracted through a ChaCha block permutation. Entropy arrives from
// three directions:
//
//   - Noise sources registered with AddNoiseSource, polled on every
//     housekeeping pass (Loop) and pushing data through Stir with a
//     credit assertion of their own choosing.
//   - A hardware TRNG collaborator, polled one word at a time from
//     Loop and folded directly into the pool.
//   - Application data stirred in explicitly, for example device
//     serial numbers or protocol timing, usually with zero credit.
//
// The pool tracks a conservative entropy credit in bits. Rand never
// blocks and never fails: when credit runs short it drains to zero and
// best-effort output is produced anyway. Callers needing a quality
// guarantee poll Available first.
//
// Partial entropy survives power cycles through an optional seed
// store. The persisted seed is generated so that its capture reveals
// neither past nor future output, and it is invalidated the moment it
// is consumed at startup.
package rng
