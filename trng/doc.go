// Package trng provides true-random-number sources polled by the
// entropy pool's housekeeping pass, one 32-bit word at a time.
//
// Two backends are included: OS reads the operating system CSPRNG and
// suits hosted deployments, while Jitter harvests timer scheduling
// jitter and stands in for the watchdog-interrupt harvester on
// hardware with no TRNG at all. Platform-specific register-backed
// sources implement the same Source interface.
package trng
