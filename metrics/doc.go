// Package metrics instruments a token service with Prometheus collectors.
//
// [Instrument] wraps any value with Issue, ParseSubject and Verify and
// returns a drop-in replacement that counts outcomes and records latency.
// The wrapped service stays stateless; all counters live here.
package metrics
