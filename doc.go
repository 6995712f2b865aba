/*
Package probes provides concurrency-safe, in-process telemetry primitives for Go:
streaming statistics, durations, a registry of published snapshots and a trace builder.

# Overview

The package is organized around three pieces:

1. Streaming statistics. Counter, Range, Mean and StdDev each keep O(1) state per
stream. Gauge composes one of each and produces an immutable GaugeSnapshot
after every sample. Mean and StdDev can share a counter (and StdDev a mean);
shared instances are observed through read-only views, so only their owner
advances them.

	g := probes.NewGauge()
	g.Sample(12)
	s := g.Sample(18) // s.Count == 2, s.Mean == 15

2. Manifold: a named registry of snapshots. Any value can be published under a
name together with an optional Resetter; Flush resets every registered source.
Gauges and response time gauges created through the manifold publish
themselves on every sample.

	m := probes.NewManifold()
	rt := m.ResponseTimeGauge("db.query", probes.WithUnit("micros"))
	rt.Returned(timer.End())
	export := m.Exports() // every snapshot, timestamp and user agent

3. TraceEngine: builds a tree of frames per logical task. The current frame
travels in a context.Context, so concurrent call chains never nest into each
other.

	ctx, frame := engine.Start(ctx)
	// ... call nested operations with ctx ...
	pending := engine.Finish(frame, timer.End(), lazyOp, handle)
	trace, err := pending.Wait(ctx)

A trace is finalized when its root frame has finished and every completion
Handle registered with it has settled, or when the grace period elapses.
Operations are captured lazily and materialized at finalization. A handle
that settles after finalization still attaches its outcome to the frame's
operation.

# Instruments

Manifold implements both Provider and Inspector. Instruments are stored in a
sync.Map keyed by name, with a separate sync.Map of per-name mutexes to
serialize first-time creation:

 1. Fast path: look the instrument up and return it if present.
 2. Slow path: build InstrumentConfig off-lock from options; acquire the per-name mutex;
    re-check; create, attach and store the instrument; optionally delete the init mutex entry.
 3. Requesting a name that holds an instrument of another type is an invariant
    violation. In debug and race builds it panics; otherwise it is logged and a
    detached instrument is returned.

# Configuration and logging

Components take functional options (WithClock, WithZapLogger, WithGracePeriod, ...).
LoadConfig reads the same settings from PROBES_* environment variables and
NewLogger builds a zap logger for them:

	cfg, err := probes.LoadConfig()
	l, err := probes.NewLogger(cfg.Logging)
	engine := probes.NewTraceEngine(cfg.Options(l)...)

# Build and test

- Run unit tests:

	go test ./...

- Run with the race detector (enables stricter invariant behavior):

	go test -race ./...

- Enable debug build tag (debug invariants enabled):

	go test -tags=debug ./...

# Notes

- Snapshots are values or immutable copies; readers never observe later updates
through a snapshot they already hold.

- The promcollector subpackage exposes published gauges to Prometheus.
*/
package probes
