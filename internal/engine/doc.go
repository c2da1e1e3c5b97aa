// Package engine adapts the pipeline to the external KarstNSim simulator.
// It never imports bridge or writers; keep it adapter-only.
//
// The simulation algorithm itself lives in the license-gated native
// library; this package stages its text inputs, invokes the binary, and
// parses the resulting conduit network.
package engine
