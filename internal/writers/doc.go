// Package writers turns generated networks and project summaries into
// serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (run-info block, summaries,
//     debug dumps).
//   - The engine stays domain-only; the bridge stays orchestration-only.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
