// Package doubles provides instrumented test doubles for the capability
// contract.
//
// Each double derives its return values from the exact sequence of calls it
// has received, so a test can tell afterwards how often and in which order
// a consumer used it by looking only at what the double returned:
//
//   - Stringable counts stringifications.
//   - Integer and Floating scale a shared counter on every coercion.
//   - Sequence returns entries from its own access history.
//   - Mapping records every access in a run-length-encoded log that is
//     readable through the reserved key "acc".
//
// The Callable variants add a one-argument call that mutates the same
// state. Doubles are single-use and not safe for concurrent use.
package doubles
