// Package sequence implements the editor data model for motion sequences.
//
// A Sequence is an ordered, bounds-clamped list of waypoints (Points),
// each carrying a coordinate vector of fixed dimension plus two timing
// fields. The Sequence owns a per-instance min/max bound pair, a current
// point cursor, and a modified (dirty) flag, and persists itself as a
// JSON array.
//
// Invariants:
//   - Every stored point has exactly PointDim coordinates.
//   - Every stored point lies within [min, max] component-wise.
//   - The cursor designates a valid index whenever the list is non-empty.
//
// Error policy: malformed input never panics. Load failures produce an
// invalid Sequence (PointDim == 0) on which every mutator is a silent
// no-op, so a bad file degrades into an inert model rather than a crash.
// Out-of-range positional indices are a caller contract violation and
// panic via the usual slice bounds check.
//
// The Sequence is single-threaded: it is owned and mutated by exactly
// one controller. Change notifications are delivered synchronously to
// subscribed Observers, in a fixed order per mutation; re-entering the
// Sequence from within a notification is unsupported.
package sequence
