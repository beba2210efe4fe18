// Package script runs YAML edit scripts against a sequence.
//
// A script names a starting sequence (a CUE profile for a fresh, seeded
// sequence, or an existing sequence JSON file), an ordered list of edit
// steps, and assertions on the final state:
//
//	name: trim_tail
//	description: "Remove the trailing waypoint and verify the cursor."
//	profile: profiles/arm.cue
//	steps:
//	  - op: append
//	  - op: set_duration
//	    duration: 500
//	  - op: remove
//	assertions:
//	  - type: length
//	    count: 1
//	  - type: cursor
//	    pos: 0
//
// # Assertion types
//
//   - length: final number of points
//   - cursor: final cursor index (or none: true)
//   - modified: final dirty flag
//   - point: full comparison of the point at an index
//   - signal_count: number of occurrences of a signal kind in the trace
//
// Every run records the ordered signal trace the sequence emitted, so a
// script also pins the notification order a GUI observes; golden files
// compare the trace across runs.
package script
