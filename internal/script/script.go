package script

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/motionseq/motionseq/internal/sequence"
)

// Script defines a reproducible sequence edit: a starting sequence
// (from a profile or an existing file), an ordered list of edit steps,
// and assertions on the final state. Scripts double as conformance
// tests: the signal trace they produce is compared against golden files.
type Script struct {
	// Name uniquely identifies this script.
	Name string `yaml:"name"`

	// Description explains what this script exercises.
	Description string `yaml:"description,omitempty"`

	// Profile is the path to a CUE profile file; the edit starts from a
	// freshly seeded sequence. Mutually exclusive with Input.
	Profile string `yaml:"profile,omitempty"`

	// ProfileName selects a profile when the file declares several.
	ProfileName string `yaml:"profileName,omitempty"`

	// Input is the path to an existing sequence JSON file to edit.
	// Mutually exclusive with Profile.
	Input string `yaml:"input,omitempty"`

	// Steps are the edit operations, applied in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final sequence and the signal trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one edit operation. Pos is optional for the setter ops; when
// absent they target the current point.
type Step struct {
	// Op names the operation: set_cur, insert_after, insert_before,
	// append, remove, clear, set_point, set_coordinate, set_duration,
	// set_time_to_target.
	Op string `yaml:"op"`

	// Pos is the cursor target for set_cur, or the positional target
	// for the setter ops (default: current point).
	Pos *int `yaml:"pos,omitempty"`

	// Coord is the coordinate index for set_coordinate.
	Coord *int `yaml:"coord,omitempty"`

	// Value is the coordinate value for set_coordinate.
	Value *float64 `yaml:"value,omitempty"`

	// Duration is the value for set_duration.
	Duration *int `yaml:"duration,omitempty"`

	// TimeToTarget is the value for set_time_to_target.
	TimeToTarget *int `yaml:"timeToTarget,omitempty"`

	// Point is the full replacement point for set_point.
	Point *PointSpec `yaml:"point,omitempty"`
}

// PointSpec is a waypoint literal in a script file.
type PointSpec struct {
	Point        []float64 `yaml:"point"`
	Duration     int       `yaml:"duration"`
	TimeToTarget int       `yaml:"timeToTarget"`
}

func (p PointSpec) toPoint() sequence.Point {
	return sequence.Point{
		Coords:       p.Point,
		Duration:     p.Duration,
		TimeToTarget: p.TimeToTarget,
	}
}

// Assertion validates the final sequence or the recorded trace.
type Assertion struct {
	// Type names the assertion: length, cursor, modified, point,
	// signal_count.
	Type string `yaml:"type"`

	// Count is the expected value for length and signal_count.
	Count int `yaml:"count,omitempty"`

	// Pos is the expected cursor index (cursor) or the point index to
	// inspect (point).
	Pos int `yaml:"pos,omitempty"`

	// None expects no current point (cursor only).
	None bool `yaml:"none,omitempty"`

	// Modified is the expected dirty flag (modified only).
	Modified *bool `yaml:"modified,omitempty"`

	// Kind is the signal kind to count (signal_count only).
	Kind string `yaml:"kind,omitempty"`

	// Point is the expected waypoint (point only).
	Point *PointSpec `yaml:"point,omitempty"`
}

// Step op constants.
const (
	OpSetCur          = "set_cur"
	OpInsertAfter     = "insert_after"
	OpInsertBefore    = "insert_before"
	OpAppend          = "append"
	OpRemove          = "remove"
	OpClear           = "clear"
	OpSetPoint        = "set_point"
	OpSetCoordinate   = "set_coordinate"
	OpSetDuration     = "set_duration"
	OpSetTimeToTarget = "set_time_to_target"
)

// Assertion type constants.
const (
	AssertLength      = "length"
	AssertCursor      = "cursor"
	AssertModified    = "modified"
	AssertPoint       = "point"
	AssertSignalCount = "signal_count"
)

// Load reads and parses a script YAML file. Unknown fields are rejected
// to catch typos. The profile/input paths are resolved relative to the
// script file's directory.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script file: %w", err)
	}

	var sc Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse script YAML: %w", err)
	}

	base := filepath.Dir(path)
	if sc.Profile != "" && !filepath.IsAbs(sc.Profile) {
		sc.Profile = filepath.Join(base, sc.Profile)
	}
	if sc.Input != "" && !filepath.IsAbs(sc.Input) {
		sc.Input = filepath.Join(base, sc.Input)
	}

	if err := validate(&sc); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	return &sc, nil
}

// validate checks required fields before any step runs.
func validate(sc *Script) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}

	if (sc.Profile == "") == (sc.Input == "") {
		return fmt.Errorf("exactly one of profile or input is required")
	}

	if len(sc.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range sc.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, a := range sc.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, s *Step) error {
	switch s.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpSetCur:
		if s.Pos == nil {
			return fmt.Errorf("steps[%d]: pos is required for %s", index, s.Op)
		}
	case OpInsertAfter, OpInsertBefore, OpAppend, OpRemove, OpClear:
		// No arguments.
	case OpSetPoint:
		if s.Point == nil {
			return fmt.Errorf("steps[%d]: point is required for %s", index, s.Op)
		}
	case OpSetCoordinate:
		if s.Coord == nil || s.Value == nil {
			return fmt.Errorf("steps[%d]: coord and value are required for %s", index, s.Op)
		}
	case OpSetDuration:
		if s.Duration == nil {
			return fmt.Errorf("steps[%d]: duration is required for %s", index, s.Op)
		}
	case OpSetTimeToTarget:
		if s.TimeToTarget == nil {
			return fmt.Errorf("steps[%d]: timeToTarget is required for %s", index, s.Op)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertLength:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for length", index)
		}
	case AssertCursor:
		// Pos or none; either is fine.
	case AssertModified:
		if a.Modified == nil {
			return fmt.Errorf("assertions[%d]: modified is required for modified", index)
		}
	case AssertPoint:
		if a.Point == nil {
			return fmt.Errorf("assertions[%d]: point is required for point", index)
		}
	case AssertSignalCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for signal_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
