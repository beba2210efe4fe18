package sequence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidSequence is returned when an invalid Sequence is asked to
// serialize itself.
var ErrInvalidSequence = errors.New("sequence: invalid sequence")

// Load parses a sequence document: a JSON array whose first element is
// the min bound, second the max bound, and remaining elements the
// ordered point list. Any malformed input (not an array, an element that
// is not a well-formed point object, a point dimension mismatch, an
// empty array) yields an invalid Sequence rather than an error; the
// caller gets an inert model either way.
//
// Points are clamped into the loaded bounds on insertion. A non-empty
// point list leaves the cursor on the first point. The loaded Sequence
// is unmodified.
func Load(data []byte) *Sequence {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return newInvalid()
	}

	var min, max Point
	var list []Point

	// The dimension of the first parsed point; every later point must
	// agree with it.
	dim := -1
	index := 0
	for _, msg := range raw {
		var p Point
		if err := p.UnmarshalJSON(msg); err != nil {
			return newInvalid()
		}

		// The first two elements are the bounds, the rest the points.
		switch index {
		case 0:
			min = p
		case 1:
			max = p
		default:
			list = append(list, p)
		}

		if dim != -1 && dim != len(p.Coords) {
			return newInvalid()
		}
		dim = len(p.Coords)
		index++
	}

	if index < 1 {
		return newInvalid()
	}

	s := New(dim, min, max)
	// One element at a time so each point is validated against the
	// bounds.
	for _, p := range list {
		s.points = append(s.points, s.validatePoint(p, false))
	}
	if len(s.points) != 0 {
		s.cur = 0
	}

	// modified stays false: a fresh load is clean.

	return s
}

// LoadFile reads and parses a sequence file. An unreadable file, like
// any malformed content, yields an invalid Sequence.
func LoadFile(filename string) *Sequence {
	data, err := os.ReadFile(filename)
	if err != nil {
		return newInvalid()
	}
	return Load(data)
}

// Marshal serializes the sequence as a JSON array: min bound, max bound,
// then every point in order. Marshal is pure; it never touches the
// modified flag. Returns ErrInvalidSequence for an invalid Sequence.
func (s *Sequence) Marshal() ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrInvalidSequence
	}

	arr := make([]Point, 0, len(s.points)+2)
	arr = append(arr, s.min, s.max)
	arr = append(arr, s.points...)

	data, err := json.MarshalIndent(arr, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sequence: %w", err)
	}
	return append(data, '\n'), nil
}

// Save serializes the sequence and commits the result: on success the
// modified flag is cleared. An invalid Sequence returns nil.
func (s *Sequence) Save() []byte {
	data, err := s.Marshal()
	if err != nil {
		return nil
	}
	s.modified = false
	return data
}

// SaveFile serializes the sequence and writes it to filename. The
// modified flag is cleared only after the write is confirmed, so a
// failed save leaves the dirty state exactly as it was.
func (s *Sequence) SaveFile(filename string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("save sequence: %w", err)
	}

	s.modified = false
	return nil
}
