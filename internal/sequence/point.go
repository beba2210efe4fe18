package sequence

import (
	"encoding/json"
	"fmt"
)

// Point is a single waypoint: a coordinate vector plus the time spent at
// the waypoint (Duration) and the time allotted to reach it
// (TimeToTarget). Points are value types with no identity of their own;
// the owning Sequence copies them freely.
type Point struct {
	Coords       []float64
	Duration     int
	TimeToTarget int
}

// pointJSON is the wire form of a Point. Field order here fixes the key
// order produced by MarshalJSON.
type pointJSON struct {
	Coords       []float64 `json:"point"`
	Duration     int64     `json:"duration"`
	TimeToTarget int64     `json:"timeToTarget"`
}

// Equal reports whether p and q are structurally equal: same dimension,
// identical coordinates (exact float comparison), same timing fields.
func (p Point) Equal(q Point) bool {
	if len(p.Coords) != len(q.Coords) {
		return false
	}
	for i := range p.Coords {
		if p.Coords[i] != q.Coords[i] {
			return false
		}
	}
	return p.Duration == q.Duration && p.TimeToTarget == q.TimeToTarget
}

// clone returns a deep copy of p. Coords must not be shared between the
// stored points and values handed to callers.
func (p Point) clone() Point {
	c := p
	if p.Coords != nil {
		c.Coords = make([]float64, len(p.Coords))
		copy(c.Coords, p.Coords)
	}
	return c
}

// MarshalJSON encodes the point as
// {"point": [...], "duration": n, "timeToTarget": n}.
func (p Point) MarshalJSON() ([]byte, error) {
	coords := p.Coords
	if coords == nil {
		coords = []float64{}
	}
	return json.Marshal(pointJSON{
		Coords:       coords,
		Duration:     int64(p.Duration),
		TimeToTarget: int64(p.TimeToTarget),
	})
}

// UnmarshalJSON decodes a point object, rejecting anything that is not
// exactly the expected shape: all three fields must be present, "point"
// must be an array of numbers, and the timing fields must be integral
// numbers. On error the receiver is left in an unspecified partial state;
// callers must discard it.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("point is not an object: %w", err)
	}

	coordsRaw, ok := raw["point"]
	if !ok {
		return fmt.Errorf("missing required field %q", "point")
	}
	// Dispatch on the first byte, as encoding/json happily decodes null
	// into a nil slice without complaint.
	if len(coordsRaw) == 0 || coordsRaw[0] != '[' {
		return fmt.Errorf("field %q: not an array", "point")
	}
	if err := json.Unmarshal(coordsRaw, &p.Coords); err != nil {
		return fmt.Errorf("field %q: %w", "point", err)
	}

	var err error
	if p.Duration, err = intField(raw, "duration"); err != nil {
		return err
	}
	if p.TimeToTarget, err = intField(raw, "timeToTarget"); err != nil {
		return err
	}

	return nil
}

// intField extracts a required integral number from a decoded object.
// Uses json.Number so that 3.5 is rejected rather than truncated.
func intField(raw map[string]json.RawMessage, key string) (int, error) {
	msg, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("missing required field %q", key)
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("field %q: not an integer: %s", key, n)
	}
	return int(v), nil
}
