// Package profile loads motion profiles from CUE files. A profile
// supplies the application-specific configuration of a sequence editor:
// the point dimension, the min/max bounds, and an optional seed point
// used when a new sequence is created.
//
// Profiles are validated against an embedded CUE schema, so a malformed
// profile is reported with file positions instead of silently producing
// a broken editor.
package profile

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"github.com/motionseq/motionseq/internal/sequence"
)

//go:embed schema.cue
var schemaCUE string

// Profile describes the bounds configuration for one kind of motion
// sequence (one robot, one rig).
type Profile struct {
	// Name is the profile's label in the CUE file.
	Name string

	// PointDim is the coordinate dimension of every point.
	PointDim int

	// Min and Max are the per-field bounds handed to sequence.New.
	Min sequence.Point
	Max sequence.Point

	// Seed is the starting point for freshly created sequences.
	Seed sequence.Point

	// HasSeed reports whether the profile declared a seed point.
	HasSeed bool
}

// LoadError is a profile loading failure with an optional CUE position.
type LoadError struct {
	Path    string // CUE path of the offending field, e.g. "profile.arm.min"
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Path, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Load reads a CUE profile file, validates it against the schema, and
// returns every profile it declares, in CUE's field order.
func Load(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}
	return parse(data, path)
}

// LoadOne loads the named profile from a CUE file. When name is empty
// and the file declares exactly one profile, that profile is returned.
func LoadOne(path, name string) (*Profile, error) {
	profiles, err := Load(path)
	if err != nil {
		return nil, err
	}

	if name == "" {
		if len(profiles) == 1 {
			return &profiles[0], nil
		}
		return nil, &LoadError{Message: fmt.Sprintf("%s declares %d profiles, name one explicitly", path, len(profiles))}
	}

	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], nil
		}
	}
	return nil, &LoadError{Path: "profile." + name, Message: "profile not found"}
}

// parse compiles the file against the embedded schema and decodes the
// profile entries.
func parse(data []byte, filename string) ([]Profile, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile profile schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("compile profile: %v", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("validate profile: %v", err)}
	}

	profilesVal := unified.LookupPath(cue.ParsePath("profile"))
	if !profilesVal.Exists() {
		return nil, &LoadError{Path: "profile", Message: "no profiles declared"}
	}

	iter, err := profilesVal.Fields()
	if err != nil {
		return nil, &LoadError{Path: "profile", Message: fmt.Sprintf("iterating profiles: %v", err)}
	}

	var profiles []Profile
	for iter.Next() {
		p, err := decodeProfile(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}

	if len(profiles) == 0 {
		return nil, &LoadError{Path: "profile", Message: "no profiles declared"}
	}

	return profiles, nil
}

// decodeProfile converts one profile struct into a Profile.
func decodeProfile(name string, v cue.Value) (*Profile, error) {
	p := &Profile{Name: name}

	dimVal := v.LookupPath(cue.ParsePath("pointDim"))
	dim, err := dimVal.Int64()
	if err != nil {
		return nil, &LoadError{Path: "profile." + name + ".pointDim", Message: err.Error(), Pos: v.Pos()}
	}
	p.PointDim = int(dim)

	if p.Min, err = decodePoint(v.LookupPath(cue.ParsePath("min"))); err != nil {
		return nil, &LoadError{Path: "profile." + name + ".min", Message: err.Error(), Pos: v.Pos()}
	}
	if p.Max, err = decodePoint(v.LookupPath(cue.ParsePath("max"))); err != nil {
		return nil, &LoadError{Path: "profile." + name + ".max", Message: err.Error(), Pos: v.Pos()}
	}

	seedVal := v.LookupPath(cue.ParsePath("seed"))
	if seedVal.Exists() {
		if p.Seed, err = decodePoint(seedVal); err != nil {
			return nil, &LoadError{Path: "profile." + name + ".seed", Message: err.Error(), Pos: v.Pos()}
		}
		p.HasSeed = true
	}

	return p, nil
}

// decodePoint converts a #Point CUE struct into a sequence.Point.
func decodePoint(v cue.Value) (sequence.Point, error) {
	var p sequence.Point

	coordsVal := v.LookupPath(cue.ParsePath("point"))
	list, err := coordsVal.List()
	if err != nil {
		return p, fmt.Errorf("point: %v", err)
	}
	for list.Next() {
		f, err := list.Value().Float64()
		if err != nil {
			return p, fmt.Errorf("point: %v", err)
		}
		p.Coords = append(p.Coords, f)
	}

	dur, err := v.LookupPath(cue.ParsePath("duration")).Int64()
	if err != nil {
		return p, fmt.Errorf("duration: %v", err)
	}
	p.Duration = int(dur)

	ttt, err := v.LookupPath(cue.ParsePath("timeToTarget")).Int64()
	if err != nil {
		return p, fmt.Errorf("timeToTarget: %v", err)
	}
	p.TimeToTarget = int(ttt)

	return p, nil
}
