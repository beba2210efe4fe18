package script

import (
	"fmt"

	"github.com/motionseq/motionseq/internal/profile"
	"github.com/motionseq/motionseq/internal/sequence"
	"github.com/motionseq/motionseq/internal/sequencer"
)

// Result captures a script execution: the signal trace emitted while the
// steps ran, any assertion failures, and the final sequence.
type Result struct {
	ScriptName string
	Trace      []sequence.Signal
	Failures   []string
	Sequence   *sequence.Sequence
}

// Pass reports whether every assertion held.
func (r *Result) Pass() bool {
	return len(r.Failures) == 0
}

// Run resolves the script's starting sequence, applies every step with a
// trace recorder subscribed, and evaluates the assertions. Execution
// errors (unreadable profile, invalid input file) are returned as
// errors; assertion failures land in the Result.
func Run(sc *Script) (*Result, error) {
	seq, err := resolveSequence(sc)
	if err != nil {
		return nil, err
	}
	return RunOn(sc, seq), nil
}

// RunOn applies the script's steps and assertions to an already-built
// sequence.
func RunOn(sc *Script, seq *sequence.Sequence) *Result {
	rec := sequence.NewRecorder()
	seq.Subscribe(rec)

	for _, step := range sc.Steps {
		apply(seq, &step)
	}

	result := &Result{
		ScriptName: sc.Name,
		Trace:      rec.Trace(),
		Sequence:   seq,
	}

	for i, a := range sc.Assertions {
		if failure := check(seq, result.Trace, &a); failure != "" {
			result.Failures = append(result.Failures, fmt.Sprintf("assertions[%d]: %s", i, failure))
		}
	}

	return result
}

// resolveSequence builds the starting sequence from the script's profile
// or input file.
func resolveSequence(sc *Script) (*sequence.Sequence, error) {
	if sc.Profile != "" {
		p, err := profile.LoadOne(sc.Profile, sc.ProfileName)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", sc.Name, err)
		}
		return sequencer.New(p).Sequence(), nil
	}

	seq := sequence.LoadFile(sc.Input)
	if !seq.IsValid() {
		return nil, fmt.Errorf("script %s: input %s is not a valid sequence file", sc.Name, sc.Input)
	}
	return seq, nil
}

// apply executes one step. Steps on a missing current point follow the
// model's own semantics: they are silent no-ops.
func apply(seq *sequence.Sequence, s *Step) {
	switch s.Op {
	case OpSetCur:
		seq.SetCurPoint(*s.Pos)
	case OpInsertAfter:
		seq.InsertAfterCurrent()
	case OpInsertBefore:
		seq.InsertBeforeCurrent()
	case OpAppend:
		seq.Append()
	case OpRemove:
		seq.RemoveCurrent()
	case OpClear:
		seq.Clear()
	case OpSetPoint:
		if s.Pos != nil {
			seq.SetPointAt(*s.Pos, s.Point.toPoint())
		} else {
			seq.SetPoint(s.Point.toPoint())
		}
	case OpSetCoordinate:
		if s.Pos != nil {
			seq.SetCoordinateAt(*s.Pos, *s.Coord, *s.Value)
		} else {
			seq.SetCoordinate(*s.Coord, *s.Value)
		}
	case OpSetDuration:
		if s.Pos != nil {
			seq.SetDurationAt(*s.Pos, *s.Duration)
		} else {
			seq.SetDuration(*s.Duration)
		}
	case OpSetTimeToTarget:
		if s.Pos != nil {
			seq.SetTimeToTargetAt(*s.Pos, *s.TimeToTarget)
		} else {
			seq.SetTimeToTarget(*s.TimeToTarget)
		}
	}
}

// check evaluates one assertion; an empty string means it held.
func check(seq *sequence.Sequence, trace []sequence.Signal, a *Assertion) string {
	switch a.Type {
	case AssertLength:
		if seq.Len() != a.Count {
			return fmt.Sprintf("length: want %d, got %d", a.Count, seq.Len())
		}
	case AssertCursor:
		idx, ok := seq.CurIndex()
		if a.None {
			if ok {
				return fmt.Sprintf("cursor: want none, got %d", idx)
			}
		} else {
			if !ok {
				return fmt.Sprintf("cursor: want %d, got none", a.Pos)
			}
			if idx != a.Pos {
				return fmt.Sprintf("cursor: want %d, got %d", a.Pos, idx)
			}
		}
	case AssertModified:
		if seq.IsModified() != *a.Modified {
			return fmt.Sprintf("modified: want %t, got %t", *a.Modified, seq.IsModified())
		}
	case AssertPoint:
		if a.Pos >= seq.Len() {
			return fmt.Sprintf("point: index %d out of range (length %d)", a.Pos, seq.Len())
		}
		want := a.Point.toPoint()
		got := seq.At(a.Pos)
		if !got.Equal(want) {
			return fmt.Sprintf("point %d: want %+v, got %+v", a.Pos, want, got)
		}
	case AssertSignalCount:
		n := 0
		for _, sig := range trace {
			if sig.Kind == a.Kind {
				n++
			}
		}
		if n != a.Count {
			return fmt.Sprintf("signal_count %s: want %d, got %d", a.Kind, a.Count, n)
		}
	}
	return ""
}
