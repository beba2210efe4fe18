// Package sequencer owns the editor's working sequence. It is a thin
// shell: it builds one Sequence from a profile and seeds it with the
// profile's starting point. All editing logic lives in the sequence
// package.
package sequencer

import (
	"github.com/motionseq/motionseq/internal/profile"
	"github.com/motionseq/motionseq/internal/sequence"
)

// Sequencer holds the single Sequence the surrounding application edits.
type Sequencer struct {
	seq *sequence.Sequence
}

// New builds a Sequencer from a profile. The sequence starts with one
// point: the profile's seed if declared, otherwise the midpoint of the
// bounds that Append produces on an empty sequence.
func New(p *profile.Profile) *Sequencer {
	seq := sequence.New(p.PointDim, p.Min, p.Max)

	seq.Append()
	if p.HasSeed {
		seq.SetPoint(p.Seed)
	}

	return &Sequencer{seq: seq}
}

// Wrap adopts an already-loaded sequence, e.g. one read from a file.
func Wrap(seq *sequence.Sequence) *Sequencer {
	return &Sequencer{seq: seq}
}

// Sequence returns the owned sequence.
func (s *Sequencer) Sequence() *sequence.Sequence {
	return s.seq
}
