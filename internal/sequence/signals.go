package sequence

// Observer receives change notifications from a Sequence. All callbacks
// are invoked synchronously, in-line with the mutation that caused them;
// an observer must not mutate the Sequence from inside a callback.
//
// This decouples the model from any particular UI toolkit: a GUI layer
// subscribes an Observer and repaints from the callbacks.
type Observer interface {
	// NumPointsChanged fires when the length of the sequence changes.
	NumPointsChanged()

	// CurPointChanged fires when the cursor moves to a different index.
	CurPointChanged()

	// CurPointValuesChanged fires when the point at the cursor changes
	// content while the cursor index itself stays put.
	CurPointValuesChanged()

	// PointValuesChanged fires when the point at pos changes content.
	PointValuesChanged(pos int)

	// ModifiedChanged fires when the dirty flag flips from false to true.
	ModifiedChanged()
}

// Signal kind names used in recorded traces.
const (
	SigNumPointsChanged      = "num_points_changed"
	SigCurPointChanged       = "cur_point_changed"
	SigCurPointValuesChanged = "cur_point_values_changed"
	SigPointValuesChanged    = "point_values_changed"
	SigModifiedChanged       = "modified_changed"
)

// Signal is one recorded notification. Pos is only meaningful for
// point_values_changed and is 0 otherwise.
type Signal struct {
	Kind string `json:"kind" yaml:"kind"`
	Pos  int    `json:"pos" yaml:"pos"`
}

// Recorder is an Observer that captures the ordered trace of signals a
// Sequence emits. The trace is the unit of comparison for golden files
// and for edit-script reports.
type Recorder struct {
	trace []Signal
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NumPointsChanged() {
	r.trace = append(r.trace, Signal{Kind: SigNumPointsChanged})
}

func (r *Recorder) CurPointChanged() {
	r.trace = append(r.trace, Signal{Kind: SigCurPointChanged})
}

func (r *Recorder) CurPointValuesChanged() {
	r.trace = append(r.trace, Signal{Kind: SigCurPointValuesChanged})
}

func (r *Recorder) PointValuesChanged(pos int) {
	r.trace = append(r.trace, Signal{Kind: SigPointValuesChanged, Pos: pos})
}

func (r *Recorder) ModifiedChanged() {
	r.trace = append(r.trace, Signal{Kind: SigModifiedChanged})
}

// Trace returns the signals recorded so far, in emission order.
func (r *Recorder) Trace() []Signal {
	return r.trace
}

// Reset discards the recorded trace.
func (r *Recorder) Reset() {
	r.trace = nil
}

// Subscribe registers an observer for change notifications. Observers
// are notified in subscription order.
func (s *Sequence) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Sequence) emitNumPointsChanged() {
	for _, o := range s.observers {
		o.NumPointsChanged()
	}
}

func (s *Sequence) emitCurPointChanged() {
	for _, o := range s.observers {
		o.CurPointChanged()
	}
}

func (s *Sequence) emitCurPointValuesChanged() {
	for _, o := range s.observers {
		o.CurPointValuesChanged()
	}
}

func (s *Sequence) emitPointValuesChanged(pos int) {
	for _, o := range s.observers {
		o.PointValuesChanged(pos)
	}
}

func (s *Sequence) emitModifiedChanged() {
	for _, o := range s.observers {
		o.ModifiedChanged()
	}
}
