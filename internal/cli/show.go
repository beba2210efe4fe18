package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motionseq/motionseq/internal/sequence"
)

// showData is the JSON payload of the "show" command.
type showData struct {
	File      string           `json:"file"`
	PointDim  int              `json:"pointDim"`
	NumPoints int              `json:"numPoints"`
	CurPoint  *int             `json:"curPoint"` // null when there is no current point
	Modified  bool             `json:"modified"`
	Min       sequence.Point   `json:"min"`
	Max       sequence.Point   `json:"max"`
	Points    []sequence.Point `json:"points"`
}

// NewShowCommand creates the "show" command: summarize a sequence file.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [sequence-file]",
		Short: "Show the contents of a sequence file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			seq := sequence.LoadFile(args[0])
			if !seq.IsValid() {
				out.Error(ErrCodeInvalidSeq, fmt.Sprintf("%s is not a valid sequence file", args[0]))
				return &ExitError{Code: ExitFailure, Message: "invalid sequence file"}
			}

			data := showData{
				File:      args[0],
				PointDim:  seq.PointDim(),
				NumPoints: seq.Len(),
				Modified:  seq.IsModified(),
				Min:       seq.Min(),
				Max:       seq.Max(),
			}
			if idx, ok := seq.CurIndex(); ok {
				data.CurPoint = &idx
			}
			for i := 0; i < seq.Len(); i++ {
				data.Points = append(data.Points, seq.At(i))
			}

			if opts.Format == "json" {
				return out.Success(data)
			}
			return out.Success(formatShow(&data))
		},
	}

	return cmd
}

// formatShow renders the text form of a sequence summary.
func formatShow(d *showData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d points, dim %d\n", d.File, d.NumPoints, d.PointDim)
	fmt.Fprintf(&b, "  min: %s\n", formatPoint(d.Min))
	fmt.Fprintf(&b, "  max: %s\n", formatPoint(d.Max))
	for i, p := range d.Points {
		marker := " "
		if d.CurPoint != nil && *d.CurPoint == i {
			marker = "*"
		}
		fmt.Fprintf(&b, " %s[%d] %s\n", marker, i, formatPoint(p))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPoint(p sequence.Point) string {
	coords := make([]string, len(p.Coords))
	for i, c := range p.Coords {
		coords[i] = fmt.Sprintf("%g", c)
	}
	return fmt.Sprintf("(%s) duration=%d timeToTarget=%d", strings.Join(coords, ", "), p.Duration, p.TimeToTarget)
}
