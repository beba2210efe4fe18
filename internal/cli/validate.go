package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motionseq/motionseq/internal/sequence"
)

// validateData is the JSON payload of the "validate" command.
type validateData struct {
	File      string `json:"file"`
	Valid     bool   `json:"valid"`
	PointDim  int    `json:"pointDim,omitempty"`
	NumPoints int    `json:"numPoints,omitempty"`
}

// NewValidateCommand creates the "validate" command: check that a file
// is a loadable sequence document. An invalid file exits with code 1,
// matching the model's own policy of treating malformed input as a
// state, not a crash.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [sequence-file]",
		Short: "Validate a sequence file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			seq := sequence.LoadFile(args[0])
			data := validateData{File: args[0], Valid: seq.IsValid()}

			if !seq.IsValid() {
				if opts.Format == "json" {
					out.Success(data)
				} else {
					out.Error(ErrCodeInvalidSeq, fmt.Sprintf("%s is not a valid sequence file", args[0]))
				}
				return &ExitError{Code: ExitFailure, Message: "invalid sequence file"}
			}

			data.PointDim = seq.PointDim()
			data.NumPoints = seq.Len()

			if opts.Format == "json" {
				return out.Success(data)
			}
			return out.Success(fmt.Sprintf("%s: valid (%d points, dim %d)", args[0], seq.Len(), seq.PointDim()))
		},
	}

	return cmd
}
