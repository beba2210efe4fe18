package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motionseq/motionseq/internal/profile"
	"github.com/motionseq/motionseq/internal/sequencer"
)

// NewNewCommand creates the "new" command: seed a sequence file from a
// profile.
func NewNewCommand(opts *RootOptions) *cobra.Command {
	var profilePath, profileName string

	cmd := &cobra.Command{
		Use:   "new [output-file]",
		Short: "Create a seeded sequence file from a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			p, err := profile.LoadOne(profilePath, profileName)
			if err != nil {
				out.Error(ErrCodeProfile, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "load profile", Err: err}
			}
			out.VerboseLog("profile %s: dim=%d", p.Name, p.PointDim)

			seq := sequencer.New(p).Sequence()
			if err := seq.SaveFile(args[0]); err != nil {
				out.Error(ErrCodeWriteFailed, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "write sequence", Err: err}
			}

			return out.Success(fmt.Sprintf("created %s from profile %s (%d point)", args[0], p.Name, seq.Len()))
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "path to the CUE profile file (required)")
	cmd.Flags().StringVar(&profileName, "name", "", "profile name when the file declares several")
	cmd.MarkFlagRequired("profile")

	return cmd
}
