package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motionseq/motionseq/internal/script"
	"github.com/motionseq/motionseq/internal/sequence"
)

// runData is the JSON payload of the "run" command.
type runData struct {
	Script   string            `json:"script"`
	Pass     bool              `json:"pass"`
	Failures []string          `json:"failures,omitempty"`
	Trace    []sequence.Signal `json:"trace"`
	Output   string            `json:"output,omitempty"`
}

// NewRunCommand creates the "run" command: apply a YAML edit script and
// report the signal trace and assertion results. Failed assertions exit
// with code 1.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "run [script-file]",
		Short: "Run a YAML edit script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			sc, err := script.Load(args[0])
			if err != nil {
				out.Error(ErrCodeScript, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "load script", Err: err}
			}

			result, err := script.Run(sc)
			if err != nil {
				out.Error(ErrCodeScript, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "run script", Err: err}
			}

			for _, sig := range result.Trace {
				out.VerboseLog("signal %s pos=%d", sig.Kind, sig.Pos)
			}

			data := runData{
				Script:   result.ScriptName,
				Pass:     result.Pass(),
				Failures: result.Failures,
				Trace:    result.Trace,
			}

			if outPath != "" {
				if err := result.Sequence.SaveFile(outPath); err != nil {
					out.Error(ErrCodeWriteFailed, err.Error())
					return &ExitError{Code: ExitCommandError, Message: "write result", Err: err}
				}
				data.Output = outPath
			}

			if opts.Format == "json" {
				out.Success(data)
			} else {
				out.Success(formatRun(&data))
			}

			if !result.Pass() {
				return &ExitError{Code: ExitFailure, Message: "script assertions failed"}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the resulting sequence to this file")

	return cmd
}

// formatRun renders the text form of a script result.
func formatRun(d *runData) string {
	var b strings.Builder
	if d.Pass {
		fmt.Fprintf(&b, "%s: pass (%d signals)", d.Script, len(d.Trace))
	} else {
		fmt.Fprintf(&b, "%s: FAIL", d.Script)
		for _, f := range d.Failures {
			fmt.Fprintf(&b, "\n  %s", f)
		}
	}
	if d.Output != "" {
		fmt.Fprintf(&b, "\nwrote %s", d.Output)
	}
	return b.String()
}
