package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motionseq/motionseq/internal/library"
	"github.com/motionseq/motionseq/internal/sequence"
)

// libEntry is the JSON form of a catalog entry.
type libEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PointDim  int    `json:"pointDim"`
	NumPoints int    `json:"numPoints"`
	UpdatedAt string `json:"updatedAt"`
}

// NewLibCommand creates the "lib" command group: a SQLite catalog of
// named sequences.
func NewLibCommand(opts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "lib",
		Short: "Manage the sequence library",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "motionseq.db", "path to the library database")

	cmd.AddCommand(newLibSaveCommand(opts, &dbPath))
	cmd.AddCommand(newLibLoadCommand(opts, &dbPath))
	cmd.AddCommand(newLibListCommand(opts, &dbPath))
	cmd.AddCommand(newLibRmCommand(opts, &dbPath))

	return cmd
}

// openLibrary opens the catalog, mapping failures to command errors.
func openLibrary(out *OutputFormatter, dbPath string) (*library.Library, error) {
	lib, err := library.Open(dbPath)
	if err != nil {
		out.Error(ErrCodeLibrary, err.Error())
		return nil, &ExitError{Code: ExitCommandError, Message: "open library", Err: err}
	}
	return lib, nil
}

func newLibSaveCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name] [sequence-file]",
		Short: "Store a sequence file in the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			seq := sequence.LoadFile(args[1])
			if !seq.IsValid() {
				out.Error(ErrCodeInvalidSeq, fmt.Sprintf("%s is not a valid sequence file", args[1]))
				return &ExitError{Code: ExitFailure, Message: "invalid sequence file"}
			}

			lib, err := openLibrary(out, *dbPath)
			if err != nil {
				return err
			}
			defer lib.Close()

			if err := lib.Put(args[0], seq); err != nil {
				out.Error(ErrCodeLibrary, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "store sequence", Err: err}
			}

			return out.Success(fmt.Sprintf("stored %s as %q (%d points)", args[1], args[0], seq.Len()))
		},
	}
}

func newLibLoadCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "load [name] [output-file]",
		Short: "Write a library sequence out to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			lib, err := openLibrary(out, *dbPath)
			if err != nil {
				return err
			}
			defer lib.Close()

			seq, err := lib.Get(args[0])
			if errors.Is(err, library.ErrNotFound) {
				out.Error(ErrCodeNotFound, fmt.Sprintf("no sequence named %q", args[0]))
				return &ExitError{Code: ExitFailure, Message: "sequence not found"}
			}
			if err != nil {
				out.Error(ErrCodeLibrary, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "load sequence", Err: err}
			}

			if err := seq.SaveFile(args[1]); err != nil {
				out.Error(ErrCodeWriteFailed, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "write sequence", Err: err}
			}

			return out.Success(fmt.Sprintf("wrote %q to %s (%d points)", args[0], args[1], seq.Len()))
		},
	}
}

func newLibListCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the sequences in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			lib, err := openLibrary(out, *dbPath)
			if err != nil {
				return err
			}
			defer lib.Close()

			entries, err := lib.List()
			if err != nil {
				out.Error(ErrCodeLibrary, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "list sequences", Err: err}
			}

			if opts.Format == "json" {
				data := make([]libEntry, 0, len(entries))
				for _, e := range entries {
					data = append(data, libEntry{
						ID:        e.ID,
						Name:      e.Name,
						PointDim:  e.PointDim,
						NumPoints: e.NumPoints,
						UpdatedAt: e.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
					})
				}
				return out.Success(data)
			}

			if len(entries) == 0 {
				return out.Success("library is empty")
			}

			var b strings.Builder
			for i, e := range entries {
				if i > 0 {
					b.WriteByte('\n')
				}
				fmt.Fprintf(&b, "%-20s dim=%d points=%d updated=%s",
					e.Name, e.PointDim, e.NumPoints, e.UpdatedAt.UTC().Format("2006-01-02"))
			}
			return out.Success(b.String())
		},
	}
}

func newLibRmCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [name]",
		Short: "Remove a sequence from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)

			lib, err := openLibrary(out, *dbPath)
			if err != nil {
				return err
			}
			defer lib.Close()

			err = lib.Delete(args[0])
			if errors.Is(err, library.ErrNotFound) {
				out.Error(ErrCodeNotFound, fmt.Sprintf("no sequence named %q", args[0]))
				return &ExitError{Code: ExitFailure, Message: "sequence not found"}
			}
			if err != nil {
				out.Error(ErrCodeLibrary, err.Error())
				return &ExitError{Code: ExitCommandError, Message: "delete sequence", Err: err}
			}

			return out.Success(fmt.Sprintf("removed %q", args[0]))
		},
	}
}
