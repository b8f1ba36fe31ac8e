package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Secret   string
	Database string
}

// ExportResult is the success payload for the export command.
type ExportResult struct {
	Records int `json:"records"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot the ledger into a SQLite database",
		Long: `Replay the ledger under a shared lock and snapshot every valid record
into a SQLite database for ad-hoc querying.

The snapshot is rebuilt from scratch on every export; the flat log file
remains the single source of truth.

Exit codes:
  0 - Snapshot written
  1 - Operational failure (authentication, locking, I/O)

Example:
  gallerylog export -T <secret> --db ./gallery.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Secret, "secret", "T", "", "secret with read permission (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite snapshot database (required)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	if err := requireFlags(cmd, "secret", "db"); err != nil {
		return err
	}

	f := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		TraceID: uuid.NewString(),
		Verbose: opts.Verbose,
	}

	st, err := opts.newStore()
	if err != nil {
		return fail(f, err)
	}

	n, err := st.Export(context.Background(), opts.Secret, opts.Database)
	if err != nil {
		return fail(f, err)
	}

	if f.JSON() {
		return f.SuccessJSON(ExportResult{Records: n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s)\n", n)
	return nil
}
