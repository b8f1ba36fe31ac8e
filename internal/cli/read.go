package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/WhosEdo/gallerylog/internal/gallery"
	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// ReadOptions holds flags for the read command.
type ReadOptions struct {
	*RootOptions
	Secret string
	State  bool
}

// ReadResult is the success payload for the read command.
type ReadResult struct {
	Records []AppendResult `json:"records"`
}

// OccupancyEntry is one person's derived state in the --state summary.
type OccupancyEntry struct {
	PersonID string `json:"person_id"`
	Inside   bool   `json:"inside"`
	Room     string `json:"room,omitempty"`
}

// StateResult is the success payload for read --state.
type StateResult struct {
	People []OccupancyEntry `json:"people"`
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "List every valid ledger record in file order",
		Long: `List every structurally valid record of the ledger, in file order,
under a shared lock. Malformed lines are skipped. A log file that does
not exist yet is an empty ledger, not an error.

With --state, prints the occupancy derived by replaying the log instead
of the raw records.

Exit codes:
  0 - Success (including an empty or absent log)
  1 - Operational failure (authentication, locking, I/O)

Examples:
  gallerylog read -T <secret>
  gallerylog read -T <secret> --state
  gallerylog read -T <secret> --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Secret, "secret", "T", "", "secret with read permission (required)")
	cmd.Flags().BoolVar(&opts.State, "state", false, "print derived occupancy instead of raw records")

	return cmd
}

func runRead(opts *ReadOptions, cmd *cobra.Command) error {
	if err := requireFlags(cmd, "secret"); err != nil {
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

	records, err := st.ReadAll(context.Background(), opts.Secret)
	if err != nil {
		return fail(f, err)
	}

	if opts.State {
		return outputState(f, cmd, records)
	}
	return outputRecords(f, cmd, records)
}

func outputRecords(f *OutputFormatter, cmd *cobra.Command, records []ledger.Record) error {
	if f.JSON() {
		result := ReadResult{Records: make([]AppendResult, 0, len(records))}
		for _, r := range records {
			result.Records = append(result.Records, appendResult(r))
		}
		return f.SuccessJSON(result)
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No log entries yet. Assuming empty gallery state.")
		return nil
	}

	fmt.Fprintf(w, "Parsed %d log entries:\n", len(records))
	for _, r := range records {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s\n", r.Timestamp, r.ActorID, r.PersonID, r.Action, r.RoomID)
	}
	return nil
}

func outputState(f *OutputFormatter, cmd *cobra.Command, records []ledger.Record) error {
	state := gallery.Replay(records)

	people := make([]OccupancyEntry, 0, len(state))
	for personID, occ := range state {
		people = append(people, OccupancyEntry{PersonID: personID, Inside: occ.Inside, Room: occ.Room})
	}
	sort.Slice(people, func(i, j int) bool { return people[i].PersonID < people[j].PersonID })

	if f.JSON() {
		return f.SuccessJSON(StateResult{People: people})
	}

	w := cmd.OutOrStdout()
	if len(people) == 0 {
		fmt.Fprintln(w, "No one has been recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "Occupancy for %d person(s):\n", len(people))
	for _, p := range people {
		if p.Inside {
			fmt.Fprintf(w, "%s: inside (%s)\n", p.PersonID, p.Room)
		} else {
			fmt.Fprintf(w, "%s: outside\n", p.PersonID)
		}
	}
	return nil
}
