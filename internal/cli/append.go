package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/WhosEdo/gallerylog/internal/ledger"
	"github.com/WhosEdo/gallerylog/internal/store"
)

// AppendOptions holds flags for the append command.
type AppendOptions struct {
	*RootOptions
	Secret   string
	Event    string
	PersonID string
	RoomID   string
}

// AppendResult is the success payload for the append command.
type AppendResult struct {
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id"`
	PersonID  string `json:"person_id"`
	Action    string `json:"action"`
	RoomID    string `json:"room_id"`
}

// NewAppendCommand creates the append command.
func NewAppendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AppendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append one validated event to the ledger",
		Long: `Append one ENTER, MOVE, or EXIT event for a person.

The event is validated against the occupancy state reconstructed from
the full log, under an exclusive lock, before anything is written. A
rejected event leaves the log untouched.

Exit codes:
  0 - Event appended
  1 - Operational failure (authentication, locking, I/O)
  2 - Usage or validation error (bad arguments, rejected transition)

Examples:
  gallerylog append -T <secret> -E ENTER -P emp001 -R lobby
  gallerylog append -T <secret> -E EXIT -P emp001 -R -`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Secret, "secret", "T", "", "secret with append permission (required)")
	cmd.Flags().StringVarP(&opts.Event, "event", "E", "", "event action: ENTER, MOVE, or EXIT (required)")
	cmd.Flags().StringVarP(&opts.PersonID, "person", "P", "", "person identifier (required)")
	cmd.Flags().StringVarP(&opts.RoomID, "room", "R", "", `room identifier, or "-" for EXIT (required)`)

	return cmd
}

func runAppend(opts *AppendOptions, cmd *cobra.Command) error {
	if err := requireFlags(cmd, "secret", "event", "person", "room"); err != nil {
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

	rec, err := st.Append(context.Background(), store.AppendRequest{
		Secret:   opts.Secret,
		PersonID: opts.PersonID,
		Action:   opts.Event,
		RoomID:   opts.RoomID,
	})
	if err != nil {
		return fail(f, err)
	}

	if f.JSON() {
		return f.SuccessJSON(appendResult(rec))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Successfully appended log entry")
	return nil
}

func appendResult(rec ledger.Record) AppendResult {
	return AppendResult{
		Timestamp: rec.Timestamp,
		ActorID:   rec.ActorID,
		PersonID:  rec.PersonID,
		Action:    string(rec.Action),
		RoomID:    rec.RoomID,
	}
}
