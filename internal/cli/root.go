package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/WhosEdo/gallerylog/internal/auth"
	"github.com/WhosEdo/gallerylog/internal/config"
	"github.com/WhosEdo/gallerylog/internal/store"
)

// RootOptions holds global flags for all commands. Values left unset by
// flags are filled from the environment in PersistentPreRunE.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	LogPath     string
	Credentials string
	LockTimeout time.Duration

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gallerylog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gallerylog",
		Short: "Authenticated append-only activity ledger for the gallery",
		Long: `gallerylog tracks who is inside the gallery and which room they occupy
by replaying a flat append-only log of ENTER/MOVE/EXIT events.

Appending requires a secret with append permission; reading requires one
with read permission. The log file is the single source of truth and is
coordinated with advisory whole-file locking.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg, err := config.Load()
			if err != nil {
				return WrapExitError(ExitUsage, "invalid environment configuration", err)
			}
			if opts.LogPath == "" {
				opts.LogPath = cfg.LogPath
			}
			if opts.Credentials == "" {
				opts.Credentials = cfg.CredentialsPath
			}
			if opts.LockTimeout == 0 {
				opts.LockTimeout = cfg.LockTimeout
			}

			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Usage mistakes are exit code 2, not the generic failure code.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid arguments", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogPath, "log", "", "path to the log file (default $GALLERYLOG_PATH or logs/gallery.log)")
	cmd.PersistentFlags().StringVar(&opts.Credentials, "credentials", "", "YAML credential table replacing the built-in one")
	cmd.PersistentFlags().DurationVar(&opts.LockTimeout, "lock-timeout", 0, "bound lock acquisition (0 blocks until granted)")

	// Subcommands
	cmd.AddCommand(NewAppendCommand(opts))
	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger builds the diagnostic logger. Non-verbose invocations
// discard everything; verbose ones get debug-level text on stderr.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// credentialStore resolves the credential table for this invocation.
func (o *RootOptions) credentialStore() (*auth.Store, error) {
	if o.Credentials == "" {
		return auth.BuiltinStore(), nil
	}
	creds, err := auth.LoadStore(o.Credentials)
	if err != nil {
		// Deliberately generic: the message never echoes the path.
		return nil, NewExitError(ExitOperational, "failed to load credentials")
	}
	return creds, nil
}

// newStore builds the log-file store for this invocation.
func (o *RootOptions) newStore() (*store.Store, error) {
	creds, err := o.credentialStore()
	if err != nil {
		return nil, err
	}
	return store.New(o.LogPath, creds,
		store.WithLogger(o.logger),
		store.WithLockTimeout(o.LockTimeout),
	), nil
}
