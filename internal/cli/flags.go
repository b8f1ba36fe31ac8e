package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// requireFlags checks that the named flags were set on the command line.
//
// Cobra's own required-flag mechanism reports these as plain errors,
// which would map to the operational exit code; routing the check
// through here keeps missing arguments on the usage exit code. A flag
// that was set to an empty value counts as provided — an empty secret,
// for example, must fall through to authentication and fail there.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return NewExitError(ExitUsage, fmt.Sprintf("missing required flags: %s", strings.Join(missing, ", ")))
	}
	return nil
}
