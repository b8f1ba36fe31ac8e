package cli

import (
	"errors"

	"github.com/WhosEdo/gallerylog/internal/auth"
	"github.com/WhosEdo/gallerylog/internal/gallery"
	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// JSON envelope error codes.
const (
	codeUsage = "E_USAGE"
	codeRule  = "E_RULE"
	codeAuth  = "E_AUTH"
	codeIO    = "E_IO"
)

// classify maps an executor error to its exit code and JSON error code.
//
// Field and rule violations are usage errors (exit 2) and carry their
// specific reason through. Authentication and operational failures are
// exit 1 with their already-generic message; the underlying cause is
// deliberately not attached, so no path or secret can leak into output.
func classify(err error) (*ExitError, string) {
	var fieldErr *ledger.FieldError
	var ruleErr *gallery.RuleError

	switch {
	case errors.As(err, &fieldErr):
		return NewExitError(ExitUsage, fieldErr.Error()), codeUsage
	case errors.As(err, &ruleErr):
		return NewExitError(ExitUsage, ruleErr.Error()), codeRule
	case errors.Is(err, auth.ErrAuthentication):
		return NewExitError(ExitOperational, auth.ErrAuthentication.Error()), codeAuth
	default:
		return NewExitError(ExitOperational, err.Error()), codeIO
	}
}

// fail renders an error in the configured format and returns the
// ExitError for main to translate into a process exit code.
func fail(f *OutputFormatter, err error) error {
	exitErr, code := classify(err)
	if f.JSON() {
		if jerr := f.ErrorJSON(code, exitErr.Message); jerr != nil {
			return WrapExitError(ExitOperational, "failed to encode output", jerr)
		}
	}
	return exitErr
}
