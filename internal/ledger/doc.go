// Package ledger defines the on-disk record format for the gallery
// activity log.
//
// The log is a flat, line-oriented file. One record per line:
//
//	timestamp|actorId|personId|action|roomId
//
// Fields are pipe-delimited with no quoting or escaping; every field is
// validated against a closed grammar, so the delimiter can never appear
// inside a field. A line that deviates from the grammar in any way is
// classified as malformed and excluded from replay and read output —
// a corrupt or tampered line never halts processing.
//
// Records are immutable once written. The log grows by appending whole
// newline-terminated lines and is never rewritten in place, which is what
// lets readers treat every complete line as ground truth.
package ledger
