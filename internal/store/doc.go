// Package store owns every interaction with the shared log file: opening
// it, locking it, replaying it, and appending to it.
//
// The log file is the single source of truth and the only shared mutable
// resource in the system. Coordination is advisory whole-file locking:
// appends take an exclusive lock, reads take a shared lock, and both
// replay the entire file under the lock they hold. Because a writer
// replays the fully up-to-date log before deciding whether the proposed
// event is valid, concurrent writers are serialized with no lost-update
// window, and a record lands in the file if and only if it is valid
// against the fold of every record that precedes it.
//
// Writes are a single bounded write of one complete newline-terminated
// line performed while holding the exclusive lock, so a reader never
// observes a half-written record.
//
// Lock acquisition blocks with no deadline by default; a stalled holder
// stalls everyone else, and fairness is whatever the platform's flock
// gives us. Callers can bound the wait with a timeout, in which case the
// guarantee is all-or-nothing: if the deadline expires the lock was never
// held and nothing was written.
package store
