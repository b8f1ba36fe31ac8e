// Package gallery holds the occupancy model for the tracked space: the
// per-person state derived by replaying the log, and the transition rules
// every new event must satisfy before it may be appended.
//
// Replay is a pure ordered fold over valid records — no re-validation, no
// clock, no I/O — so reconstructing state is deterministic and idempotent.
// The rules are the entire business logic of the system: a person outside
// may only ENTER a concrete room; a person inside may MOVE to a different
// concrete room or EXIT via "-" or their current room.
package gallery
