package ledger

import "fmt"

// Action identifies what a record says the person did.
type Action string

const (
	ActionEnter Action = "ENTER"
	ActionMove  Action = "MOVE"
	ActionExit  Action = "EXIT"
)

// NoRoom is the sentinel room value. It is only meaningful on EXIT
// records, where it means "whichever room the person is currently in".
const NoRoom = "-"

// Rooms is the closed set of rooms in the gallery. NoRoom is listed
// because it is valid wherever a roomId field appears on the wire.
var Rooms = map[string]bool{
	"lobby":    true,
	"gallery1": true,
	"gallery2": true,
	"vault":    true,
	"security": true,
	"storage":  true,
	NoRoom:     true,
}

// maxIDLen bounds actor and person identifiers.
const maxIDLen = 32

// maxTimestampLen bounds the decimal epoch-seconds field.
const maxTimestampLen = 11

// Record is one validated entry of the activity log.
//
// ActorID is the authenticated identity that appended the record;
// PersonID is the subject whose movement it describes. The timestamp is
// kept as its on-disk decimal string so that format(parse(line))
// reproduces the line byte for byte.
type Record struct {
	Timestamp string
	ActorID   string
	PersonID  string
	Action    Action
	RoomID    string
}

// FieldError reports a record field that violates its grammar.
// It is a usage error, not an operational failure.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ValidTimestamp reports whether s is 1-11 ASCII digits.
func ValidTimestamp(s string) bool {
	if len(s) == 0 || len(s) > maxTimestampLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidID reports whether s is a legal actor or person identifier:
// 1-32 characters drawn from [A-Za-z0-9_-].
func ValidID(s string) bool {
	if len(s) == 0 || len(s) > maxIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// ValidAction reports whether s is one of the three known actions.
func ValidAction(s string) bool {
	switch Action(s) {
	case ActionEnter, ActionMove, ActionExit:
		return true
	}
	return false
}

// ValidRoom reports whether s is a whitelisted room or the NoRoom sentinel.
func ValidRoom(s string) bool {
	return Rooms[s]
}

// CheckFields validates a proposed person/action/room triple before it is
// allowed anywhere near credentials or the log file. The first violation
// found is returned as a *FieldError.
func CheckFields(personID, action, roomID string) error {
	if !ValidAction(action) {
		return &FieldError{Field: "action", Value: action, Reason: "must be ENTER, MOVE, or EXIT"}
	}
	if !ValidRoom(roomID) {
		return &FieldError{Field: "room", Value: roomID, Reason: "not a known room"}
	}
	if !ValidID(personID) {
		return &FieldError{Field: "person", Value: personID, Reason: "must be 1-32 characters of [A-Za-z0-9_-]"}
	}
	return nil
}
