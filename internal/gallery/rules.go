package gallery

import (
	"fmt"

	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// RuleCode categorizes transition rejections so callers can report the
// exact precondition that failed.
type RuleCode string

const (
	// CodeAlreadyInside rejects ENTER for a person who is already inside.
	CodeAlreadyInside RuleCode = "ALREADY_INSIDE"

	// CodeNotInside rejects MOVE or EXIT for a person who is outside.
	CodeNotInside RuleCode = "NOT_INSIDE"

	// CodeRoomRequired rejects ENTER or MOVE with the "-" sentinel;
	// both need a concrete destination room.
	CodeRoomRequired RuleCode = "ROOM_REQUIRED"

	// CodeSameRoom rejects MOVE into the room the person is already in.
	CodeSameRoom RuleCode = "SAME_ROOM"

	// CodeRoomMismatch rejects EXIT naming a room other than the one the
	// person currently occupies.
	CodeRoomMismatch RuleCode = "ROOM_MISMATCH"
)

// RuleError is a transition rejection. It identifies the person, the
// failed precondition, and enough context for an actionable message.
type RuleError struct {
	Code     RuleCode
	PersonID string
	RoomID   string // room requested by the event
	Current  string // room currently occupied, if inside
}

func (e *RuleError) Error() string {
	switch e.Code {
	case CodeAlreadyInside:
		return fmt.Sprintf("person %q is already inside (in room %q), cannot ENTER again", e.PersonID, e.Current)
	case CodeNotInside:
		return fmt.Sprintf("person %q is not currently inside", e.PersonID)
	case CodeRoomRequired:
		return fmt.Sprintf("a concrete room is required, not %q", ledger.NoRoom)
	case CodeSameRoom:
		return fmt.Sprintf("person %q is already in room %q, cannot MOVE to the same room", e.PersonID, e.RoomID)
	case CodeRoomMismatch:
		return fmt.Sprintf("EXIT room %q does not match current room %q for person %q", e.RoomID, e.Current, e.PersonID)
	}
	return fmt.Sprintf("%s: transition rejected for person %q", e.Code, e.PersonID)
}

// Check decides whether a proposed event is legal against a person's
// current occupancy. It returns nil when the transition is allowed and a
// *RuleError naming the violated precondition otherwise.
//
// The decision depends only on the occupancy before the event, so the
// same table applies whether the log holds zero records or a million.
func Check(personID string, cur Occupancy, action ledger.Action, roomID string) error {
	switch action {
	case ledger.ActionEnter:
		if cur.Inside {
			return &RuleError{Code: CodeAlreadyInside, PersonID: personID, RoomID: roomID, Current: cur.Room}
		}
		if roomID == ledger.NoRoom {
			return &RuleError{Code: CodeRoomRequired, PersonID: personID, RoomID: roomID}
		}
	case ledger.ActionMove:
		if !cur.Inside {
			return &RuleError{Code: CodeNotInside, PersonID: personID, RoomID: roomID}
		}
		if roomID == ledger.NoRoom {
			return &RuleError{Code: CodeRoomRequired, PersonID: personID, RoomID: roomID}
		}
		if roomID == cur.Room {
			return &RuleError{Code: CodeSameRoom, PersonID: personID, RoomID: roomID, Current: cur.Room}
		}
	case ledger.ActionExit:
		if !cur.Inside {
			return &RuleError{Code: CodeNotInside, PersonID: personID, RoomID: roomID}
		}
		if roomID != ledger.NoRoom && roomID != cur.Room {
			return &RuleError{Code: CodeRoomMismatch, PersonID: personID, RoomID: roomID, Current: cur.Room}
		}
	}
	return nil
}
