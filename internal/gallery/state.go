package gallery

import "github.com/WhosEdo/gallerylog/internal/ledger"

// Occupancy is one person's derived state. The zero value means outside,
// which is every person's state before their first record.
type Occupancy struct {
	Inside bool
	Room   string
}

// State maps personId to current occupancy. It is derived, never
// persisted: every operation recomputes it from the full log.
type State map[string]Occupancy

// Of returns the occupancy for a person, defaulting to outside for a
// person the log has never mentioned.
func (s State) Of(personID string) Occupancy {
	return s[personID]
}

// Apply folds a single record into the state. ENTER and MOVE both place
// the person in the record's room; EXIT places them outside. Records are
// trusted here — validity was enforced when they were written.
func (s State) Apply(r ledger.Record) {
	switch r.Action {
	case ledger.ActionEnter, ledger.ActionMove:
		s[r.PersonID] = Occupancy{Inside: true, Room: r.RoomID}
	case ledger.ActionExit:
		s[r.PersonID] = Occupancy{}
	}
}

// Replay reconstructs occupancy for every person mentioned in the
// records, applied strictly in order. The result is a pure function of
// the record sequence.
func Replay(records []ledger.Record) State {
	s := make(State)
	for _, r := range records {
		s.Apply(r)
	}
	return s
}
