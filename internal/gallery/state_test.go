package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WhosEdo/gallerylog/internal/ledger"
)

func rec(person string, action ledger.Action, room string) ledger.Record {
	return ledger.Record{
		Timestamp: "1700000000",
		ActorID:   "guard_alex",
		PersonID:  person,
		Action:    action,
		RoomID:    room,
	}
}

func TestReplay_Empty(t *testing.T) {
	state := Replay(nil)
	require.Empty(t, state)

	// Unknown people default to outside.
	assert.Equal(t, Occupancy{}, state.Of("emp001"))
}

func TestReplay_LastRecordWins(t *testing.T) {
	state := Replay([]ledger.Record{
		rec("emp001", ledger.ActionEnter, "lobby"),
		rec("emp001", ledger.ActionMove, "gallery1"),
		rec("emp001", ledger.ActionMove, "vault"),
	})

	assert.Equal(t, Occupancy{Inside: true, Room: "vault"}, state.Of("emp001"))
}

func TestReplay_ExitClearsRoom(t *testing.T) {
	state := Replay([]ledger.Record{
		rec("emp001", ledger.ActionEnter, "lobby"),
		rec("emp001", ledger.ActionExit, "-"),
	})

	assert.Equal(t, Occupancy{}, state.Of("emp001"))
}

func TestReplay_TracksPeopleIndependently(t *testing.T) {
	state := Replay([]ledger.Record{
		rec("emp001", ledger.ActionEnter, "lobby"),
		rec("emp002", ledger.ActionEnter, "vault"),
		rec("emp001", ledger.ActionExit, "-"),
	})

	assert.Equal(t, Occupancy{}, state.Of("emp001"))
	assert.Equal(t, Occupancy{Inside: true, Room: "vault"}, state.Of("emp002"))
}

func TestReplay_OrderSensitive(t *testing.T) {
	enterThenExit := Replay([]ledger.Record{
		rec("emp001", ledger.ActionEnter, "lobby"),
		rec("emp001", ledger.ActionExit, "-"),
	})
	exitThenEnter := Replay([]ledger.Record{
		rec("emp001", ledger.ActionExit, "-"),
		rec("emp001", ledger.ActionEnter, "lobby"),
	})

	assert.False(t, enterThenExit.Of("emp001").Inside)
	assert.True(t, exitThenEnter.Of("emp001").Inside)
}

func TestReplay_Idempotent(t *testing.T) {
	records := []ledger.Record{
		rec("emp001", ledger.ActionEnter, "lobby"),
		rec("emp002", ledger.ActionEnter, "gallery1"),
		rec("emp001", ledger.ActionMove, "gallery2"),
		rec("emp002", ledger.ActionExit, "gallery1"),
	}

	first := Replay(records)
	second := Replay(records)
	assert.Equal(t, first, second)
}
