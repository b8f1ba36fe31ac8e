package store

import (
	"context"
	"os"
	"strconv"

	"github.com/WhosEdo/gallerylog/internal/auth"
	"github.com/WhosEdo/gallerylog/internal/gallery"
	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// AppendRequest is one proposed event. The actor is not part of the
// request: it is whatever identity the secret authenticates to.
type AppendRequest struct {
	Secret   string
	PersonID string
	Action   string
	RoomID   string
}

// Append runs the full append pipeline for one event:
//
//  1. syntactic validation of the request fields, before credentials or
//     the filesystem are touched
//  2. authentication for the append operation
//  3. exclusive lock on the log file
//  4. full replay to reconstruct the person's occupancy
//  5. transition validation against that occupancy
//  6. format and write the record as a single append
//
// Any failure short-circuits the rest, and nothing is ever written unless
// every step passed. The appended record is returned on success.
func (s *Store) Append(ctx context.Context, req AppendRequest) (ledger.Record, error) {
	if err := ledger.CheckFields(req.PersonID, req.Action, req.RoomID); err != nil {
		return ledger.Record{}, err
	}

	actor, err := s.creds.Authenticate(req.Secret, auth.OpAppend)
	if err != nil {
		return ledger.Record{}, err
	}

	release, err := s.acquire(ctx, true)
	if err != nil {
		return ledger.Record{}, err
	}
	defer release()

	records, err := s.replay()
	if err != nil {
		return ledger.Record{}, err
	}

	state := gallery.Replay(records)
	action := ledger.Action(req.Action)
	if err := gallery.Check(req.PersonID, state.Of(req.PersonID), action, req.RoomID); err != nil {
		return ledger.Record{}, err
	}

	rec := ledger.Record{
		Timestamp: strconv.FormatInt(s.clock.Now().Unix(), 10),
		ActorID:   actor.ActorID,
		PersonID:  req.PersonID,
		Action:    action,
		RoomID:    req.RoomID,
	}

	if err := s.writeLine(ledger.FormatLine(rec)); err != nil {
		return ledger.Record{}, err
	}

	s.logger.Info("record appended",
		"actor", rec.ActorID,
		"person", rec.PersonID,
		"action", rec.Action,
		"room", rec.RoomID,
	)
	return rec, nil
}

// writeLine appends one complete line to the log file. O_APPEND makes
// the write a single atomic extension of the file; the exclusive lock
// held by the caller keeps other writers out entirely.
func (s *Store) writeLine(line string) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, logFileMode)
	if err != nil {
		return &OpError{Op: "failed to open log file for appending", Err: err}
	}

	n, err := f.WriteString(line)
	if err == nil && n != len(line) {
		err = &OpError{Op: "short write to log file"}
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		if _, ok := err.(*OpError); ok {
			return err
		}
		return &OpError{Op: "failed to write log entry", Err: err}
	}
	return nil
}
