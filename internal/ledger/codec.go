package ledger

import "strings"

// fieldCount is the exact number of pipe-delimited fields per line.
const fieldCount = 5

// Line is the result of parsing one raw log line.
//
// A line is either Valid with its decoded Record, or malformed. Malformed
// lines carry no diagnostic detail on purpose: callers skip them and move
// on, they never fail the whole read.
type Line struct {
	Record Record
	Valid  bool
}

// FormatLine renders a record in canonical on-disk form, including the
// trailing newline. The caller is responsible for having validated the
// fields; FormatLine passes them through untouched.
func FormatLine(r Record) string {
	var b strings.Builder
	b.Grow(len(r.Timestamp) + len(r.ActorID) + len(r.PersonID) + len(r.Action) + len(r.RoomID) + fieldCount)
	b.WriteString(r.Timestamp)
	b.WriteByte('|')
	b.WriteString(r.ActorID)
	b.WriteByte('|')
	b.WriteString(r.PersonID)
	b.WriteByte('|')
	b.WriteString(string(r.Action))
	b.WriteByte('|')
	b.WriteString(r.RoomID)
	b.WriteByte('\n')
	return b.String()
}

// ParseLine decodes one raw line from the log.
//
// Trailing \r and \n are stripped before splitting, so CRLF-damaged files
// still parse. The line must split into exactly five fields and every
// field must satisfy its grammar; anything else yields a malformed Line.
func ParseLine(raw string) Line {
	s := strings.TrimRight(raw, "\r\n")

	parts := strings.Split(s, "|")
	if len(parts) != fieldCount {
		return Line{}
	}

	ts, actor, person, action, room := parts[0], parts[1], parts[2], parts[3], parts[4]

	if !ValidTimestamp(ts) {
		return Line{}
	}
	if !ValidID(actor) {
		return Line{}
	}
	if !ValidID(person) {
		return Line{}
	}
	if !ValidAction(action) {
		return Line{}
	}
	if !ValidRoom(room) {
		return Line{}
	}

	return Line{
		Record: Record{
			Timestamp: ts,
			ActorID:   actor,
			PersonID:  person,
			Action:    Action(action),
			RoomID:    room,
		},
		Valid: true,
	}
}

// ParseAll decodes a whole log body, returning the valid records in file
// order and the count of lines that failed to parse. A trailing empty
// segment after the final newline is not counted as malformed.
func ParseAll(body string) (records []Record, malformed int) {
	if body == "" {
		return nil, 0
	}
	for _, raw := range strings.Split(body, "\n") {
		if raw == "" {
			continue
		}
		line := ParseLine(raw)
		if !line.Valid {
			malformed++
			continue
		}
		records = append(records, line.Record)
	}
	return records, malformed
}
