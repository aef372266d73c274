package session

// EventKind identifies what happened in a session.
type EventKind int

const (
	// EventMoved fires after a move is applied to the board.
	EventMoved EventKind = iota
	// EventRejected fires when a suggested move is refused.
	EventRejected
	// EventStateChanged fires when classification changes the state or the
	// result, for example on check or checkmate.
	EventStateChanged
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventRejected:
		return "rejected"
	case EventStateChanged:
		return "state"
	}
	return "unknown"
}

// Event is delivered to observers. Snapshot reflects the session after the event.
type Event struct {
	Kind      EventKind
	Snapshot  Snapshot
	Record    *MoveRecord
	Rejection *Rejection
}

// Observer receives session events. Observers run on the session's goroutine
// after its lock is released and may call Snapshot.
type Observer func(Event)
