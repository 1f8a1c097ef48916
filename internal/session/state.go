// Package session holds conversation identity and the lifecycle state
// machine for one subprocess-backed conversation.
package session

// Phase is the lifecycle state of a session's subprocess relationship.
type Phase string

const (
	// PhaseIdle means no subprocess is associated with the session.
	PhaseIdle Phase = "idle"
	// PhaseStarting means a subprocess spawn has been requested.
	PhaseStarting Phase = "starting"
	// PhaseRunning means the subprocess is alive with no outstanding request.
	PhaseRunning Phase = "running"
	// PhaseWaiting means a request was sent and its result has not arrived.
	PhaseWaiting Phase = "waiting"
)

// String implements fmt.Stringer.
func (p Phase) String() string { return string(p) }

// State is the mutable record of one conversation: its lifecycle phase,
// its identity, and how many messages it has decoded. State is owned by a
// single engine and mutated only from its handler path; it does no
// locking of its own.
type State struct {
	phase          Phase
	conversationID string
	messageCount   int
}

// NewState creates an Idle state with no conversation identity.
func NewState() *State {
	return &State{phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Waiting reports whether a request is outstanding. Hosts drive spinner
// animations from this flag.
func (s *State) Waiting() bool {
	return s.phase == PhaseWaiting
}

// MarkStarting records that a subprocess spawn was requested.
func (s *State) MarkStarting() {
	s.phase = PhaseStarting
}

// MarkRunning records that the subprocess is alive and ready.
func (s *State) MarkRunning() {
	s.phase = PhaseRunning
}

// MarkWaiting records that a user message was sent and a result is now
// outstanding.
func (s *State) MarkWaiting() {
	s.phase = PhaseWaiting
}

// FinishTurn records receipt of a result or error for the outstanding
// request, returning to Running. Out-of-band results while not Waiting
// leave the phase unchanged.
func (s *State) FinishTurn() {
	if s.phase == PhaseWaiting {
		s.phase = PhaseRunning
	}
}

// CaptureConversation stores the conversation id from the first init
// message of a subprocess. It is captured at most once; later captures
// are ignored until Reset. Returns true when the id was stored.
func (s *State) CaptureConversation(id string) bool {
	if s.conversationID != "" || id == "" {
		return false
	}

	s.conversationID = id

	return true
}

// ConversationID returns the captured conversation id, if any.
func (s *State) ConversationID() (string, bool) {
	if s.conversationID == "" {
		return "", false
	}

	return s.conversationID, true
}

// CountMessage increments the decoded-message counter.
func (s *State) CountMessage() {
	s.messageCount++
}

// MessageCount returns how many inbound messages decoded successfully
// since the last reset.
func (s *State) MessageCount() int {
	return s.messageCount
}

// Reset returns the session to the empty Idle state: no phase history, no
// conversation identity, zero messages. Resetting an Idle session is a
// no-op with identical results.
func (s *State) Reset() {
	s.phase = PhaseIdle
	s.conversationID = ""
	s.messageCount = 0
}
