package domain

// Status is the state of the current round.
type Status int

const (
	StatusIdle    Status = iota // no round armed
	StatusWaiting               // target shown, not ready yet; a click is early
	StatusReady                 // target changed color; a click counts
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusReady:
		return "ready"
	default:
		return "idle"
	}
}

// Outcome is what a controller operation did to the round.
type Outcome int

const (
	OutcomeNone    Outcome = iota
	OutcomeReady           // round moved to StatusReady
	OutcomeEarly           // clicked before ready
	OutcomeTimeout         // no click within the timeout window
	OutcomeValid           // clicked while ready; a time was recorded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeEarly:
		return "early"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeValid:
		return "valid"
	default:
		return "none"
	}
}

// Message is the notification shown to the player for the outcome, if any.
func (o Outcome) Message() string {
	switch o {
	case OutcomeEarly:
		return "Too early! Wait for green."
	case OutcomeTimeout:
		return "Too slow! Try again."
	default:
		return ""
	}
}

// Resolves reports whether the outcome ends the current attempt.
func (o Outcome) Resolves() bool {
	return o == OutcomeEarly || o == OutcomeTimeout || o == OutcomeValid
}
