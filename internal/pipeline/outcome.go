package pipeline

type State int

const (
	StateSucceeded State = iota + 1
	StateHalted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateSucceeded:
		return "succeeded"
	case StateHalted:
		return "halted"
	case StateAborted:
		return "aborted"
	default:
		return "pending"
	}
}

// Outcome is the terminal state of one Run. Exactly one of Data, Halt and
// Failure is meaningful, according to State.
type Outcome struct {
	Plan    string
	State   State
	Data    any
	Halt    *Halt
	Failure *Failure

	// Completed lists stages that returned SUCCESS, in completion order.
	Completed []string
}
