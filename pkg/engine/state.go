package engine

// State is the scheduler's position within one comparison cycle.
// Transitions are Idle -> Capturing -> Comparing -> Idle; a cycle
// requested while the state is not Idle is dropped, never queued.
type State int32

const (
	StateIdle State = iota
	StateCapturing
	StateComparing
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateComparing:
		return "comparing"
	default:
		return "unknown"
	}
}
