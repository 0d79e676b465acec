package client

// State is the connection lifecycle state of a Client.
type State int

// Lifecycle states. Transitions are Closed -> Connecting -> Connected and
// back to Closed on disconnect or connection failure.
const (
	StateClosed State = iota
	StateConnecting
	StateConnected
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}
