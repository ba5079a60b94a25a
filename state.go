package rudder

// FlowState represents the lifecycle state of a Flow.
type FlowState int32

const (
	// FlowCreated indicates the Flow has been constructed but not yet
	// started.
	FlowCreated FlowState = iota

	// FlowActive indicates the Flow has been started and is live.
	FlowActive

	// FlowTornDown indicates the Flow has been torn down. No transition
	// leaves this state.
	FlowTornDown
)

// String returns the string representation of the state.
func (s FlowState) String() string {
	switch s {
	case FlowCreated:
		return "created"
	case FlowActive:
		return "active"
	case FlowTornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}
