package rudder

import "errors"

// Structural and lifecycle errors. All are local, recoverable conditions
// returned to the caller; match with errors.Is.
var (
	// ErrOwnershipConflict is returned by AddChild when the child already
	// has a different parent. Remove it from the old parent first.
	ErrOwnershipConflict = errors.New("flow already owned by another parent")

	// ErrNotAChild is returned by RemoveChild when the flow is not a
	// child of the receiver.
	ErrNotAChild = errors.New("flow is not a child of this parent")

	// ErrCycleDetected is returned by AddChild when the attachment would
	// make a flow its own transitive ancestor.
	ErrCycleDetected = errors.New("attachment would create an ownership cycle")

	// ErrFlowTornDown is returned by tree mutations involving a flow that
	// has already been torn down.
	ErrFlowTornDown = errors.New("flow has been torn down")

	// ErrScopeClosed is returned by Subscribe after the scope has been
	// torn down. Subscribing to a dead scope is a lifecycle bug; failing
	// fast surfaces it at the call site.
	ErrScopeClosed = errors.New("scope has been torn down")

	// ErrUnsupportedLocale is returned when a locale value is outside the
	// supported set.
	ErrUnsupportedLocale = errors.New("unsupported locale")
)
