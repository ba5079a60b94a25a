package rudder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
)

// Flow is one node in the flow-ownership tree. It exclusively owns an
// opaque navigation surface and an ordered list of child flows; the parent
// reference is a non-owning back-pointer kept bidirectionally consistent
// with the parent's child list.
//
// The tree is not safe for concurrent mutation: AddChild, RemoveChild,
// Start and Teardown are expected to run on one goroutine, matching the
// single-threaded navigation model they represent. The flow's Scope is the
// exception; it is safe to tear down from any goroutine.
type Flow struct {
	id      uuid.UUID
	surface any
	state   FlowState

	parent   *Flow
	children []*Flow

	scope    *Scope
	cleanups []func()
}

// NewFlow creates a flow that owns the given navigation surface. The
// surface is opaque to rudder; it is whatever handle the presentation
// layer navigates through.
func NewFlow(surface any) *Flow {
	return &Flow{
		id:      uuid.New(),
		surface: surface,
		scope:   NewScope(),
	}
}

// ID returns the flow's stable identity.
func (f *Flow) ID() uuid.UUID {
	return f.id
}

// Surface returns the navigation surface this flow owns.
func (f *Flow) Surface() any {
	return f.surface
}

// State returns the flow's lifecycle state.
func (f *Flow) State() FlowState {
	return f.state
}

// Parent returns the owning parent, or nil for a root or detached flow.
func (f *Flow) Parent() *Flow {
	return f.parent
}

// Children returns the owned children in insertion order. The returned
// slice is a copy.
func (f *Flow) Children() []*Flow {
	out := make([]*Flow, len(f.children))
	copy(out, f.children)
	return out
}

// Scope returns the flow's own subscription scope. It is torn down with
// the flow, so any subscription made through it dies with the flow.
func (f *Flow) Scope() *Scope {
	return f.scope
}

// Start transitions the flow from created to active. A no-op in any other
// state.
func (f *Flow) Start() {
	if f.state != FlowCreated {
		return
	}
	f.state = FlowActive
	capitan.Emit(context.Background(), FlowStarted,
		KeyFlowID.Field(f.id.String()),
	)
}

// AddChild attaches child to f, appending it to the child list. The child
// must not be owned by a different parent (ErrOwnershipConflict; remove it
// there first, silent reparenting is not supported), must not be an
// ancestor of f (ErrCycleDetected), and neither flow may be torn down
// (ErrFlowTornDown). Re-attaching an existing child of f is a no-op.
func (f *Flow) AddChild(child *Flow) error {
	if f.state == FlowTornDown || child.state == FlowTornDown {
		return fmt.Errorf("%w: cannot attach", ErrFlowTornDown)
	}
	if child.parent == f {
		return nil
	}
	if child.parent != nil {
		return fmt.Errorf("%w: flow %s is owned by %s",
			ErrOwnershipConflict, child.id, child.parent.id)
	}
	if child == f || f.hasAncestor(child) {
		return fmt.Errorf("%w: flow %s is an ancestor of %s",
			ErrCycleDetected, child.id, f.id)
	}

	child.parent = f
	f.children = append(f.children, child)
	capitan.Emit(context.Background(), FlowChildAttached,
		KeyParentID.Field(f.id.String()),
		KeyChildID.Field(child.id.String()),
	)
	return nil
}

// RemoveChild detaches child from f without tearing it down; the child may
// be reparented elsewhere afterwards. Fails with ErrNotAChild if child is
// not in f's child list.
func (f *Flow) RemoveChild(child *Flow) error {
	for i, c := range f.children {
		if c == child {
			f.children = append(f.children[:i], f.children[i+1:]...)
			child.parent = nil
			capitan.Emit(context.Background(), FlowChildDetached,
				KeyParentID.Field(f.id.String()),
				KeyChildID.Field(child.id.String()),
			)
			return nil
		}
	}
	return fmt.Errorf("%w: flow %s is not a child of %s",
		ErrNotAChild, child.id, f.id)
}

// OnTeardown registers fn to run when the flow tears down, after its
// children and scope are gone. Hooks run in registration order. If the
// flow is already torn down, fn runs immediately.
func (f *Flow) OnTeardown(fn func()) {
	if f.state == FlowTornDown {
		fn()
		return
	}
	f.cleanups = append(f.cleanups, fn)
}

// Teardown tears down the subtree rooted at f: every child first, in
// child order, then f's own scope, cleanup hooks and state, then the edge
// to f's parent. Post-order guarantees no active flow is ever left under a
// torn-down parent. Idempotent; never fails.
func (f *Flow) Teardown() {
	if f.state == FlowTornDown {
		return
	}

	// Children detach themselves from f.children as they tear down, so
	// iterate over a snapshot.
	for _, child := range f.Children() {
		child.Teardown()
	}

	f.scope.Teardown()
	for _, fn := range f.cleanups {
		fn()
	}
	f.cleanups = nil
	f.state = FlowTornDown
	f.children = nil

	if f.parent != nil {
		// A leaf finishing on its own cleans up its slot; ignore the
		// lookup result since teardown must not fail.
		_ = f.parent.RemoveChild(f) //nolint:errcheck
	}

	capitan.Emit(context.Background(), FlowStopped,
		KeyFlowID.Field(f.id.String()),
	)
}

// BindLocale subscribes fn to the broadcaster through the flow's own
// scope, so the subscription is canceled when the flow tears down. The
// current locale is delivered immediately.
func (f *Flow) BindLocale(b *Broadcaster, fn func(Locale)) (*Subscription, error) {
	return b.Subscribe(f.scope, fn)
}

// hasAncestor reports whether candidate appears on f's parent chain.
func (f *Flow) hasAncestor(candidate *Flow) bool {
	for p := f.parent; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
