package rudder

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
)

// Scope is a lifetime-bound container of locale callbacks. It is owned by
// exactly one host (a Flow, a screen) and torn down when the host dies,
// guaranteeing that no contained callback runs afterwards.
//
// Liveness is checked under the scope mutex at dispatch time, not at
// scheduling time: once Teardown returns, no further callback from this
// scope will run, even for a notification that was already in flight.
type Scope struct {
	mu     sync.Mutex
	closed bool
	subs   []*Subscription
}

// Subscription is a handle to one registered callback, usable for manual
// cancellation ahead of the owning scope's teardown.
type Subscription struct {
	scope    *Scope
	fn       func(Locale)
	canceled bool // guarded by scope.mu
}

// NewScope creates an empty, live scope.
func NewScope() *Scope {
	return &Scope{}
}

// Subscribe registers fn and returns its handle. Registration has no side
// effect beyond bookkeeping; fn is only invoked by a dispatcher. After
// Teardown, Subscribe fails with ErrScopeClosed.
func (s *Scope) Subscribe(fn func(Locale)) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrScopeClosed
	}
	sub := &Subscription{scope: s, fn: fn}
	s.subs = append(s.subs, sub)
	return sub, nil
}

// Teardown permanently deactivates every subscription and clears the set.
// Idempotent. A dispatch that passed its liveness check before Teardown
// was called may still complete; none will start afterwards.
func (s *Scope) Teardown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.canceled = true
	}
	s.subs = nil
	s.mu.Unlock()

	capitan.Emit(context.Background(), ScopeTornDown)
}

// Closed reports whether the scope has been torn down.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Cancel marks the subscription inactive. Idempotent; safe after the
// owning scope's teardown.
func (sub *Subscription) Cancel() {
	s := sub.scope
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.canceled {
		return
	}
	sub.canceled = true
	for i, other := range s.subs {
		if other == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
}

// alive reports whether the subscription may still be dispatched to.
func (sub *Subscription) alive() bool {
	sub.scope.mu.Lock()
	defer sub.scope.mu.Unlock()
	return !sub.canceled
}

// dispatch invokes the callback if the subscription is still live. The
// liveness check happens under the scope mutex; the callback itself runs
// outside it so callbacks may cancel or tear down freely.
func (sub *Subscription) dispatch(l Locale) {
	if sub.alive() {
		sub.fn(l)
	}
}
