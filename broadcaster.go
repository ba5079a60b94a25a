package rudder

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
)

// DefaultStoreKey is the key under which the active locale is persisted.
const DefaultStoreKey = "locale"

// Broadcaster holds the single current locale and notifies live
// subscriptions when it changes.
//
// Delivery runs on one designated dispatch goroutine: notifications are
// delivered in SetLocale call order, and within one notification the
// subscriptions are invoked in registration order. SetLocale and Subscribe
// may be called from any goroutine; they return after scheduling delivery,
// not after delivery completes. Distinct-change detection and persistence
// happen synchronously before SetLocale returns.
//
// A Broadcaster lives for the life of the process; it has no teardown.
type Broadcaster struct {
	store    Store
	key      string
	syncMode bool

	mu      sync.Mutex
	current Locale
	subs    []*Subscription
	queue   []delivery
	wake    chan struct{}
}

// delivery is one scheduled notification. Targets are snapshotted at
// schedule time; liveness is re-checked at dispatch time.
type delivery struct {
	value   Locale
	targets []*Subscription
	done    chan struct{}
}

// config holds construction options for a Broadcaster.
type broadcasterConfig struct {
	key      string
	syncMode bool
}

// BroadcasterOption configures a Broadcaster.
type BroadcasterOption func(*broadcasterConfig)

// WithStoreKey overrides the persistence key.
func WithStoreKey(key string) BroadcasterOption {
	return func(c *broadcasterConfig) {
		c.key = key
	}
}

// WithSyncMode delivers notifications inline on the caller goroutine
// instead of the dispatch goroutine, making tests deterministic. Sync-mode
// broadcasters keep every ordering guarantee as long as callers are
// single-threaded.
func WithSyncMode() BroadcasterOption {
	return func(c *broadcasterConfig) {
		c.syncMode = true
	}
}

// New creates a Broadcaster backed by the given store. The persisted
// locale is loaded if present and parsable; otherwise the broadcaster
// starts at DefaultLocale. A store read failure is returned as an error;
// an unparsable persisted value degrades to the default instead, since a
// stale file must not brick locale switching.
func New(store Store, opts ...BroadcasterOption) (*Broadcaster, error) {
	cfg := &broadcasterConfig{key: DefaultStoreKey}
	for _, opt := range opts {
		opt(cfg)
	}

	current := DefaultLocale
	raw, ok, err := store.Load(cfg.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted locale: %w", err)
	}
	if ok {
		if l, perr := ParseLocale(raw); perr == nil {
			current = l
		} else {
			capitan.Emit(context.Background(), LocaleRejected,
				KeyLocale.Field(raw),
				KeyError.Field(perr.Error()),
			)
		}
	}

	b := &Broadcaster{
		store:    store,
		key:      cfg.key,
		syncMode: cfg.syncMode,
		current:  current,
		wake:     make(chan struct{}, 1),
	}
	if !b.syncMode {
		go b.dispatchLoop()
	}

	capitan.Emit(context.Background(), LocaleLoaded,
		KeyLocale.Field(current.String()),
		KeyStoreKey.Field(cfg.key),
	)
	return b, nil
}

var (
	defaultOnce        sync.Once
	defaultBroadcaster *Broadcaster
)

// Default returns the process-wide Broadcaster, lazily initialized on
// first access with a MemoryStore. It lives until process exit. Prefer
// injecting a Broadcaster built with New; Default exists for hosts with
// no composition root.
func Default() *Broadcaster {
	defaultOnce.Do(func() {
		defaultBroadcaster, _ = New(NewMemoryStore())
	})
	return defaultBroadcaster
}

// Current returns the active locale. Never blocks.
func (b *Broadcaster) Current() Locale {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// SetLocale changes the active locale. Values outside the supported set
// are rejected with ErrUnsupportedLocale and leave state untouched.
// Setting the current value again is a no-op with no notification.
// Otherwise the value is persisted, the current value updated, and one
// notification scheduled to every live subscription in registration order.
// A persist failure aborts the change.
func (b *Broadcaster) SetLocale(l Locale) error {
	if !l.Supported() {
		capitan.Emit(context.Background(), LocaleRejected,
			KeyLocale.Field(l.String()),
		)
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, l)
	}

	b.mu.Lock()
	if l == b.current {
		b.mu.Unlock()
		return nil
	}
	if err := b.store.Save(b.key, l.String()); err != nil {
		b.mu.Unlock()
		capitan.Emit(context.Background(), LocalePersistFailed,
			KeyLocale.Field(l.String()),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("failed to persist locale: %w", err)
	}
	old := b.current
	b.current = l
	b.prune()
	targets := make([]*Subscription, len(b.subs))
	copy(targets, b.subs)

	if b.syncMode {
		b.mu.Unlock()
		b.emitChanged(old, l, len(targets))
		for _, t := range targets {
			t.dispatch(l)
		}
		return nil
	}

	b.queue = append(b.queue, delivery{value: l, targets: targets})
	b.mu.Unlock()
	b.signalWake()
	b.emitChanged(old, l, len(targets))
	return nil
}

// Subscribe registers fn inside scope and immediately schedules one
// delivery of the current value, so a late subscriber observes present
// state without waiting for the next change. Fails with ErrScopeClosed if
// the scope is already torn down.
func (b *Broadcaster) Subscribe(scope *Scope, fn func(Locale)) (*Subscription, error) {
	sub, err := scope.Subscribe(fn)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.prune()
	b.subs = append(b.subs, sub)
	current := b.current

	if b.syncMode {
		b.mu.Unlock()
		sub.dispatch(current)
		return sub, nil
	}

	b.queue = append(b.queue, delivery{value: current, targets: []*Subscription{sub}})
	b.mu.Unlock()
	b.signalWake()
	return sub, nil
}

// Flush blocks until every notification scheduled before the call has been
// dispatched. No-op in sync mode. Intended for tests and shutdown paths
// that need a delivery barrier.
func (b *Broadcaster) Flush() {
	if b.syncMode {
		return
	}
	done := make(chan struct{})
	b.mu.Lock()
	b.queue = append(b.queue, delivery{done: done})
	b.mu.Unlock()
	b.signalWake()
	<-done
}

// Follow applies external store changes through SetLocale. It requires the
// store to implement StoreWatcher and returns an error otherwise. The feed
// stops when ctx is canceled. Distinct-change filtering breaks the
// write-then-watch echo of the broadcaster's own saves.
func (b *Broadcaster) Follow(ctx context.Context) error {
	w, ok := b.store.(StoreWatcher)
	if !ok {
		return fmt.Errorf("store %T does not support watching", b.store)
	}
	ch, err := w.Watch(ctx, b.key)
	if err != nil {
		return fmt.Errorf("failed to watch store: %w", err)
	}

	go func() {
		for raw := range ch {
			l, perr := ParseLocale(raw)
			if perr != nil {
				capitan.Emit(ctx, LocaleRejected,
					KeyLocale.Field(raw),
					KeyError.Field(perr.Error()),
				)
				continue
			}
			_ = b.SetLocale(l) //nolint:errcheck // Rejections already signaled
		}
	}()
	return nil
}

// prune drops dead subscriptions from the registration list, bounding its
// growth on long-lived broadcasters whose subscribers come and go between
// locale changes. Called with b.mu held.
func (b *Broadcaster) prune() {
	live := b.subs[:0]
	for _, s := range b.subs {
		if s.alive() {
			live = append(live, s)
		}
	}
	b.subs = live
}

// signalWake nudges the dispatch goroutine. The buffered channel keeps at
// least one pending wake, so an enqueue racing the drain loop is never
// lost.
func (b *Broadcaster) signalWake() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// dispatchLoop is the designated delivery goroutine. It drains the queue
// in FIFO order; each target's liveness is checked at dispatch time.
func (b *Broadcaster) dispatchLoop() {
	for range b.wake {
		for {
			b.mu.Lock()
			if len(b.queue) == 0 {
				b.mu.Unlock()
				break
			}
			d := b.queue[0]
			b.queue = b.queue[1:]
			b.mu.Unlock()

			for _, t := range d.targets {
				t.dispatch(d.value)
			}
			if d.done != nil {
				close(d.done)
			}
		}
	}
}

func (b *Broadcaster) emitChanged(old, next Locale, targets int) {
	capitan.Emit(context.Background(), LocaleChanged,
		KeyOldLocale.Field(old.String()),
		KeyNewLocale.Field(next.String()),
		KeySubscribers.Field(targets),
	)
}
