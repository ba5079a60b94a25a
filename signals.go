package rudder

import "github.com/zoobzio/capitan"

// Flow lifecycle signals.
var (
	// FlowStarted is emitted when a Flow transitions to active.
	FlowStarted = capitan.NewSignal(
		"rudder.flow.started",
		"Flow started",
	)

	// FlowStopped is emitted when a Flow completes teardown.
	FlowStopped = capitan.NewSignal(
		"rudder.flow.stopped",
		"Flow torn down",
	)

	// FlowChildAttached is emitted when a child is attached to a parent.
	FlowChildAttached = capitan.NewSignal(
		"rudder.flow.child.attached",
		"Child flow attached",
	)

	// FlowChildDetached is emitted when a child is detached from a parent.
	FlowChildDetached = capitan.NewSignal(
		"rudder.flow.child.detached",
		"Child flow detached",
	)
)

// Locale lifecycle signals.
var (
	// LocaleLoaded is emitted when a Broadcaster resolves its initial
	// locale from the store or the default.
	LocaleLoaded = capitan.NewSignal(
		"rudder.locale.loaded",
		"Initial locale loaded",
	)

	// LocaleChanged is emitted when the active locale changes.
	LocaleChanged = capitan.NewSignal(
		"rudder.locale.changed",
		"Active locale changed",
	)

	// LocaleRejected is emitted when a locale value outside the supported
	// set is rejected.
	LocaleRejected = capitan.NewSignal(
		"rudder.locale.rejected",
		"Unsupported locale rejected",
	)

	// LocalePersistFailed is emitted when saving the locale to the store
	// fails.
	LocalePersistFailed = capitan.NewSignal(
		"rudder.locale.persist.failed",
		"Locale persistence failed",
	)
)

// Scope and resolution signals.
var (
	// ScopeTornDown is emitted when a subscription scope is torn down.
	ScopeTornDown = capitan.NewSignal(
		"rudder.scope.torn_down",
		"Subscription scope torn down",
	)

	// TranslationMissing is emitted when a key resolves to the sentinel
	// because neither the active nor the fallback bundle contains it.
	TranslationMissing = capitan.NewSignal(
		"rudder.resolve.missing",
		"Translation missing in all bundles",
	)
)
