/*
Package rudder provides a flow-ownership tree with reactive locale
propagation: lifetime-scoped flow nodes with deterministic bottom-up
teardown, and a process-wide locale broadcaster that delivers changes to
lifecycle-bound subscription scopes.

rudder is designed to be embedded as the navigation and localization core
of an application; it renders nothing and knows nothing about screens
beyond the opaque surfaces flows own.

# Flows

A Flow owns a navigation surface and an ordered list of child flows:

	root := rudder.NewFlow(window)
	root.Start()

	settings := rudder.NewFlow(settingsStack)
	if err := root.AddChild(settings); err != nil {
	    // already owned elsewhere, or the attach would create a cycle
	}

Teardown is post-order, idempotent and never fails. Tearing down a flow
tears down its whole subtree, children strictly before parents, cancels
the flow's subscriptions, and detaches the flow from its parent:

	root.Teardown()

# Locale broadcasting

A Broadcaster holds the single active locale, persists it through a Store,
and notifies live subscriptions in registration order on one designated
dispatch goroutine:

	store := rudder.NewFileStore("settings.yaml")
	bc, err := rudder.New(store)

	sub, err := bc.Subscribe(flow.Scope(), func(l rudder.Locale) {
	    refresh(l) // delivered immediately with the current value
	})

	bc.SetLocale(rudder.LocaleTurkish) // distinct-until-changed

Subscriptions made through a flow's scope are canceled when the flow tears
down: once Teardown returns, no further callback for that scope will run.

# String resolution

A Resolver maps lookup keys to display strings per locale, falling back to
a default bundle and finally to a visible sentinel, so a missing
translation degrades instead of crashing:

	en, _ := rudder.LoadBundleFile("locales/en.yaml")
	tr, _ := rudder.LoadBundleFile("locales/tr.toml")

	res := rudder.NewResolver(en)
	res.Add(tr)

	res.Resolve("greeting", rudder.LocaleTurkish)
	res.Resolvef("welcome", rudder.LocaleTurkish, user.Name)

# Observability

Lifecycle and locale events are emitted as capitan signals (FlowStarted,
LocaleChanged, TranslationMissing, ...) with typed field keys; hook them
for logging or metrics without coupling rudder to an output.
*/
package rudder
