package rudder

import "github.com/zoobzio/capitan"

// Field keys for rudder events.
var (
	// KeyFlowID is the identity of the flow an event concerns.
	KeyFlowID = capitan.NewStringKey("flow_id")

	// KeyParentID is the identity of the parent flow.
	KeyParentID = capitan.NewStringKey("parent_id")

	// KeyChildID is the identity of the child flow.
	KeyChildID = capitan.NewStringKey("child_id")

	// KeyLocale is a locale code.
	KeyLocale = capitan.NewStringKey("locale")

	// KeyOldLocale is the locale before a change.
	KeyOldLocale = capitan.NewStringKey("old_locale")

	// KeyNewLocale is the locale after a change.
	KeyNewLocale = capitan.NewStringKey("new_locale")

	// KeyMessageKey is the lookup key of a translation.
	KeyMessageKey = capitan.NewStringKey("message_key")

	// KeySubscribers is the number of subscriptions targeted by a delivery.
	KeySubscribers = capitan.NewIntKey("subscribers")

	// KeyStoreKey is the persistence key the broadcaster uses.
	KeyStoreKey = capitan.NewStringKey("store_key")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
