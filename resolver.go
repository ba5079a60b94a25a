package rudder

import (
	"context"
	"regexp"
	"strconv"

	"github.com/zoobzio/capitan"
)

// Bundle is the key-to-template mapping for exactly one locale.
type Bundle struct {
	locale   Locale
	messages map[string]string
}

// NewBundle creates a Bundle for locale. The message map is copied.
func NewBundle(locale Locale, messages map[string]string) *Bundle {
	m := make(map[string]string, len(messages))
	for k, v := range messages {
		m[k] = v
	}
	return &Bundle{locale: locale, messages: m}
}

// Locale returns the locale this bundle belongs to.
func (b *Bundle) Locale() Locale {
	return b.locale
}

func (b *Bundle) lookup(key string) (string, bool) {
	v, ok := b.messages[key]
	return v, ok
}

// Resolver resolves lookup keys against per-locale bundles with fallback.
// A missing translation is not an error: it degrades to a visible sentinel
// embedding the key, so a localization gap never crashes or blanks a
// screen.
type Resolver struct {
	fallback *Bundle
	bundles  map[Locale]*Bundle
}

// NewResolver creates a Resolver with the given fallback bundle. The
// fallback also serves lookups for its own locale.
func NewResolver(fallback *Bundle) *Resolver {
	r := &Resolver{
		fallback: fallback,
		bundles:  make(map[Locale]*Bundle),
	}
	r.bundles[fallback.Locale()] = fallback
	return r
}

// Add registers a bundle, replacing any existing bundle for its locale.
func (r *Resolver) Add(b *Bundle) {
	r.bundles[b.Locale()] = b
}

// Resolve returns the template for key in the active locale's bundle,
// falling back to the default bundle, then to a marked sentinel embedding
// the key. Never fails.
func (r *Resolver) Resolve(key string, active Locale) string {
	if b, ok := r.bundles[active]; ok {
		if v, found := b.lookup(key); found {
			return v
		}
	}
	if v, found := r.fallback.lookup(key); found {
		return v
	}
	capitan.Emit(context.Background(), TranslationMissing,
		KeyMessageKey.Field(key),
		KeyLocale.Field(active.String()),
	)
	return "[missing:" + key + "]"
}

// placeholderPattern matches positional placeholders like {0} and {12}.
var placeholderPattern = regexp.MustCompile(`\{(\d+)\}`)

// Resolvef resolves key like Resolve, then substitutes positional
// placeholders {0}, {1}, ... with args. Argument count mismatches never
// fail: excess arguments are ignored and missing arguments render as
// empty.
func (r *Resolver) Resolvef(key string, active Locale, args ...string) string {
	template := r.Resolve(key, active)
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		idx, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || idx < 0 || idx >= len(args) {
			return ""
		}
		return args[idx]
	})
}
