package rudder

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale is a supported language/region code driving string resolution.
type Locale string

// Supported locales.
const (
	LocaleEnglish Locale = "en"
	LocaleTurkish Locale = "tr"
	LocaleGerman  Locale = "de"
	LocaleFrench  Locale = "fr"
	LocaleSpanish Locale = "es"
)

// DefaultLocale is the locale used when no value has been persisted and
// the fallback bundle's locale.
const DefaultLocale = LocaleEnglish

// supportedLocales is the enumerated set, in matcher preference order.
// DefaultLocale must come first: the matcher falls back to it.
var supportedLocales = []Locale{
	LocaleEnglish,
	LocaleTurkish,
	LocaleGerman,
	LocaleFrench,
	LocaleSpanish,
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(supportedLocales))
	for i, l := range supportedLocales {
		tags[i] = language.MustParse(string(l))
	}
	return language.NewMatcher(tags)
}()

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// Supported reports whether l is a member of the enumerated set.
func (l Locale) Supported() bool {
	for _, s := range supportedLocales {
		if l == s {
			return true
		}
	}
	return false
}

// Locales returns the supported set in preference order. The returned
// slice is a copy.
func Locales() []Locale {
	out := make([]Locale, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

// ParseLocale normalizes an arbitrary BCP 47 tag ("en-US", "TR") onto the
// supported set. Tags that cannot be parsed or that match nothing in the
// set return ErrUnsupportedLocale.
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, s)
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, s)
	}
	return supportedLocales[idx], nil
}
