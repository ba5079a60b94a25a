package rudder

import (
	"strings"
	"testing"
)

func newTestResolver() *Resolver {
	r := NewResolver(NewBundle(LocaleEnglish, map[string]string{
		"greeting": "Hello",
		"farewell": "Goodbye",
		"welcome":  "Welcome, {0}!",
		"transfer": "Moved {0} of {1} items",
	}))
	r.Add(NewBundle(LocaleTurkish, map[string]string{
		"farewell": "Hoşça kal",
		"welcome":  "Hoş geldin, {0}!",
	}))
	return r
}

func TestResolver_ActiveBundleHit(t *testing.T) {
	r := newTestResolver()
	if got := r.Resolve("farewell", LocaleTurkish); got != "Hoşça kal" {
		t.Errorf("expected Turkish farewell, got %q", got)
	}
}

func TestResolver_FallbackToDefaultBundle(t *testing.T) {
	r := newTestResolver()
	// "greeting" is absent from the tr bundle but present in the default.
	if got := r.Resolve("greeting", LocaleTurkish); got != "Hello" {
		t.Errorf("expected fallback to default bundle, got %q", got)
	}
}

func TestResolver_MissingEverywhere(t *testing.T) {
	r := newTestResolver()
	got := r.Resolve("greeting.missing", LocaleTurkish)
	if !strings.Contains(got, "greeting.missing") {
		t.Errorf("expected sentinel embedding the key, got %q", got)
	}
	if got == "greeting.missing" {
		t.Errorf("expected a marked sentinel, got the bare key %q", got)
	}
}

func TestResolver_UnknownLocaleUsesFallback(t *testing.T) {
	r := newTestResolver()
	if got := r.Resolve("greeting", LocaleGerman); got != "Hello" {
		t.Errorf("expected fallback for locale without a bundle, got %q", got)
	}
}

func TestResolver_Resolvef(t *testing.T) {
	r := newTestResolver()
	if got := r.Resolvef("welcome", LocaleTurkish, "Ayşe"); got != "Hoş geldin, Ayşe!" {
		t.Errorf("expected substituted Turkish welcome, got %q", got)
	}
}

func TestResolver_ResolvefMultipleArgs(t *testing.T) {
	r := newTestResolver()
	if got := r.Resolvef("transfer", LocaleEnglish, "3", "10"); got != "Moved 3 of 10 items" {
		t.Errorf("expected both placeholders substituted, got %q", got)
	}
}

func TestResolver_ResolvefExcessArgsIgnored(t *testing.T) {
	r := newTestResolver()
	if got := r.Resolvef("welcome", LocaleEnglish, "Ada", "extra", "noise"); got != "Welcome, Ada!" {
		t.Errorf("expected excess args ignored, got %q", got)
	}
}

func TestResolver_ResolvefMissingArgsRenderEmpty(t *testing.T) {
	r := newTestResolver()
	if got := r.Resolvef("transfer", LocaleEnglish, "3"); got != "Moved 3 of  items" {
		t.Errorf("expected missing arg rendered empty, got %q", got)
	}
}

func TestResolver_ResolvefNoPlaceholders(t *testing.T) {
	r := newTestResolver()
	if got := r.Resolvef("greeting", LocaleEnglish, "unused"); got != "Hello" {
		t.Errorf("expected template unchanged, got %q", got)
	}
}

func TestBundle_CopiesMessages(t *testing.T) {
	src := map[string]string{"k": "v"}
	b := NewBundle(LocaleEnglish, src)
	src["k"] = "mutated"

	if v, _ := b.lookup("k"); v != "v" {
		t.Errorf("expected bundle isolated from source map, got %q", v)
	}
}
