package rudder

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func writeBundle(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write bundle: %v", err)
	}
	return path
}

func TestLoadBundleFile_YAML(t *testing.T) {
	path := writeBundle(t, "tr.yaml", "locale: tr\nmessages:\n  greeting: Merhaba\n")

	b, err := LoadBundleFile(path)
	if err != nil {
		t.Fatalf("LoadBundleFile failed: %v", err)
	}
	if b.Locale() != LocaleTurkish {
		t.Errorf("expected tr, got %s", b.Locale())
	}
	if v, ok := b.lookup("greeting"); !ok || v != "Merhaba" {
		t.Errorf("expected Merhaba, got %q (ok=%v)", v, ok)
	}
}

func TestLoadBundleFile_JSON(t *testing.T) {
	path := writeBundle(t, "de.json", `{"locale": "de", "messages": {"greeting": "Hallo"}}`)

	b, err := LoadBundleFile(path)
	if err != nil {
		t.Fatalf("LoadBundleFile failed: %v", err)
	}
	if b.Locale() != LocaleGerman {
		t.Errorf("expected de, got %s", b.Locale())
	}
}

func TestLoadBundleFile_TOML(t *testing.T) {
	path := writeBundle(t, "fr.toml", "locale = \"fr\"\n\n[messages]\ngreeting = \"Bonjour\"\n")

	b, err := LoadBundleFile(path)
	if err != nil {
		t.Fatalf("LoadBundleFile failed: %v", err)
	}
	if b.Locale() != LocaleFrench {
		t.Errorf("expected fr, got %s", b.Locale())
	}
	if v, _ := b.lookup("greeting"); v != "Bonjour" {
		t.Errorf("expected Bonjour, got %q", v)
	}
}

func TestLoadBundleFile_NormalizesRegionTag(t *testing.T) {
	path := writeBundle(t, "en.yaml", "locale: en-US\nmessages:\n  greeting: Hello\n")

	b, err := LoadBundleFile(path)
	if err != nil {
		t.Fatalf("LoadBundleFile failed: %v", err)
	}
	if b.Locale() != LocaleEnglish {
		t.Errorf("expected en, got %s", b.Locale())
	}
}

func TestLoadBundleFile_UnsupportedLocale(t *testing.T) {
	path := writeBundle(t, "ja.yaml", "locale: ja\nmessages:\n  greeting: こんにちは\n")

	if _, err := LoadBundleFile(path); err == nil {
		t.Fatal("expected error for locale outside the supported set")
	}
}

func TestLoadBundleFile_MissingLocaleField(t *testing.T) {
	path := writeBundle(t, "x.yaml", "messages:\n  greeting: Hi\n")

	if _, err := LoadBundleFile(path); err == nil {
		t.Fatal("expected validation error for missing locale")
	}
}

func TestLoadBundleFile_EmptyMessages(t *testing.T) {
	path := writeBundle(t, "x.yaml", "locale: en\n")

	if _, err := LoadBundleFile(path); err == nil {
		t.Fatal("expected validation error for missing messages")
	}
}

func TestLoadBundleFile_UnknownExtension(t *testing.T) {
	path := writeBundle(t, "x.ini", "locale=en")

	if _, err := LoadBundleFile(path); err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}

func TestLoadBundleFile_Malformed(t *testing.T) {
	path := writeBundle(t, "x.yaml", "locale: [broken")

	if _, err := LoadBundleFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadBundleFS(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/es.yaml": &fstest.MapFile{
			Data: []byte("locale: es\nmessages:\n  greeting: Hola\n"),
		},
	}

	b, err := LoadBundleFS(fsys, "locales/es.yaml")
	if err != nil {
		t.Fatalf("LoadBundleFS failed: %v", err)
	}
	if b.Locale() != LocaleSpanish {
		t.Errorf("expected es, got %s", b.Locale())
	}
}
