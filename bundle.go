package rudder

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance.
var validate = validator.New()

// bundleFile is the on-disk shape of a locale bundle.
type bundleFile struct {
	Locale   string            `yaml:"locale" json:"locale" toml:"locale" validate:"required"`
	Messages map[string]string `yaml:"messages" json:"messages" toml:"messages" validate:"required,min=1"`
}

// LoadBundleFile loads a locale bundle from a file on disk. The format is
// chosen by extension: .yaml/.yml, .json, or .toml.
func LoadBundleFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}
	return parseBundle(path, data)
}

// LoadBundleFS loads a locale bundle from a file system, typically an
// embed.FS of shipped translations.
func LoadBundleFS(fsys fs.FS, path string) (*Bundle, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}
	return parseBundle(path, data)
}

func parseBundle(path string, data []byte) (*Bundle, error) {
	var bf bundleFile

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("failed to parse bundle %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("failed to parse bundle %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("failed to parse bundle %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unrecognized bundle format %s", path)
	}

	if err := validate.Struct(bf); err != nil {
		return nil, fmt.Errorf("invalid bundle %s: %w", path, err)
	}

	locale, err := ParseLocale(bf.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid bundle %s: %w", path, err)
	}
	return NewBundle(locale, bf.Messages), nil
}
