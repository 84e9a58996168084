/*
Package configfile loads middleware options from configuration files.

A configuration file holds a flat mapping from option names to values,
either at the top level or nested under a named section:

	# cors.yaml
	allow_origins: https://example.com
	allow_methods: GET, POST
	max_age: 3600

The file format is selected by file extension: .yaml and .yml files are
decoded as YAML, .json files as JSON, and .toml files as TOML. Scalar
values of any type are coerced to strings, so bare numbers and booleans
(like the max_age value above) need not be quoted.

The result of [Load] or [LoadSection] can be passed directly to
[github.com/restfilter/cors.NewMiddleware] and friends.
*/
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// Load reads the configuration file at path and returns the top-level
// mapping it holds, with all values coerced to strings.
//
// Errors:
//   - Returns an error if the file cannot be read.
//   - Returns an error if the file extension designates no known format.
//   - Returns an error if decoding fails or the decoded document is not a
//     flat mapping.
func Load(path string) (map[string]string, error) {
	raw, err := load(path)
	if err != nil {
		return nil, err
	}
	return coerce(raw)
}

// LoadSection is like [Load], but returns the mapping nested under the
// given top-level section of the file, e.g. the "filter:cors" section of
//
//	# middleware.yaml
//	filter:cors:
//	  allow_origins: https://example.com
//	filter:gzip:
//	  level: 9
//
// LoadSection returns an error if the file holds no such section.
func LoadSection(path, section string) (map[string]string, error) {
	raw, err := load(path)
	if err != nil {
		return nil, err
	}
	sub, found := raw[section]
	if !found {
		return nil, fmt.Errorf("no section %q in %s", section, path)
	}
	return coerce(sub)
}

func load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported config-file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	return raw, nil
}

func coerce(v any) (map[string]string, error) {
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, fmt.Errorf("failed to interpret options: %w", err)
	}
	opts := make(map[string]string, len(m))
	for k, val := range m {
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, fmt.Errorf("failed to interpret option %q: %w", k, err)
		}
		opts[k] = s
	}
	return opts, nil
}
