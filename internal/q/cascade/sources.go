package cascade

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// source supplies configuration as a normalized map:
//   - keys are lower case and contain no "." (dots are expanded into nested maps)
//   - values are nested map[string]any, or one of string, bool, int, float64
type source interface {
	name() string // for error messages
	providence() Providence
	toMap() (map[string]any, error)
}

// mapSource is a Go map, used for defaults and overrides.
type mapSource struct {
	kind string // SourceDefault or SourceOverride
	m    map[string]any
}

func (s *mapSource) name() string {
	if s.kind == SourceDefault {
		return "Defaults"
	}
	return "Overrides"
}

func (s *mapSource) providence() Providence {
	return Providence{SourceType: s.kind}
}

func (s *mapSource) toMap() (map[string]any, error) {
	return normalizeMap(s.m)
}

// fileFormat decodes one kind of configuration file.
type fileFormat struct {
	label      string
	sourceType string
	unmarshal  func(data []byte) (map[string]any, error)
}

var (
	jsonFormat = fileFormat{label: "JSON", sourceType: SourceJSONFile, unmarshal: func(data []byte) (map[string]any, error) {
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("top-level JSON must be an object")
		}
		return obj, nil
	}}
	yamlFormat = fileFormat{label: "YAML", sourceType: SourceYAMLFile, unmarshal: func(data []byte) (map[string]any, error) {
		var obj map[string]any
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		return obj, nil
	}}
	tomlFormat = fileFormat{label: "TOML", sourceType: SourceTOMLFile, unmarshal: func(data []byte) (map[string]any, error) {
		var obj map[string]any
		if err := toml.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		return obj, nil
	}}
)

// fileSource is a configuration file, read when the Loader loads. Empty or whitespace-only files contribute nothing.
type fileSource struct {
	format fileFormat
	path   string
}

func (s *fileSource) name() string {
	return fmt.Sprintf("%s File: %s", s.format.label, s.path)
}

func (s *fileSource) providence() Providence {
	return Providence{SourceType: s.format.sourceType, SourceIdentifier: ExpandPath(s.path)}
}

func (s *fileSource) toMap() (map[string]any, error) {
	if s.path == "" {
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", strings.ToLower(s.format.label), err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	obj, err := s.format.unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", strings.ToLower(s.format.label), err)
	}
	return normalizeMap(obj)
}

// envSource reads environment variables.
type envSource struct {
	// keyToEnv maps a configuration key ("." allowed for nesting) to a variable. Ex: {"palette.user": "COLORDIFF_USER_PALETTE"}.
	keyToEnv map[string]string
}

func (s *envSource) name() string {
	return "ENV"
}

func (s *envSource) providence() Providence {
	return Providence{SourceType: SourceEnv}
}

func (s *envSource) toMap() (map[string]any, error) {
	m := map[string]any{}
	for key, envVar := range s.keyToEnv {
		if envVar == "" {
			continue
		}
		// An empty variable is treated as unset so that it doesn't clobber a file's value.
		if val := os.Getenv(envVar); val != "" {
			m[key] = val
		}
	}
	return normalizeMap(m)
}

// normalizeMap lowercases keys, expands dotted keys into nested maps, and converts decoded values to the allowed types. Setting the same key twice is an error.
func normalizeMap(m map[string]any) (map[string]any, error) {
	out := map[string]any{}
	for k, v := range m {
		if err := insert(out, strings.Split(strings.ToLower(k), "."), v, k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// insert puts value at parts inside obj. fullKey is only for errors.
func insert(obj map[string]any, parts []string, value any, fullKey string) error {
	part := parts[0]
	if part == "" {
		return fmt.Errorf("invalid key %q", fullKey)
	}

	if len(parts) > 1 {
		child, exists := obj[part]
		if !exists {
			child = map[string]any{}
			obj[part] = child
		}
		childMap, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key conflict at %q: %q is not an object", fullKey, part)
		}
		return insert(childMap, parts[1:], value, fullKey)
	}

	if nested, ok := asObject(value); ok {
		child, exists := obj[part]
		if !exists {
			child = map[string]any{}
			obj[part] = child
		}
		childMap, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key conflict: %q was already set", fullKey)
		}
		for k, v := range nested {
			if err := insert(childMap, strings.Split(strings.ToLower(k), "."), v, fullKey+"."+k); err != nil {
				return err
			}
		}
		return nil
	}

	scalar, err := normalizeScalar(value)
	if err != nil {
		return fmt.Errorf("key %q: %w", fullKey, err)
	}
	if _, exists := obj[part]; exists {
		return fmt.Errorf("key conflict: %q was already set", fullKey)
	}
	obj[part] = scalar
	return nil
}

// asObject returns value as a string-keyed map if it is one. YAML may decode mappings with non-string keys as map[any]any; those keys are formatted with %v.
func asObject(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return m, true
	}
	return nil, false
}

// normalizeScalar converts the scalar types produced by the JSON, YAML and TOML decoders to string, bool, int or float64. nil stays nil.
func normalizeScalar(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, float64:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float32:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("type %T is not supported", value)
	}
}
