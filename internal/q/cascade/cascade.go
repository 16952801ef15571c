package cascade

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strconv"
	"strings"
)

// Source types recorded in Providence.
const (
	SourceDefault  = "default"
	SourceJSONFile = "json_file"
	SourceYAMLFile = "yaml_file"
	SourceTOMLFile = "toml_file"
	SourceEnv      = "env"
	SourceOverride = "override"
)

// Providence records where a configuration value came from.
type Providence struct {
	SourceType       string // one of the Source* constants
	SourceIdentifier string // ex: "/home/me/.colordiff/config.toml"; "" for sources without identifiers (defaults, env, overrides)
}

// IsSet reports whether any source set the value.
func (p Providence) IsSet() bool {
	return p.SourceType != ""
}

// Default reports whether the value came from the defaults.
func (p Providence) Default() bool {
	return p.SourceType == SourceDefault
}

func (p Providence) String() string {
	if p.SourceIdentifier == "" {
		return p.SourceType
	}
	return p.SourceType + ":" + p.SourceIdentifier
}

// Loader is a prioritized list of configuration sources, lowest priority first.
type Loader struct {
	sources []source
}

// New returns an empty Loader. It is equivalent to &Loader{}.
func New() *Loader {
	return &Loader{}
}

// WithDefaults adds m as a source of default values. Keys may use dot-notation. A nil map contributes nothing.
func (c *Loader) WithDefaults(m map[string]any) *Loader {
	c.sources = append(c.sources, &mapSource{kind: SourceDefault, m: m})
	return c
}

// WithJSONFile adds the JSON file at path (expanded with ExpandPath). The file is read by StrictlyLoad.
func (c *Loader) WithJSONFile(path string) *Loader {
	c.sources = append(c.sources, &fileSource{format: jsonFormat, path: path})
	return c
}

// WithYAMLFile adds the YAML file at path (expanded with ExpandPath). The file is read by StrictlyLoad.
func (c *Loader) WithYAMLFile(path string) *Loader {
	c.sources = append(c.sources, &fileSource{format: yamlFormat, path: path})
	return c
}

// WithTOMLFile adds the TOML file at path (expanded with ExpandPath). The file is read by StrictlyLoad.
func (c *Loader) WithTOMLFile(path string) *Loader {
	c.sources = append(c.sources, &fileSource{format: tomlFormat, path: path})
	return c
}

// WithEnv adds environment variables as a source. keyToEnv maps a configuration key to a variable name. Unset and empty variables are ignored; values are strings.
func (c *Loader) WithEnv(keyToEnv map[string]string) *Loader {
	c.sources = append(c.sources, &envSource{keyToEnv: keyToEnv})
	return c
}

// WithOverrides adds m as a source, typically explicitly set command line flags. Keys may use dot-notation.
func (c *Loader) WithOverrides(m map[string]any) *Loader {
	c.sources = append(c.sources, &mapSource{kind: SourceOverride, m: m})
	return c
}

// StrictlyLoad applies c's sources to dest, a non-nil pointer to a struct, from lowest to highest priority.
//
// A source that doesn't exist or can't be read due to permissions is skipped. Any other error (parse errors, values that can't be coerced to their field) is returned
// immediately, prefixed with the source's name.
func (c *Loader) StrictlyLoad(dest any) error {
	destVal := reflect.ValueOf(dest)
	if dest == nil || destVal.Kind() != reflect.Ptr || destVal.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	structVal := destVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct, got %s", structVal.Kind())
	}

	for _, src := range c.sources {
		m, err := src.toMap()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return fmt.Errorf("%s: %w", src.name(), err)
		}
		if err := applyMap(structVal, m, "", src.providence()); err != nil {
			return fmt.Errorf("%s: %w", src.name(), err)
		}
	}
	return nil
}

// fieldKey returns the lowercase key f is addressed by, or "-" if f is excluded.
func fieldKey(f reflect.StructField) string {
	if tag := f.Tag.Get("cascade"); tag != "" {
		name := strings.TrimSpace(strings.Split(tag, ",")[0])
		if name == "-" {
			return "-"
		}
		if name != "" {
			return strings.ToLower(name)
		}
	}
	// json:"-" only opts out of the json name, not of loading.
	if tag := f.Tag.Get("json"); tag != "" {
		name := strings.TrimSpace(strings.Split(tag, ",")[0])
		if name != "" && name != "-" {
			return strings.ToLower(name)
		}
	}
	return strings.ToLower(f.Name)
}

// applyMap writes the values of m (a normalized map) into structVal. path is the dot-separated location of structVal, for error messages.
func applyMap(structVal reflect.Value, m map[string]any, path string, prov Providence) error {
	structType := structVal.Type()

	index := map[string]int{}
	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		if !structVal.Field(i).CanSet() {
			continue
		}
		key := fieldKey(f)
		if key == "-" {
			continue
		}
		if prev, ok := index[key]; ok {
			return fmt.Errorf("fields %s and %s both have key %q", structType.Field(prev).Name, f.Name, key)
		}
		index[key] = i
	}

	for key, raw := range m {
		i, ok := index[key]
		if !ok || raw == nil {
			continue
		}
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}
		if err := setField(structVal.Field(i), raw, childPath, prov); err != nil {
			return err
		}

		if p, ok := index[strings.ToLower(structType.Field(i).Name+"Providence")]; ok {
			setProvidence(structVal.Field(p), prov)
		}
	}
	return nil
}

func setProvidence(field reflect.Value, prov Providence) {
	provType := reflect.TypeOf(Providence{})
	switch {
	case field.Type() == provType:
		field.Set(reflect.ValueOf(prov))
	case field.Kind() == reflect.Ptr && field.Type().Elem() == provType:
		if field.IsNil() {
			field.Set(reflect.New(provType))
		}
		field.Elem().Set(reflect.ValueOf(prov))
	}
}

// setField assigns raw to field, allocating pointers and coercing scalars.
func setField(field reflect.Value, raw any, path string, prov Providence) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), raw, path, prov)
	}

	switch field.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object, got %T", path, raw)
		}
		return applyMap(field, obj, path, prov)
	case reflect.String:
		s, err := toString(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		field.SetString(s)
	case reflect.Bool:
		b, err := toBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("%s: %d overflows %s", path, n, field.Kind())
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := toFloat(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("%s: unsupported field kind %s", path, field.Kind())
	}
	return nil
}

func toString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("cannot use %T as string", raw)
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("cannot parse bool from %q", v)
		}
		return b, nil
	}
	return false, fmt.Errorf("cannot use %T as bool", raw)
}

// toInt converts raw to an int. Floats are truncated toward zero.
func toInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse int from %q", v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("cannot use %T as int", raw)
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse float from %q", v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot use %T as float", raw)
}
