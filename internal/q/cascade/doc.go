// Package cascade loads layered configuration into a Go struct from several sources with predictable precedence.
//
// Register sources on a Loader from lowest to highest priority with the With* methods, then call StrictlyLoad. The zero Loader is ready to use; New exists for chaining:
//
//	var cfg Config
//	err := cascade.New().
//	    WithDefaults(map[string]any{"color": "auto", "palette.user": "~/.colordiffrc"}).
//	    WithJSONFile("~/.colordiff/config.json").
//	    WithYAMLFile("~/.colordiff/config.yaml").
//	    WithTOMLFile("~/.colordiff/config.toml").
//	    WithEnv(map[string]string{"color": "COLORDIFF_COLOR"}).
//	    WithOverrides(flagValues).
//	    StrictlyLoad(&cfg)
//
// Keys are case-insensitive and dot-separated for nesting ("palette.user" sets Palette.User). A field's key is its cascade tag name, else its json tag name, else its
// field name. Unknown keys are ignored. Values are coerced when reasonable (strings to numbers and bools, numbers to strings, floats to ints). Only scalar and nested
// struct fields are supported.
//
// A field named XProvidence of type Providence (or *Providence) next to field X records which source last set X.
//
// Missing or unreadable files and empty files contribute nothing. A file that can't be parsed, or a value that can't be coerced, makes StrictlyLoad fail without
// trying later sources.
package cascade
