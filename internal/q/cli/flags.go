package cli

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

type flagKind uint8

const (
	flagBool flagKind = iota + 1
	flagString
	flagInt
	flagEnum
)

// FlagSet is a typed flag registry for a command.
type FlagSet struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

type flagDef struct {
	name      string
	shorthand rune
	usage     string
	kind      flagKind
	choices   []string // flagEnum only
	defValue  string
	changed   bool // set on the command line

	boolPtr   *bool
	stringPtr *string // flagString and flagEnum
	intPtr    *int
}

func newFlagSet() *FlagSet {
	return &FlagSet{
		byLong:  map[string]*flagDef{},
		byShort: map[rune]*flagDef{},
	}
}

// Bool defines a bool flag. A bare "--name" sets it to true.
func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagBool, defValue: strconv.FormatBool(def), boolPtr: ptr})
	return ptr
}

func (fs *FlagSet) String(name string, shorthand rune, def string, usage string) *string {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagString, defValue: def, stringPtr: ptr})
	return ptr
}

func (fs *FlagSet) Int(name string, shorthand rune, def int, usage string) *int {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagInt, defValue: strconv.Itoa(def), intPtr: ptr})
	return ptr
}

// Enum defines a string flag restricted to choices (matched case-insensitively, stored as listed in choices). It panics if def is not one of choices.
func (fs *FlagSet) Enum(name string, shorthand rune, def string, choices []string, usage string) *string {
	if !slices.Contains(choices, def) {
		panic("cli: enum default not among choices: --" + name)
	}
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagEnum, choices: choices, defValue: def, stringPtr: ptr})
	return ptr
}

// Changed reports whether the flag name was set on the command line. It is false for unknown flags.
func (fs *FlagSet) Changed(name string) bool {
	def, ok := fs.byLong[name]
	return ok && def.changed
}

func (fs *FlagSet) add(def *flagDef) {
	if def.name == "" {
		panic("cli: flag name must be non-empty")
	}
	if _, ok := fs.byLong[def.name]; ok {
		panic("cli: duplicate flag: --" + def.name)
	}
	fs.byLong[def.name] = def
	if def.shorthand != 0 {
		if _, ok := fs.byShort[def.shorthand]; ok {
			panic(fmt.Sprintf("cli: duplicate shorthand flag: -%c", def.shorthand))
		}
		fs.byShort[def.shorthand] = def
	}
}

// activeFlags are the flags a command accepts: the persistent flags of the command and its ancestors, plus its local flags.
type activeFlags struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

func (c *Command) activeFlags() activeFlags {
	active := activeFlags{byLong: map[string]*flagDef{}, byShort: map[rune]*flagDef{}}
	for _, cmd := range c.path() {
		if cmd.persistentFlags != nil {
			active.addAll(cmd.persistentFlags)
		}
	}
	if c.localFlags != nil {
		active.addAll(c.localFlags)
	}
	return active
}

func (a activeFlags) addAll(fs *FlagSet) {
	for _, def := range fs.byLong {
		if existing, ok := a.byLong[def.name]; ok && existing != def {
			panic("cli: flag name conflict across command path: --" + def.name)
		}
		a.byLong[def.name] = def
		if def.shorthand != 0 {
			if existing, ok := a.byShort[def.shorthand]; ok && existing != def {
				panic(fmt.Sprintf("cli: shorthand conflict across command path: -%c", def.shorthand))
			}
			a.byShort[def.shorthand] = def
		}
	}
}

// sorted returns the active flags ordered by name.
func (a activeFlags) sorted() []*flagDef {
	defs := make([]*flagDef, 0, len(a.byLong))
	for _, def := range a.byLong {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	return defs
}

// lookup finds the flag for a long name, or for shorthand if name is "".
func (a activeFlags) lookup(name string, shorthand rune) *flagDef {
	if name != "" {
		return a.byLong[name]
	}
	return a.byShort[shorthand]
}

// set parses raw into def's value and marks it changed.
func (def *flagDef) set(raw string) error {
	switch def.kind {
	case flagBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*def.boolPtr = v
	case flagString:
		*def.stringPtr = raw
	case flagInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*def.intPtr = v
	case flagEnum:
		i := slices.IndexFunc(def.choices, func(c string) bool { return strings.EqualFold(c, strings.TrimSpace(raw)) })
		if i < 0 {
			return fmt.Errorf("%q is not one of %s", raw, strings.Join(def.choices, ", "))
		}
		*def.stringPtr = def.choices[i]
	default:
		return fmt.Errorf("unknown flag kind")
	}
	def.changed = true
	return nil
}

// valueName is the placeholder shown in help for def's value, or "" for bool flags.
func (def *flagDef) valueName() string {
	switch def.kind {
	case flagString:
		return "<string>"
	case flagInt:
		return "<int>"
	case flagEnum:
		return "<" + strings.Join(def.choices, "|") + ">"
	}
	return ""
}

func (def *flagDef) display() string {
	if def.shorthand != 0 {
		return fmt.Sprintf("-%c/--%s", def.shorthand, def.name)
	}
	return "--" + def.name
}
