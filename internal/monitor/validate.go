package monitor

import (
	"fmt"
	"sort"
	"strings"
)

// RootPath names the input value itself in a ShapeError.
const RootPath = "$"

// ShapeError reports every field of an input that does not match the Monitor
// shape. Fields maps a field path (for example "activeWorkspace.id" or
// "reserved[2]") to a description of the mismatch.
type ShapeError struct {
	Fields map[string]string
}

// Error renders the mismatches sorted by path.
func (e *ShapeError) Error() string {
	paths := e.Paths()
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, p+": "+e.Fields[p])
	}
	return "monitor shape mismatch: " + strings.Join(parts, "; ")
}

// Paths returns the failing field paths in sorted order.
func (e *ShapeError) Paths() []string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Validate checks input against the Monitor shape and returns the typed record.
// Every field is required and must carry its declared type; nothing is
// coerced. All mismatches are collected into a single *ShapeError.
func Validate(input any) (Monitor, error) {
	errs := make(map[string]string)
	m := decodeMonitor(input, "", errs)
	if len(errs) > 0 {
		return Monitor{}, &ShapeError{Fields: errs}
	}
	return m, nil
}

// decodeMonitor reads a Monitor from input, recording mismatches under prefix.
func decodeMonitor(input any, prefix string, errs map[string]string) Monitor {
	obj, ok := asObject(input)
	if !ok {
		errs[rootOf(prefix)] = mismatch(kindObject, input)
		return Monitor{}
	}
	f := fieldSet{obj: obj, prefix: prefix, errs: errs}
	return Monitor{
		ID:               f.integer("id"),
		Name:             f.text("name"),
		Description:      f.text("description"),
		Make:             f.text("make"),
		Model:            f.text("model"),
		Serial:           f.text("serial"),
		Width:            f.integer("width"),
		Height:           f.integer("height"),
		RefreshRate:      f.number("refreshRate"),
		X:                f.integer("x"),
		Y:                f.integer("y"),
		ActiveWorkspace:  f.workspace("activeWorkspace"),
		SpecialWorkspace: f.workspace("specialWorkspace"),
		Reserved:         f.integers("reserved"),
		Scale:            f.number("scale"),
		Transform:        Transform(f.integer("transform")),
		Focused:          f.boolean("focused"),
		DPMSStatus:       f.boolean("dpmsStatus"),
		VRR:              f.boolean("vrr"),
		Solitary:         f.text("solitary"),
		ActivelyTearing:  f.boolean("activelyTearing"),
		Disabled:         f.boolean("disabled"),
		CurrentFormat:    f.text("currentFormat"),
		MirrorOf:         f.text("mirrorOf"),
		AvailableModes:   f.texts("availableModes"),
	}
}

// fieldSet reads typed fields out of one decoded object.
type fieldSet struct {
	obj    map[string]any
	prefix string
	errs   map[string]string
}

// lookup returns the raw value for key, recording a missing field.
func (f fieldSet) lookup(key string) (any, string, bool) {
	path := joinPath(f.prefix, key)
	v, ok := f.obj[key]
	if !ok {
		f.errs[path] = "missing"
		return nil, path, false
	}
	return v, path, true
}

// integer reads an integral number.
func (f fieldSet) integer(key string) int {
	v, path, ok := f.lookup(key)
	if !ok {
		return 0
	}
	n, msg := asInt(v)
	if msg != "" {
		f.errs[path] = msg
	}
	return n
}

// number reads any number.
func (f fieldSet) number(key string) float64 {
	v, path, ok := f.lookup(key)
	if !ok {
		return 0
	}
	n, ok := asFloat(v)
	if !ok {
		f.errs[path] = mismatch(kindNumber, v)
	}
	return n
}

// text reads a string.
func (f fieldSet) text(key string) string {
	v, path, ok := f.lookup(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.errs[path] = mismatch(kindText, v)
	}
	return s
}

// boolean reads a bool.
func (f fieldSet) boolean(key string) bool {
	v, path, ok := f.lookup(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		f.errs[path] = mismatch(kindBoolean, v)
	}
	return b
}

// workspace reads a nested {id, name} object.
func (f fieldSet) workspace(key string) Workspace {
	v, path, ok := f.lookup(key)
	if !ok {
		return Workspace{}
	}
	obj, ok := asObject(v)
	if !ok {
		f.errs[path] = mismatch(kindObject, v)
		return Workspace{}
	}
	nested := fieldSet{obj: obj, prefix: path, errs: f.errs}
	return Workspace{
		ID:   nested.integer("id"),
		Name: nested.text("name"),
	}
}

// integers reads a sequence of integral numbers.
func (f fieldSet) integers(key string) []int {
	v, path, ok := f.lookup(key)
	if !ok {
		return nil
	}
	items, ok := asArray(v)
	if !ok {
		f.errs[path] = mismatch(kindArray, v)
		return nil
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, msg := asInt(item)
		if msg != "" {
			f.errs[indexPath(path, i)] = msg
		}
		out[i] = n
	}
	return out
}

// texts reads a sequence of strings.
func (f fieldSet) texts(key string) []string {
	v, path, ok := f.lookup(key)
	if !ok {
		return nil
	}
	items, ok := asArray(v)
	if !ok {
		f.errs[path] = mismatch(kindArray, v)
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			f.errs[indexPath(path, i)] = mismatch(kindText, item)
		}
		out[i] = s
	}
	return out
}

// mismatch formats an expected/actual kind message.
func mismatch(want string, got any) string {
	return fmt.Sprintf("expected %s, got %s", want, kindOf(got))
}

// joinPath appends a field name to a path prefix.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// indexPath appends a sequence index to a path.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// rootOf returns the path that names the value at prefix itself.
func rootOf(prefix string) string {
	if prefix == "" {
		return RootPath
	}
	return prefix
}
