package monitor

import (
	"encoding/json"
	"math"
	"reflect"
)

// Kind names used in mismatch messages.
const (
	kindNumber  = "number"
	kindInteger = "integer"
	kindText    = "text"
	kindBoolean = "boolean"
	kindObject  = "object"
	kindArray   = "array"
	kindNull    = "null"
)

// kindOf classifies a decoded value for error messages.
func kindOf(v any) string {
	switch x := v.(type) {
	case nil:
		return kindNull
	case string:
		return kindText
	case bool:
		return kindBoolean
	case float64:
		return floatKind(x)
	case float32:
		return floatKind(float64(x))
	case json.Number:
		return kindNumber
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return kindNumber
	case reflect.Map:
		return kindObject
	case reflect.Slice, reflect.Array:
		return kindArray
	case reflect.Pointer:
		if reflect.ValueOf(v).IsNil() {
			return kindNull
		}
		return kindOf(reflect.ValueOf(v).Elem().Interface())
	default:
		return reflect.TypeOf(v).String()
	}
}

// asObject returns v as a string-keyed map. YAML mappings decoded as
// map[any]any are accepted when every key is a string.
func asObject(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asArray returns v as a slice of untyped values.
func asArray(v any) ([]any, bool) {
	if x, ok := v.([]any); ok {
		return x, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// Byte slices are opaque blobs, not sequences.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// floatKind names non-finite floats so they read differently from numbers.
func floatKind(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 0):
		return "Infinity"
	}
	return kindNumber
}

// finite reports whether f is neither NaN nor an infinity.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// asFloat returns v as a float64 when it is any numeric value.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, finite(x)
	case float32:
		return float64(x), finite(float64(x))
	case json.Number:
		f, err := x.Float64()
		return f, err == nil && finite(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// asInt returns v as an int. The message is empty on success and otherwise
// describes why v is not an integer.
func asInt(v any) (int, string) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return int(i), ""
		}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), ""
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt {
			return 0, "expected integer, got number out of range"
		}
		return int(rv.Uint()), ""
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, mismatch(kindNumber, v)
	}
	if math.Trunc(f) != f {
		return 0, "expected " + kindInteger + ", got " + kindNumber
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, "expected integer, got number out of range"
	}
	return int(f), ""
}
