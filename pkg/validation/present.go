package validation

import (
	"reflect"
	"strings"
	"time"
)

// IsPresent reports whether v counts as a provided value: not nil, not a
// blank string, not an empty collection, not a zero time and not a nil
// pointer or interface. false and 0 are present. It is the check behind
// required rules.
func IsPresent(v any) bool {
	return present(v, true)
}

// HasValue is IsPresent without trimming: a whitespace-only string has a
// value. Optional rules use it to decide whether to run at all.
func HasValue(v any) bool {
	return present(v, false)
}

func present(v any, trim bool) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return nonEmpty(val, trim)
	case bool:
		return true
	case time.Time:
		return !val.IsZero()
	case *time.Time:
		return val != nil && !val.IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return present(rv.Elem().Interface(), trim)
	case reflect.String:
		return nonEmpty(rv.String(), trim)
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Func:
		return !rv.IsNil()
	default:
		return true
	}
}

func nonEmpty(s string, trim bool) bool {
	if trim {
		s = strings.TrimSpace(s)
	}
	return s != ""
}

// Length returns the length of strings (in runes), slices, maps and arrays.
// ok is false for other kinds.
func Length(v any) (n int, ok bool) {
	if s, isStr := v.(string); isStr {
		return len([]rune(s)), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return len([]rune(rv.String())), true
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return Length(rv.Elem().Interface())
	default:
		return 0, false
	}
}
