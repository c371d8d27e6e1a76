package helpers

import "reflect"

// StrPanic panics with panicMessage if p is empty (no TrimSpace, only p == "" is checked); otherwise returns p.
// Used for fail-fast validation of required constructor strings (service name, peer base URL).
//
// Parameters: p — string to check; panicMessage — value passed to panic.
//
// Returns: p unchanged when non-empty.
//
// Called from service.NewRegistry and the discovery HTTP transport.
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan, func; typed nils are
// detected via reflect); otherwise returns v.
//
// Parameters: v — value to check; panicMessage — panic value.
//
// Returns: v unchanged when non-nil.
//
// Called from constructors when validating required dependencies (transport, registry, logger, http client).
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Deref returns *p, or fallback when p is nil. Optional settings decoded from YAML are pointers so that an
// explicit zero can be told apart from an absent key.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
