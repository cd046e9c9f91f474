package schema

// AsString coerces an arbitrary JSON value to a string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsMap coerces an arbitrary JSON value to an object.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsList coerces an arbitrary JSON value to a list.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}
