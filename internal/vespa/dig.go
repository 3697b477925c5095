package vespa

// dig walks a decoded JSON structure along path, where each element is either
// a map key (string) or a slice index (int). Any missing level, wrong type,
// or out-of-range index yields def instead of a panic: the engine's response
// shape genuinely varies with result cardinality, so absent levels mean "no
// data", not "error".
func dig[T any](obj any, def T, path ...any) T {
	cur := obj
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return def
			}
			cur, ok = m[key]
			if !ok {
				return def
			}
		case int:
			s, ok := cur.([]any)
			if !ok || key < 0 || key >= len(s) {
				return def
			}
			cur = s[key]
		default:
			return def
		}
	}
	typed, ok := cur.(T)
	if !ok {
		return def
	}
	return typed
}

// digInt reads a numeric leaf that encoding/json decodes as float64.
func digInt(obj any, def int, path ...any) int {
	f, ok := dig[any](obj, nil, path...).(float64)
	if !ok {
		return def
	}
	return int(f)
}
