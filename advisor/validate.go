package advisor

import "strings"

// validateResult checks a raw structured payload against the task's schema.
// Missing required fields are a hard failure; optional fields get their
// default; enum values outside the declared domain are replaced wholesale by
// the default; list fields that are not proper lists likewise.
func validateResult(kind Kind, raw map[string]any) (Result, error) {
	schema, ok := taskSchemas[kind]
	if !ok {
		return nil, &MalformedResultError{Kind: kind, Field: "(unknown task kind)"}
	}

	out := make(Result, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	for _, f := range schema {
		v, present := out[f.name]
		if f.required {
			if !presentAndUsable(v, present, f.list) {
				return nil, &MalformedResultError{Kind: kind, Field: f.name}
			}
			continue
		}
		switch {
		case len(f.enum) > 0:
			s, isStr := v.(string)
			if !present || !isStr || !inDomain(s, f.enum) {
				out[f.name] = f.def
			}
		case f.list:
			if _, isList := v.([]any); !present || !isList {
				out[f.name] = defaultList(f.def)
			}
		default:
			if !present || v == nil {
				out[f.name] = f.def
			}
		}
	}
	return out, nil
}

// presentAndUsable applies the required-field rule: the value must exist,
// be non-nil, and for strings/lists be non-empty.
func presentAndUsable(v any, present, wantList bool) bool {
	if !present || v == nil {
		return false
	}
	if wantList {
		l, ok := v.([]any)
		return ok && len(l) > 0
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func inDomain(s string, domain []string) bool {
	for _, d := range domain {
		if s == d {
			return true
		}
	}
	return false
}

// defaultList clones a default list so validated results never share the
// schema table's backing array.
func defaultList(def any) []any {
	src, ok := def.([]any)
	if !ok {
		return []any{}
	}
	out := make([]any, len(src))
	copy(out, src)
	return out
}
