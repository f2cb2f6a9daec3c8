// Package mapper turns raw remote records into the canonical client DTOs.
//
// Every target field is described by a Chain: an ordered list of accessors
// tried in turn. The first candidate that is present, non-empty and of a
// usable type wins; otherwise the field's default is used. Mapping never
// fails and never leaves a DTO field unset.
package mapper

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"varal-dos-sonhos/model"
)

// Accessor reads one candidate value for a target field.
type Accessor func(model.Fields) (any, bool)

// Chain is the ordered fallback policy for one target field.
type Chain []Accessor

// Field looks a source field up by exact name first, then case-insensitively.
// Empty values are skipped; among case variants the lowest key wins.
func Field(name string) Accessor {
	return func(f model.Fields) (any, bool) {
		if v, ok := f[name]; ok && !isEmpty(v) {
			return v, true
		}

		var variants []string
		for k := range f {
			if k != name && strings.EqualFold(k, name) && !isEmpty(f[k]) {
				variants = append(variants, k)
			}
		}
		if len(variants) == 0 {
			return nil, false
		}
		sort.Strings(variants)
		return f[variants[0]], true
	}
}

// Attachment reads the URL of the first attachment stored under name.
// A plain string value is taken as the URL itself.
func Attachment(name string) Accessor {
	field := Field(name)
	return func(f model.Fields) (any, bool) {
		v, ok := field(f)
		if !ok {
			return nil, false
		}
		switch a := v.(type) {
		case string:
			return a, true
		case []any:
			for _, item := range a {
				if m, ok := item.(map[string]any); ok {
					if url, ok := m["url"].(string); ok && url != "" {
						return url, true
					}
				}
			}
		case []map[string]any:
			for _, m := range a {
				if url, ok := m["url"].(string); ok && url != "" {
					return url, true
				}
			}
		}
		return nil, false
	}
}

// Names builds a chain of plain field lookups.
func Names(names ...string) Chain {
	c := make(Chain, 0, len(names))
	for _, n := range names {
		c = append(c, Field(n))
	}
	return c
}

// Then appends more accessors to the chain.
func (c Chain) Then(more ...Accessor) Chain {
	out := make(Chain, 0, len(c)+len(more))
	out = append(out, c...)
	return append(out, more...)
}

func (c Chain) candidates(f model.Fields, fn func(any) bool) {
	for _, get := range c {
		v, ok := get(f)
		if !ok || isEmpty(v) {
			continue
		}
		if fn(v) {
			return
		}
	}
}

// String returns the first candidate usable as text, or def.
func (c Chain) String(f model.Fields, def string) string {
	out := def
	c.candidates(f, func(v any) bool {
		s, ok := toString(v)
		if ok && s != "" {
			out = s
		}
		return ok && s != ""
	})
	return out
}

// Int returns the first candidate usable as a whole number, or nil.
func (c Chain) Int(f model.Fields) *int {
	var out *int
	c.candidates(f, func(v any) bool {
		n, ok := toInt(v)
		if ok {
			out = &n
		}
		return ok
	})
	return out
}

// Float returns the first candidate usable as a number, or nil.
func (c Chain) Float(f model.Fields) *float64 {
	var out *float64
	c.candidates(f, func(v any) bool {
		n, ok := toFloat(v)
		if ok {
			out = &n
		}
		return ok
	})
	return out
}

// Bool returns the first candidate usable as a flag, or false.
func (c Chain) Bool(f model.Fields) bool {
	out := false
	c.candidates(f, func(v any) bool {
		b, ok := toBool(v)
		if ok {
			out = b
		}
		return ok
	})
	return out
}

// Strings returns the first candidate usable as a list of text values,
// or an empty (non-nil) list.
func (c Chain) Strings(f model.Fields) []string {
	out := []string{}
	c.candidates(f, func(v any) bool {
		s, ok := toStrings(v)
		if ok && len(s) > 0 {
			out = s
		}
		return ok && len(s) > 0
	})
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func toString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case []any:
		// linked-record fields hold a list of ids; the first one is the reference
		for _, item := range t {
			if s, ok := toString(item); ok && s != "" {
				return s, true
			}
		}
	case []string:
		for _, s := range t {
			if s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "sim", "yes":
			return true, true
		case "false", "0", "não", "nao", "no":
			return false, true
		}
	}
	return false, false
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := toString(item); ok && s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		out := []string{}
		for _, part := range strings.Split(t, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}
