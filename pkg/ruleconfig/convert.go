package ruleconfig

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

// Raw configuration values arrive from YAML, TOML or JSON decoders, so the
// same logical type can have several Go representations.

func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return convInt(v)
	case uint:
		return convInt(v)
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return convInt(v)
	case uint64:
		return convInt(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), true
		}
	}
	return 0, false
}

func convInt[T int64 | uint | uint32 | uint64](v T) (int, bool) {
	n, err := safecast.Conv[int](v)
	return n, err == nil
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if n, ok := asInt(raw); ok {
		return float64(n), true
	}
	return 0, false
}

func asBool(raw any) (bool, bool) {
	v, ok := raw.(bool)
	return v, ok
}

func asString(raw any) (string, bool) {
	v, ok := raw.(string)
	return v, ok
}

func asList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// asStringList accepts a list of strings or a single string.
func asStringList(raw any) ([]string, bool) {
	if s, ok := asString(raw); ok {
		return []string{s}, true
	}
	list, ok := asList(raw)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := asString(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// AsMap exposes map coercion for callers that pre-process raw configuration.
func AsMap(raw any) (map[string]any, bool) {
	return asMap(raw)
}
