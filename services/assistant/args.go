package assistant

import (
	"fmt"
	"time"
)

// Argument coercion helpers. Tool arguments arrive as a JSON-decoded
// map[string]any from the model, so numbers are float64 and everything is
// optional until a handler says otherwise.

func argString(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	return v, nil
}

func argInt(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func argStrings(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func requireDate(args map[string]any, key string) (time.Time, error) {
	v, err := requireString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date for %s: %s (expected YYYY-MM-DD)", key, v)
	}
	return d, nil
}
