package sanitize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// number reads a JSON number decoded into any of the usual Go shapes.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return number(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// integer accepts only numbers without a fractional part.
func integer(v any) (int, bool) {
	f, ok := number(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// text returns a non-blank string. Numeric ids are rendered the way JSON
// would print them.
func text(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

func textOr(v any, fallback string) string {
	if s, ok := text(v); ok {
		return s
	}
	return fallback
}

// round matches the half-up rounding the layout coordinates were designed for.
func round(f float64) float64 {
	return math.Floor(f + 0.5)
}

func list(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}
