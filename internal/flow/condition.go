package flow

import (
	"strconv"
	"strings"
)

// EvalCondition reports whether one condition holds for the given answer
// value. A missing answer is passed as nil. It never panics: type mismatches
// evaluate to false rather than erroring, and an unknown operator is false.
func EvalCondition(c Condition, answer any) bool {
	switch c.Operator {
	case OpEquals:
		return strictEquals(answer, c.Value)
	case OpNotEquals:
		return !strictEquals(answer, c.Value)
	case OpGreaterThan:
		an, aok := toNumber(answer)
		vn, vok := valueNumber(c.Value)
		return aok && vok && an > vn
	case OpLessThan:
		an, aok := toNumber(answer)
		vn, vok := valueNumber(c.Value)
		return aok && vok && an < vn
	case OpContains:
		return containsFold(answer, c.Value)
	case OpNotContains:
		return !containsFold(answer, c.Value)
	case OpIsEmpty:
		return isEmptyAnswer(answer)
	case OpIsNotEmpty:
		return !isEmptyAnswer(answer)
	default:
		return false
	}
}

// strictEquals is type-sensitive: no coercion between strings and numbers.
// Numeric Go kinds are normalized to float64 first so answers recorded from
// decoded JSON (float64) and from Go callers (int) compare the same.
func strictEquals(answer any, v Value) bool {
	switch v.Kind {
	case ValueNumber:
		n, ok := asFloat(answer)
		return ok && n == v.Num
	default:
		s, ok := answer.(string)
		return ok && s == v.Text
	}
}

func containsFold(answer any, v Value) bool {
	if answer == nil {
		return false
	}
	return strings.Contains(strings.ToLower(stringify(answer)), strings.ToLower(v.String()))
}

// isEmptyAnswer mirrors the authoring tool's falsiness test: absent values,
// the empty string, zero and false are all considered empty. An empty
// multi-select slice is not.
func isEmptyAnswer(answer any) bool {
	switch a := answer.(type) {
	case nil:
		return true
	case string:
		return a == ""
	case bool:
		return !a
	default:
		if n, ok := asFloat(answer); ok {
			return n == 0
		}
		return false
	}
}

// asFloat converts Go numeric kinds to float64 without parsing strings.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toNumber applies loose numeric coercion to an answer: numbers pass
// through, numeric strings parse (the empty string is zero), booleans map to
// 0/1, a single-element slice coerces through its element. Everything else,
// including a missing answer, is "not a number" and fails ordered
// comparisons.
func toNumber(v any) (float64, bool) {
	if n, ok := asFloat(v); ok {
		return n, true
	}
	switch a := v.(type) {
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		return n, err == nil
	case bool:
		if a {
			return 1, true
		}
		return 0, true
	case []any:
		if len(a) == 0 {
			return 0, true
		}
		if len(a) == 1 {
			return toNumber(a[0])
		}
		return 0, false
	default:
		return 0, false
	}
}

// valueNumber coerces the condition operand for ordered comparisons.
func valueNumber(v Value) (float64, bool) {
	if v.Kind == ValueNumber {
		return v.Num, true
	}
	s := strings.TrimSpace(v.Text)
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// stringify renders an answer for substring matching. Multi-select answers
// join their elements with commas, so contains "premium" matches a selection
// of ["basic","premium"].
func stringify(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case string:
		return a
	case bool:
		return strconv.FormatBool(a)
	case float64:
		return strconv.FormatFloat(a, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(a), 'f', -1, 32)
	case int:
		return strconv.Itoa(a)
	case int64:
		return strconv.FormatInt(a, 10)
	case []any:
		parts := make([]string, 0, len(a))
		for _, e := range a {
			parts = append(parts, stringify(e))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
