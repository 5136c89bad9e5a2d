package widgetspec

// EvaluateCondition applies a declarative predicate to a resolved item. It
// is a closed, total function over the fixed operator set: no code
// execution, no property-path traversal beyond the flat field set, and it
// never panics. Unknown operators evaluate to true so that documents written
// against a future operator set degrade to visible rather than hidden.
func EvaluateCondition(condition DisplayCondition, item ResolvedDataItem) bool {
	fieldValue, _ := item.Field(condition.Field)
	conditionValue := condition.Value

	switch condition.Operator {
	case OpEq:
		return strictEqual(fieldValue, conditionValue)
	case OpNeq:
		return !strictEqual(fieldValue, conditionValue)
	case OpGt:
		a, b, ok := numericPair(fieldValue, conditionValue)
		return ok && a > b
	case OpLt:
		a, b, ok := numericPair(fieldValue, conditionValue)
		return ok && a < b
	case OpGte:
		a, b, ok := numericPair(fieldValue, conditionValue)
		return ok && a >= b
	case OpLte:
		a, b, ok := numericPair(fieldValue, conditionValue)
		return ok && a <= b
	case OpTruthy:
		return truthy(fieldValue)
	case OpFalsy:
		return !truthy(fieldValue)
	default:
		return true
	}
}

// ShouldShow gates a display node. Absence of a condition means visible.
func ShouldShow(condition *DisplayCondition, item ResolvedDataItem) bool {
	if condition == nil {
		return true
	}
	return EvaluateCondition(*condition, item)
}

// strictEqual mirrors strict equality over JSON scalar values: numbers
// compare numerically regardless of integer/float representation, strings
// and bools compare by value, nil equals only nil. Composite values never
// compare equal.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if na, aok := asNumber(a); aok {
		nb, bok := asNumber(b)
		return bok && na == nb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func numericPair(a, b any) (float64, float64, bool) {
	na, aok := asNumber(a)
	nb, bok := asNumber(b)
	if !aok || !bok {
		return 0, 0, false
	}
	return na, nb, true
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// truthy follows JavaScript coercion: nil, false, zero, and the empty
// string are falsy; everything else, including empty slices and structs, is
// truthy.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	default:
		if n, ok := asNumber(v); ok {
			return n != 0
		}
		return true
	}
}
