package statemachine

import "strings"

// Operator is the comparison a guard applies between a trigger's current
// value and its literal-or-reference operand.
type Operator int

const (
	OpEq Operator = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func parseOperator(s string) (Operator, bool) {
	switch s {
	case "==":
		return OpEq, true
	case "!=":
		return OpNe, true
	case "<":
		return OpLt, true
	case "<=":
		return OpLe, true
	case ">":
		return OpGt, true
	case ">=":
		return OpGe, true
	default:
		return 0, false
	}
}

// Guard is one condition in a transition's conjunctive guard list.
// Operand carries a literal value for its Kind, unless RefName is set, in
// which case the operand is another trigger's current value (a "$name"
// reference in the document).
type Guard struct {
	Kind     TriggerKind
	Name     string
	Operator Operator
	RefName  string

	NumericOperand float64
	StringOperand  string
	BooleanOperand bool
}

func parseOperandRef(raw string) (ref string, isRef bool) {
	if strings.HasPrefix(raw, "$") {
		return strings.TrimPrefix(raw, "$"), true
	}
	return "", false
}

// satisfied evaluates the guard against the engine's current trigger
// values and, for an Event guard, the event pending in this pipeline
// iteration (empty string if none).
func (g Guard) satisfied(ts *triggerSet, firedEvent string) bool {
	switch g.Kind {
	case TriggerNumeric:
		cur, ok := ts.numericValue(g.Name)
		if !ok {
			return false
		}
		operand := g.NumericOperand
		if g.RefName != "" {
			v, ok := ts.numericValue(g.RefName)
			if !ok {
				return false
			}
			operand = v
		}
		return compareNumeric(cur, g.Operator, operand)

	case TriggerString:
		cur, ok := ts.stringValue(g.Name)
		if !ok {
			return false
		}
		operand := g.StringOperand
		if g.RefName != "" {
			v, ok := ts.stringValue(g.RefName)
			if !ok {
				return false
			}
			operand = v
		}
		return compareEquality(cur == operand, g.Operator)

	case TriggerBoolean:
		cur, ok := ts.booleanValue(g.Name)
		if !ok {
			return false
		}
		operand := g.BooleanOperand
		if g.RefName != "" {
			v, ok := ts.booleanValue(g.RefName)
			if !ok {
				return false
			}
			operand = v
		}
		return compareEquality(cur == operand, g.Operator)

	case TriggerEvent:
		if firedEvent == "" {
			return false
		}
		return firedEvent == g.Name

	default:
		return false
	}
}

func compareNumeric(cur float64, op Operator, operand float64) bool {
	switch op {
	case OpEq:
		return cur == operand
	case OpNe:
		return cur != operand
	case OpLt:
		return cur < operand
	case OpLe:
		return cur <= operand
	case OpGt:
		return cur > operand
	case OpGe:
		return cur >= operand
	default:
		return false
	}
}

func compareEquality(eq bool, op Operator) bool {
	switch op {
	case OpEq:
		return eq
	case OpNe:
		return !eq
	default:
		return false
	}
}
