package theme

import (
	"encoding/json"
	"testing"
)

const sampleTheme = `{
  "rules": [
    {"type": "Color", "id": "accent", "value": [1, 0, 0, 1]},
    {"type": "Scalar", "id": "strokeWidth", "value": 4},
    {"type": "Gradient", "id": "bgGrad", "value": {"stops": [
      {"offset": 0, "r": 1, "g": 0, "b": 0, "a": 1},
      {"offset": 1, "r": 0, "g": 0, "b": 1, "a": 0.5}
    ]}},
    {"type": "Vector", "id": "offset", "value": [10, 20]},
    {"type": "Unknown", "id": "ignored"},
    {"type": "Color", "id": "scoped", "animations": ["other"], "value": [0, 1, 0]}
  ]
}`

func TestParseSkipsUnknownRuleTypes(t *testing.T) {
	doc, err := Parse(sampleTheme)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Rules) != 5 {
		t.Fatalf("expected 5 known rules (unknown skipped), got %d", len(doc.Rules))
	}
}

func TestLowerSelectsApplicableRulesOnly(t *testing.T) {
	doc, err := Parse(sampleTheme)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out, errs, err := Lower(doc, "intro", nil, nil)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected lowering errors: %v", errs)
	}

	var slots map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &slots); err != nil {
		t.Fatalf("Lower output not valid JSON: %v", err)
	}

	if _, ok := slots["accent"]; !ok {
		t.Error("expected universally-scoped accent rule in output")
	}
	if _, ok := slots["scoped"]; ok {
		t.Error("expected animation-scoped rule to be excluded for non-matching animation id")
	}
}

func TestLowerIsIdempotent(t *testing.T) {
	doc, err := Parse(sampleTheme)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	first, _, err := Lower(doc, "intro", nil, nil)
	if err != nil {
		t.Fatalf("first Lower: %v", err)
	}
	second, _, err := Lower(doc, "intro", nil, nil)
	if err != nil {
		t.Fatalf("second Lower: %v", err)
	}
	if first != second {
		t.Errorf("expected idempotent lowering, got:\n%s\nthen\n%s", first, second)
	}
}

func TestColorDowncastDropsAlphaExceptGradient(t *testing.T) {
	doc, err := Parse(sampleTheme)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, _, err := Lower(doc, "intro", nil, nil)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}

	var slots map[string]struct {
		Type  string    `json:"type"`
		Value []float64 `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &slots); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	accent := slots["accent"]
	if len(accent.Value) != 3 {
		t.Errorf("expected color slot value to have 3 components (RGB only), got %v", accent.Value)
	}
}

type fakeEvaluator struct {
	value float64
	err   error
}

func (f fakeEvaluator) Evaluate(expression, animationID string) (float64, error) {
	return f.value, f.err
}

func TestResolveScalarFallsBackOnExpressionFailure(t *testing.T) {
	rule := Rule{Type: RuleScalar, ID: "opacity", Expression: "sin(t)", Value: json.RawMessage(`0.5`)}
	lastGood := map[string]float64{"opacity": 0.9}

	v, err := resolveScalar(rule, fakeEvaluator{err: errBoom{}}, lastGood)
	if err != nil {
		t.Fatalf("expected fallback, not error: %v", err)
	}
	if v != 0.9 {
		t.Errorf("expected fallback to last good value 0.9, got %v", v)
	}
}

func TestResolveScalarUsesEvaluatorOnSuccess(t *testing.T) {
	rule := Rule{Type: RuleScalar, ID: "opacity", Expression: "sin(t)", Value: json.RawMessage(`0.5`)}
	v, err := resolveScalar(rule, fakeEvaluator{value: 0.75}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0.75 {
		t.Errorf("expected evaluator value 0.75, got %v", v)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestDocumentSetAndRemoveRule(t *testing.T) {
	doc := &Document{}
	doc.SetRule(Rule{Type: RuleColor, ID: "a", Value: json.RawMessage(`[1,0,0]`)})
	doc.SetRule(Rule{Type: RuleColor, ID: "a", Value: json.RawMessage(`[0,1,0]`)})

	if len(doc.Rules) != 1 {
		t.Fatalf("expected SetRule to replace existing rule by id, got %d rules", len(doc.Rules))
	}
	r, ok := doc.Rule("a")
	if !ok {
		t.Fatal("expected rule a to be present")
	}
	if string(r.Value) != `[0,1,0]` {
		t.Errorf("expected replaced value, got %s", r.Value)
	}

	if !doc.RemoveRule("a") {
		t.Error("expected RemoveRule to report removal")
	}
	if doc.RemoveRule("a") {
		t.Error("expected second RemoveRule to report no-op")
	}
}

func TestGradientStopLayout(t *testing.T) {
	doc, err := Parse(sampleTheme)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, _, err := Lower(doc, "intro", nil, nil)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	var slots map[string]struct {
		Value struct {
			ColorStops []float64 `json:"colorStops"`
			AlphaStops []float64 `json:"alphaStops"`
		} `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &slots); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g := slots["bgGrad"].Value
	if len(g.ColorStops) != 8 {
		t.Errorf("expected 2 stops * 4 components = 8, got %d", len(g.ColorStops))
	}
	if len(g.AlphaStops) != 4 {
		t.Errorf("expected 2 stops * 2 components = 4, got %d", len(g.AlphaStops))
	}
}
