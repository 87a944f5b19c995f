package theme

import (
	"encoding/json"
	"sort"
)

// ExpressionEvaluator is the capability the embedded JS evaluator provides
// to rules carrying an "expression" field. The core never implements this
// itself; it only calls it. A failed evaluation leaves the rule's last
// good value in place, so Lower's caller supplies the previous slot value
// to fall back to. It is called with the rule's expression and slot id.
type ExpressionEvaluator interface {
	Evaluate(expression string, slotID string) (float64, error)
}

// slotWire is the on-the-wire shape of one lowered slot override.
type slotWire struct {
	Type      string      `json:"type"`
	Value     interface{} `json:"value,omitempty"`
	Keyframes interface{} `json:"keyframes,omitempty"`
}

// Lower selects the rules applicable to activeAnimationID and serializes
// their values into the slot-override JSON document a renderer.Renderer
// consumes via SetSlots. It is a pure function of its inputs: applying the
// same document to the same animation id twice yields byte-identical JSON,
// since Go's encoding/json sorts map keys deterministically.
//
// eval may be nil; when non-nil it is consulted for rules carrying a
// non-empty Expression, and lastGood supplies the fallback value (keyed by
// slot id) used when evaluation fails.
func Lower(doc *Document, activeAnimationID string, eval ExpressionEvaluator, lastGood map[string]float64) (string, map[string]string, error) {
	slots := make(map[string]slotWire)
	errs := make(map[string]string)

	for _, rule := range doc.Rules {
		if !rule.AppliesTo(activeAnimationID) {
			continue
		}

		wire, err := lowerRule(rule, eval, lastGood)
		if err != nil {
			errs[rule.ID] = err.Error()
			continue
		}
		if wire.Type == "" {
			continue
		}
		slots[rule.ID] = wire
	}

	out, err := json.Marshal(slots)
	if err != nil {
		return "", errs, err
	}
	return string(out), errs, nil
}

func lowerRule(rule Rule, eval ExpressionEvaluator, lastGood map[string]float64) (slotWire, error) {
	switch rule.Type {
	case RuleColor:
		c, err := decodeColor(rule.Value)
		if err != nil {
			return slotWire{}, err
		}
		return slotWire{Type: "Color", Value: []float64{c.R, c.G, c.B}}, nil

	case RuleScalar:
		if rule.Keyframes != nil {
			kfs, err := decodeScalarKeyframes(rule.Keyframes)
			if err != nil {
				return slotWire{}, err
			}
			pairs := make([][2]float64, 0, len(kfs))
			for _, kf := range kfs {
				pairs = append(pairs, [2]float64{kf.Frame, kf.Value})
			}
			return slotWire{Type: "Scalar", Keyframes: pairs}, nil
		}
		v, err := resolveScalar(rule, eval, lastGood)
		if err != nil {
			return slotWire{}, err
		}
		return slotWire{Type: "Scalar", Value: v}, nil

	case RuleGradient:
		stops, err := decodeGradient(rule.Value)
		if err != nil {
			return slotWire{}, err
		}
		sort.Slice(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
		colorStops := make([]float64, 0, len(stops)*4)
		alphaStops := make([]float64, 0, len(stops)*2)
		for _, s := range stops {
			colorStops = append(colorStops, s.Offset, s.R, s.G, s.B)
			alphaStops = append(alphaStops, s.Offset, s.A)
		}
		return slotWire{Type: "Gradient", Value: map[string]interface{}{
			"colorStops": colorStops,
			"alphaStops": alphaStops,
		}}, nil

	case RuleImage:
		img, err := decodeImage(rule.Value)
		if err != nil {
			return slotWire{}, err
		}
		return slotWire{Type: "Image", Value: img}, nil

	case RuleText:
		txt, err := decodeText(rule.Value)
		if err != nil {
			return slotWire{}, err
		}
		return slotWire{Type: "Text", Value: map[string]interface{}{
			"font":          txt.Font,
			"size":          txt.Size,
			"fillColor":     []float64{txt.FillColor.R, txt.FillColor.G, txt.FillColor.B},
			"strokeColor":   []float64{txt.StrokeColor.R, txt.StrokeColor.G, txt.StrokeColor.B},
			"justification": txt.Justification,
			"caps":          txt.Caps,
			"tracking":      txt.Tracking,
		}}, nil

	case RuleVector:
		v, err := decodeVector(rule.Value)
		if err != nil {
			return slotWire{}, err
		}
		return slotWire{Type: "Vector", Value: []float64{v[0], v[1]}}, nil

	case RulePosition:
		p, err := decodePosition(rule.Value)
		if err != nil {
			return slotWire{}, err
		}
		return slotWire{Type: "Position", Value: map[string]interface{}{
			"x":          p.X,
			"y":          p.Y,
			"inTangent":  []float64{p.InTangentX, p.InTangentY},
			"outTangent": []float64{p.OutTangentX, p.OutTangentY},
		}}, nil

	default:
		// Unknown rule types yield an empty wire, which Lower skips; not
		// reached via Parse, which already drops them, but kept for direct
		// Rule construction.
		return slotWire{}, nil
	}
}

// resolveScalar evaluates an expression-bearing scalar rule, falling back to
// the last good value on failure; a rule without an expression just decodes
// its static value.
func resolveScalar(rule Rule, eval ExpressionEvaluator, lastGood map[string]float64) (float64, error) {
	if rule.Expression == "" || eval == nil {
		return decodeScalar(rule.Value)
	}
	v, err := eval.Evaluate(rule.Expression, rule.ID)
	if err != nil {
		if prev, ok := lastGood[rule.ID]; ok {
			return prev, nil
		}
		return decodeScalar(rule.Value)
	}
	return v, nil
}
