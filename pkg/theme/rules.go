package theme

import "encoding/json"

// RuleType classifies a theme rule by the slot kind it overrides.
type RuleType int

const (
	RuleColor RuleType = iota
	RuleScalar
	RuleGradient
	RuleImage
	RuleText
	RuleVector
	RulePosition
)

// String returns the wire representation of a RuleType.
func (t RuleType) String() string {
	switch t {
	case RuleColor:
		return "Color"
	case RuleScalar:
		return "Scalar"
	case RuleGradient:
		return "Gradient"
	case RuleImage:
		return "Image"
	case RuleText:
		return "Text"
	case RuleVector:
		return "Vector"
	case RulePosition:
		return "Position"
	default:
		return "Unknown"
	}
}

func parseRuleType(s string) (RuleType, bool) {
	switch s {
	case "Color":
		return RuleColor, true
	case "Scalar":
		return RuleScalar, true
	case "Gradient":
		return RuleGradient, true
	case "Image":
		return RuleImage, true
	case "Text":
		return RuleText, true
	case "Vector":
		return RuleVector, true
	case "Position":
		return RulePosition, true
	default:
		return RuleColor, false
	}
}

// Rule is one entry of a theme/input document. Exactly one of Value or
// Keyframes is populated for scalar-like types; Type selects how Value is
// interpreted. Unknown rule types are skipped without error by the parser,
// never by Rule itself.
type Rule struct {
	Type       RuleType
	ID         string
	Animations []string
	Expression string
	Value      json.RawMessage
	Keyframes  json.RawMessage
}

// AppliesTo reports whether the rule applies to the given active animation
// id: a rule with no Animations list applies universally.
func (r Rule) AppliesTo(activeAnimationID string) bool {
	if len(r.Animations) == 0 {
		return true
	}
	for _, id := range r.Animations {
		if id == activeAnimationID {
			return true
		}
	}
	return false
}

// ColorValue is an RGBA color in the [0,1] range, as carried by a Color rule.
type ColorValue struct {
	R, G, B, A float64
}

// GradientStopValue is one color stop of a Gradient rule.
type GradientStopValue struct {
	Offset     float64 `json:"offset"`
	R, G, B, A float64
}

// ImageValue carries the static fields of an Image rule.
type ImageValue struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Path    string `json:"path,omitempty"`
	DataURL string `json:"dataUrl,omitempty"`
}

// TextValue carries the document fields of a Text rule.
type TextValue struct {
	Font          string     `json:"font"`
	Size          float64    `json:"size"`
	FillColor     ColorValue `json:"fillColor"`
	StrokeColor   ColorValue `json:"strokeColor"`
	Justification string     `json:"justification,omitempty"`
	Caps          bool       `json:"caps,omitempty"`
	Tracking      float64    `json:"tracking,omitempty"`
}

// PositionValue is a 2D point with optional spatial Bezier tangents.
type PositionValue struct {
	X, Y                   float64
	InTangentX, InTangentY   float64
	OutTangentX, OutTangentY float64
}
