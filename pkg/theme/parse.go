package theme

import (
	"encoding/json"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
	"github.com/LottieFiles/dotlottie-go/internal/schema"
)

// Document is a parsed theme/input document: a flat list of rules.
type Document struct {
	Rules []Rule
}

type rawRule struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Animations []string        `json:"animations,omitempty"`
	Expression string          `json:"expression,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
	Keyframes  json.RawMessage `json:"keyframes,omitempty"`
}

type rawDocument struct {
	Rules []rawRule `json:"rules"`
}

// Parse parses a theme/input document. Unknown rule types are skipped
// without error; a structurally invalid document (not JSON, missing
// "rules") fails with ParsingError.
func Parse(text string) (*Document, error) {
	if err := schema.Validate(schema.Theme, text); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &corerr.ParsingError{Reason: "theme document is not valid JSON: " + err.Error()}
	}

	doc := &Document{}
	for _, rr := range raw.Rules {
		rt, ok := parseRuleType(rr.Type)
		if !ok {
			continue
		}
		doc.Rules = append(doc.Rules, Rule{
			Type:       rt,
			ID:         rr.ID,
			Animations: rr.Animations,
			Expression: rr.Expression,
			Value:      rr.Value,
			Keyframes:  rr.Keyframes,
		})
	}
	return doc, nil
}

// Rule looks up a rule by id.
func (d *Document) Rule(id string) (Rule, bool) {
	for _, r := range d.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// SetRule inserts or replaces a rule by id, matching the original
// implementation's get_rule/set_rule/remove_rule shape.
func (d *Document) SetRule(r Rule) {
	for i, existing := range d.Rules {
		if existing.ID == r.ID {
			d.Rules[i] = r
			return
		}
	}
	d.Rules = append(d.Rules, r)
}

// RemoveRule deletes a rule by id, reporting whether it was present.
func (d *Document) RemoveRule(id string) bool {
	for i, r := range d.Rules {
		if r.ID == id {
			d.Rules = append(d.Rules[:i], d.Rules[i+1:]...)
			return true
		}
	}
	return false
}
