package statemachine

import (
	"encoding/json"
	"fmt"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
	"github.com/LottieFiles/dotlottie-go/internal/schema"
)

// Document is a parsed state-machine document: a trigger declaration
// list, a state graph, and a listener list.
type Document struct {
	ID            string
	Initial       string
	MaxCycleCount int
	States        []State
	Triggers      []Trigger
	Listeners     []Listener
}

// StateByName looks up a state by name.
func (d *Document) StateByName(name string) (*State, bool) {
	for i := range d.States {
		if d.States[i].Name == name {
			return &d.States[i], true
		}
	}
	return nil, false
}

type rawGuard struct {
	Type     string `json:"type"`
	Name     string `json:"triggerName"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type rawTransition struct {
	TargetState string     `json:"targetState"`
	Guards      []rawGuard `json:"guards"`
}

type rawState struct {
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Animation       string          `json:"animation,omitempty"`
	Loop            *bool           `json:"loop,omitempty"`
	LoopCount       *uint32         `json:"loopCount,omitempty"`
	Final           bool            `json:"final,omitempty"`
	Autoplay        *bool           `json:"autoplay,omitempty"`
	Mode            *string         `json:"mode,omitempty"`
	Speed           *float64        `json:"speed,omitempty"`
	Segment         []float64       `json:"segment,omitempty"`
	BackgroundColor *uint32         `json:"backgroundColor,omitempty"`
	EntryActions    []rawActionDoc  `json:"entryActions,omitempty"`
	ExitActions     []rawActionDoc  `json:"exitActions,omitempty"`
	Transitions     []rawTransition `json:"transitions,omitempty"`
}

// rawActionDoc tolerates either a bare string value or a numeric literal
// in the document's "value" field.
type rawActionDoc struct {
	Type        string          `json:"type"`
	TriggerName string          `json:"triggerName,omitempty"`
	URL         string          `json:"url,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
}

type rawTrigger struct {
	Type  string          `json:"type"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

type rawListener struct {
	Type      string         `json:"type"`
	StateName string          `json:"stateName,omitempty"`
	LayerName string          `json:"layerName,omitempty"`
	Actions   []rawActionDoc `json:"actions,omitempty"`
}

type rawDescriptor struct {
	ID            string `json:"id"`
	Initial       string `json:"initial"`
	MaxCycleCount int    `json:"maxCycleCount,omitempty"`
}

type rawDocument struct {
	Descriptor rawDescriptor `json:"descriptor"`
	States     []rawState    `json:"states"`
	Triggers   []rawTrigger  `json:"triggers"`
	Listeners  []rawListener `json:"listeners"`
}

func valueString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	// Numeric/bool literals in the document render as their JSON text,
	// which is also a valid operand string for the numeric parser.
	return string(raw), true
}

func convertAction(ra rawActionDoc) (Action, error) {
	kind, ok := parseActionKind(ra.Type)
	if !ok {
		return Action{}, &corerr.ParsingError{Reason: "unknown action type: " + ra.Type}
	}
	a := Action{Kind: kind, TriggerName: ra.TriggerName, URL: ra.URL}
	if v, ok := valueString(ra.Value); ok {
		a.Value = v
		a.HasValue = true
	}
	return a, nil
}

func parseActionKind(s string) (ActionKind, bool) {
	switch s {
	case "OpenUrl":
		return ActionOpenURL, true
	case "Increment":
		return ActionIncrement, true
	case "Decrement":
		return ActionDecrement, true
	case "Toggle":
		return ActionToggle, true
	case "SetBoolean":
		return ActionSetBoolean, true
	case "SetString":
		return ActionSetString, true
	case "SetNumeric":
		return ActionSetNumeric, true
	case "Fire":
		return ActionFire, true
	case "Reset":
		return ActionReset, true
	case "SetExpression":
		return ActionSetExpression, true
	case "SetTheme":
		return ActionSetTheme, true
	case "SetThemeData":
		return ActionSetThemeData, true
	case "SetFrame":
		return ActionSetFrame, true
	case "SetProgress":
		return ActionSetProgress, true
	case "FireCustomEvent":
		return ActionFireCustomEvent, true
	default:
		return 0, false
	}
}

func parseListenerKind(s string) (ListenerKind, bool) {
	switch s {
	case "PointerDown":
		return ListenerPointerDown, true
	case "PointerUp":
		return ListenerPointerUp, true
	case "PointerMove":
		return ListenerPointerMove, true
	case "PointerEnter":
		return ListenerPointerEnter, true
	case "PointerExit":
		return ListenerPointerExit, true
	case "Click":
		return ListenerClick, true
	case "OnComplete":
		return ListenerOnComplete, true
	case "OnLoopComplete":
		return ListenerOnLoopComplete, true
	default:
		return 0, false
	}
}

func convertGuard(rg rawGuard) (Guard, error) {
	var kind TriggerKind
	switch rg.Type {
	case "Numeric":
		kind = TriggerNumeric
	case "String":
		kind = TriggerString
	case "Boolean":
		kind = TriggerBoolean
	case "Event":
		kind = TriggerEvent
	default:
		return Guard{}, &corerr.ParsingError{Reason: "unknown guard type: " + rg.Type}
	}

	g := Guard{Kind: kind, Name: rg.Name}
	if kind == TriggerEvent {
		return g, nil
	}

	op, ok := parseOperator(rg.Operator)
	if !ok {
		return Guard{}, &corerr.ParsingError{Reason: "unknown guard operator: " + rg.Operator}
	}
	g.Operator = op

	if ref, isRef := parseOperandRef(rg.Value); isRef {
		g.RefName = ref
		return g, nil
	}

	switch kind {
	case TriggerNumeric:
		var f float64
		if _, err := fmt.Sscanf(rg.Value, "%g", &f); err != nil {
			return Guard{}, &corerr.ParsingError{Reason: "guard on " + rg.Name + " has a non-numeric operand"}
		}
		g.NumericOperand = f
	case TriggerString:
		g.StringOperand = rg.Value
	case TriggerBoolean:
		g.BooleanOperand = rg.Value == "true"
	}
	return g, nil
}

// Parse parses a state-machine document, rejecting five structural
// errors: an unresolvable initial state, more than one GlobalState,
// duplicate state names, a state with more than one guardless transition,
// and a transition targeting an unknown state.
func Parse(text string) (*Document, error) {
	if err := schema.Validate(schema.StateMachine, text); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &corerr.ParsingError{Reason: "state machine document is not valid JSON: " + err.Error()}
	}

	doc := &Document{ID: raw.Descriptor.ID, Initial: raw.Descriptor.Initial, MaxCycleCount: raw.Descriptor.MaxCycleCount}

	for _, rt := range raw.Triggers {
		t, err := convertTrigger(rt)
		if err != nil {
			return nil, err
		}
		doc.Triggers = append(doc.Triggers, t)
	}

	seenNames := make(map[string]bool, len(raw.States))
	globalCount := 0

	for _, rs := range raw.States {
		if seenNames[rs.Name] {
			return nil, &corerr.StateMachineEngineError{
				Kind:   corerr.DuplicateStateName,
				Reason: "duplicate state name: " + rs.Name,
			}
		}
		seenNames[rs.Name] = true

		kind := StatePlayback
		if rs.Type == "GlobalState" {
			kind = StateGlobal
			globalCount++
		}

		s := State{
			Name:      rs.Name,
			Kind:      kind,
			Animation: rs.Animation,
			Final:     rs.Final,
		}
		s.Override = PlaybackOverride{
			Loop:            rs.Loop,
			LoopCount:       rs.LoopCount,
			Autoplay:        rs.Autoplay,
			Mode:            rs.Mode,
			Speed:           rs.Speed,
			BackgroundColor: rs.BackgroundColor,
		}
		if len(rs.Segment) == 2 {
			s.Override.SegmentStart = &rs.Segment[0]
			s.Override.SegmentEnd = &rs.Segment[1]
		}

		for _, ra := range rs.EntryActions {
			a, err := convertAction(ra)
			if err != nil {
				return nil, err
			}
			s.EntryActions = append(s.EntryActions, a)
		}
		for _, ra := range rs.ExitActions {
			a, err := convertAction(ra)
			if err != nil {
				return nil, err
			}
			s.ExitActions = append(s.ExitActions, a)
		}

		guardlessCount := 0
		for _, rtr := range rs.Transitions {
			tr := Transition{TargetState: rtr.TargetState}
			for _, rg := range rtr.Guards {
				g, err := convertGuard(rg)
				if err != nil {
					return nil, err
				}
				tr.Guards = append(tr.Guards, g)
			}
			if !tr.hasGuards() {
				guardlessCount++
				if guardlessCount > 1 {
					return nil, &corerr.StateMachineEngineError{
						Kind:   corerr.MultipleGuardlessTransitions,
						Reason: "state " + rs.Name + " declares more than one guardless transition",
					}
				}
			}
			s.Transitions = append(s.Transitions, tr)
		}

		doc.States = append(doc.States, s)
	}

	if globalCount > 1 {
		return nil, &corerr.ParsingError{Reason: "a document may declare at most one GlobalState"}
	}

	if _, ok := doc.StateByName(doc.Initial); !ok {
		return nil, &corerr.ParsingError{Reason: "initial state not found: " + doc.Initial}
	}

	for _, s := range doc.States {
		for _, tr := range s.Transitions {
			if _, ok := doc.StateByName(tr.TargetState); !ok {
				return nil, &corerr.ParsingError{Reason: "transition in state " + s.Name + " targets unknown state: " + tr.TargetState}
			}
		}
	}

	for _, rl := range raw.Listeners {
		kind, ok := parseListenerKind(rl.Type)
		if !ok {
			return nil, &corerr.ParsingError{Reason: "unknown listener type: " + rl.Type}
		}
		l := Listener{Kind: kind, StateName: rl.StateName, LayerName: rl.LayerName}
		for _, ra := range rl.Actions {
			a, err := convertAction(ra)
			if err != nil {
				return nil, err
			}
			l.Actions = append(l.Actions, a)
		}
		doc.Listeners = append(doc.Listeners, l)
	}

	return doc, nil
}

func convertTrigger(rt rawTrigger) (Trigger, error) {
	t := Trigger{Name: rt.Name}
	switch rt.Type {
	case "Numeric":
		t.Kind = TriggerNumeric
		var v float64
		_ = json.Unmarshal(rt.Value, &v)
		t.NumericValue = v
	case "String":
		t.Kind = TriggerString
		var v string
		_ = json.Unmarshal(rt.Value, &v)
		t.StringValue = v
	case "Boolean":
		t.Kind = TriggerBoolean
		var v bool
		_ = json.Unmarshal(rt.Value, &v)
		t.BooleanValue = v
	case "Event":
		t.Kind = TriggerEvent
	default:
		return Trigger{}, &corerr.ParsingError{Reason: "unknown trigger type: " + rt.Type}
	}
	return t, nil
}
