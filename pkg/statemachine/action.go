package statemachine

import (
	"strconv"

	"github.com/LottieFiles/dotlottie-go/pkg/inputs"
)

// ActionKind enumerates the action variants a state's entry/exit list or a
// listener's action list can carry.
type ActionKind int

const (
	ActionOpenURL ActionKind = iota
	ActionIncrement
	ActionDecrement
	ActionToggle
	ActionSetBoolean
	ActionSetString
	ActionSetNumeric
	ActionFire
	ActionReset
	ActionSetExpression
	ActionSetTheme
	ActionSetThemeData
	ActionSetFrame
	ActionSetProgress
	ActionFireCustomEvent
)

// operand is a literal-or-reference numeric/string value, as actions like
// Increment/SetFrame/SetProgress accept either a literal number embedded in
// the document or a "$name" reference to another trigger's current value.
type operand struct {
	literal string
	isRef   bool
	refName string
}

func parseOperand(raw string) operand {
	if ref, ok := parseOperandRef(raw); ok {
		return operand{isRef: true, refName: ref}
	}
	return operand{literal: raw}
}

func (o operand) resolveNumeric(ts *triggerSet, fallback float64) float64 {
	if o.literal == "" && !o.isRef {
		return fallback
	}
	if o.isRef {
		if v, ok := ts.numericValue(o.refName); ok {
			return v
		}
		return fallback
	}
	v, err := strconv.ParseFloat(o.literal, 64)
	if err != nil {
		return fallback
	}
	return v
}

// Action is a single operation a state's entry/exit list, or a listener,
// executes. Fields beyond Kind and TriggerName are used only by the kinds
// that need them; unused fields are left zero.
type Action struct {
	Kind        ActionKind
	TriggerName string
	URL         string
	Value       string
	HasValue    bool
}

// Execute runs the action against an engine, mutating its trigger set
// and/or driving the bound PlayerControl. It returns nothing; a trigger
// mutation is recorded on the engine (actionMutatedTriggers), which the
// pipeline reads to decide whether its next iteration skips the Global state.
func (a Action) Execute(e *Engine) {
	switch a.Kind {
	case ActionOpenURL:
		// Opening a URL is a host-process side effect outside this
		// engine's responsibility; surface it through an observer instead
		// of reaching for an os/exec-style call here, and only once the
		// engine's OpenURLPolicy has cleared it.
		if e.allowOpenURL(a.URL) {
			e.notifyCustomEvent("open_url:" + a.URL)
		}

	case ActionIncrement:
		cur, _ := e.triggers.numericValue(a.TriggerName)
		step := 1.0
		if a.HasValue {
			step = parseOperand(a.Value).resolveNumeric(e.triggers, 1)
		}
		e.setNumericInternal(a.TriggerName, cur+step)

	case ActionDecrement:
		cur, _ := e.triggers.numericValue(a.TriggerName)
		step := 1.0
		if a.HasValue {
			step = parseOperand(a.Value).resolveNumeric(e.triggers, 1)
		}
		e.setNumericInternal(a.TriggerName, cur-step)

	case ActionToggle:
		cur, _ := e.triggers.booleanValue(a.TriggerName)
		e.setBooleanInternal(a.TriggerName, !cur)

	case ActionSetBoolean:
		e.setBooleanInternal(a.TriggerName, a.Value == "true")

	case ActionSetString:
		e.setStringInternal(a.TriggerName, a.Value)

	case ActionSetNumeric:
		v := parseOperand(a.Value).resolveNumeric(e.triggers, 0)
		e.setNumericInternal(a.TriggerName, v)

	case ActionFire:
		e.fireInternal(a.TriggerName)

	case ActionReset:
		e.resetTriggerInternal(a.TriggerName)

	case ActionSetExpression:
		// Expression-backed scalar rules require an external JS evaluator
		// capability; no engine-side evaluator exists to apply one
		// against, so this is a deliberate no-op.

	case ActionSetTheme:
		if e.player != nil {
			e.player.SetTheme(a.Value)
		}

	case ActionSetThemeData:
		if e.player != nil {
			e.player.SetThemeData(a.Value)
		}

	case ActionSetFrame:
		if e.player != nil {
			frame := parseOperand(a.Value).resolveNumeric(e.triggers, 0)
			e.player.SetFrame(frame)
		}

	case ActionSetProgress:
		if e.player != nil {
			pct := parseOperand(a.Value).resolveNumeric(e.triggers, 0)
			total := e.player.TotalFrames()
			if total > 0 {
				frame := (pct / 100) * total
				if frame >= total {
					frame = total - 1
				}
				if frame < 0 {
					frame = 0
				}
				e.player.SetFrame(frame)
			}
		}

	case ActionFireCustomEvent:
		e.notifyCustomEvent(a.Value)
	}
}

// PlayerControl is the subset of *player.Player capabilities an action can
// drive. It is declared here, independent of package player, so the
// engine carries no hard dependency on a concrete renderer-bound player
// and can be driven by a fake/test double.
type PlayerControl interface {
	Play() bool
	Pause() bool
	Stop() bool
	SetFrame(no float64) bool
	Seek(no float64) bool
	TotalFrames() float64
	SetTheme(themeID string) bool
	SetThemeData(themeData string) bool
	SetSlots(slotsJSON string) bool
	GlobalInputs() *inputs.GlobalInputs
}
