// Package statemachine implements a trigger-driven graph of playback/global
// states whose PlaybackStates can start a bound player and carry Config
// overrides for the host to apply, fire actions, and notify observers.
package statemachine

import (
	"github.com/sirupsen/logrus"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
)

const (
	defaultMaxCycleCount = 20
	absoluteMaxCycleCount = 100
)

// Status is the engine's run state.
type Status int

const (
	StatusStopped Status = iota
	StatusRunning
	StatusPaused
)

// Observer receives state-machine lifecycle notifications.
type Observer interface {
	OnTransition(previous, next string)
	OnStateEntered(name string)
	OnStateExit(name string)
	OnCustomEvent(message string)
	OnError(message string)
}

// InputChangeObserver is an optional capability an Observer may also
// implement to hear about trigger mutations; checked via type assertion
// since most observers only care about state transitions.
type InputChangeObserver interface {
	OnInputChange(name string)
}

// OpenURLObserver is an optional capability an Observer may implement to
// decide whether a Prompt-gated OpenUrl action proceeds; checked via
// type assertion since most observers never see an OpenUrl action.
type OpenURLObserver interface {
	// OnOpenURLPrompt is asked once per Prompt-gated OpenUrl action; it
	// returns whether the action should be allowed to proceed.
	OnOpenURLPrompt(url string) bool
}

// OpenURLPolicy controls whether an OpenUrl action's custom-event intent
// is surfaced to observers at all. The zero value denies by default, so
// an Engine that is never told otherwise cannot leak an OpenUrl intent.
type OpenURLPolicy int

const (
	OpenURLPolicyDeny OpenURLPolicy = iota
	OpenURLPolicyAllow
	OpenURLPolicyPrompt
)

// Engine drives one parsed Document against a bound player.
type Engine struct {
	doc      *Document
	triggers *triggerSet
	player   PlayerControl
	logger   *logrus.Entry

	status       Status
	currentState *State
	globalState  *State

	history       []string
	maxCycles     int
	ignoreGlobal  bool
	openURLPolicy OpenURLPolicy

	actionMutatedTriggers bool
	firedEvent            string

	observers []Observer
}

// NewEngine constructs an Engine for doc, bound to player (which may be
// nil for a state machine driven purely by observer side effects).
func NewEngine(doc *Document, player PlayerControl, logger *logrus.Entry) *Engine {
	maxCycles := defaultMaxCycleCount
	if doc.MaxCycleCount > 0 {
		maxCycles = doc.MaxCycleCount
		if maxCycles > absoluteMaxCycleCount {
			maxCycles = absoluteMaxCycleCount
		}
	}
	e := &Engine{
		doc:       doc,
		triggers:  newTriggerSet(),
		player:    player,
		logger:    logger,
		maxCycles: maxCycles,
	}
	for _, t := range doc.Triggers {
		switch t.Kind {
		case TriggerNumeric:
			e.triggers.setNumeric(t.Name, t.NumericValue)
		case TriggerString:
			e.triggers.setString(t.Name, t.StringValue)
		case TriggerBoolean:
			e.triggers.setBoolean(t.Name, t.BooleanValue)
		case TriggerEvent:
			e.triggers.declareEvent(t.Name)
		}
	}
	for i := range doc.States {
		if doc.States[i].Kind == StateGlobal {
			e.globalState = &doc.States[i]
		}
	}
	return e
}

// Observe registers an observer for the lifetime of the engine.
func (e *Engine) Observe(o Observer) {
	e.observers = append(e.observers, o)
}

// Status reports the engine's current run state.
func (e *Engine) Status() Status { return e.status }

// CurrentStateName reports the name of the state currently active, or
// "" before Start has been called.
func (e *Engine) CurrentStateName() string {
	if e.currentState == nil {
		return ""
	}
	return e.currentState.Name
}

// Start enters the document's initial state and runs the pipeline once
// to settle any transitions the initial entry actions immediately
// trigger. policy gates every OpenUrl action executed for the remainder
// of this run (until the next Start).
func (e *Engine) Start(policy OpenURLPolicy) error {
	initial, ok := e.doc.StateByName(e.doc.Initial)
	if !ok {
		return &corerr.ParsingError{Reason: "initial state not found: " + e.doc.Initial}
	}
	e.status = StatusRunning
	e.history = nil
	e.ignoreGlobal = false
	e.openURLPolicy = policy
	if err := e.setCurrentStateLocked(initial.Name); err != nil {
		return err
	}
	return e.runPipelineLocked("")
}

// Pause suspends pipeline evaluation; trigger setters still update
// values but no longer drive transitions until Start is called again.
func (e *Engine) Pause() {
	if e.status == StatusRunning {
		e.status = StatusPaused
	}
}

// End stops the engine, clearing its current state.
func (e *Engine) End() {
	e.status = StatusStopped
	e.currentState = nil
	e.history = nil
}

// --- trigger mutation ---

func (e *Engine) SetNumericTrigger(name string, v float64) { e.setNumericInternal(name, v); e.retick() }
func (e *Engine) SetStringTrigger(name string, v string)   { e.setStringInternal(name, v); e.retick() }
func (e *Engine) SetBooleanTrigger(name string, v bool)    { e.setBooleanInternal(name, v); e.retick() }

// Fire posts a named event trigger and immediately re-runs the pipeline
// with it pending, consuming it within that pass.
func (e *Engine) Fire(name string) error {
	e.fireInternal(name)
	if e.status != StatusRunning {
		return nil
	}
	return e.runPipelineLocked(name)
}

func (e *Engine) setNumericInternal(name string, v float64) {
	e.triggers.setNumeric(name, v)
	e.actionMutatedTriggers = true
	e.notifyInputChange(name)
}

func (e *Engine) setStringInternal(name string, v string) {
	e.triggers.setString(name, v)
	e.actionMutatedTriggers = true
	e.notifyInputChange(name)
}

func (e *Engine) setBooleanInternal(name string, v bool) {
	e.triggers.setBoolean(name, v)
	e.actionMutatedTriggers = true
	e.notifyInputChange(name)
}

func (e *Engine) fireInternal(name string) {
	e.triggers.declareEvent(name)
	e.firedEvent = name
	e.actionMutatedTriggers = true
}

func (e *Engine) resetTriggerInternal(name string) {
	for _, t := range e.doc.Triggers {
		if t.Name != name {
			continue
		}
		switch t.Kind {
		case TriggerNumeric:
			e.triggers.setNumeric(name, t.NumericValue)
		case TriggerString:
			e.triggers.setString(name, t.StringValue)
		case TriggerBoolean:
			e.triggers.setBoolean(name, t.BooleanValue)
		}
	}
	e.actionMutatedTriggers = true
}

func (e *Engine) retick() {
	if e.status != StatusRunning {
		return
	}
	if err := e.runPipelineLocked(""); err != nil {
		e.notifyError(err.Error())
	}
}

// --- pipeline ---

// historyContains reports whether name already appears in history, i.e.
// the state is about to recur rather than being visited for the first
// time this pipeline run.
func historyContains(history []string, name string) bool {
	for _, h := range history {
		if h == name {
			return true
		}
	}
	return false
}

// runPipelineLocked is the engine's core evaluation loop: detect a
// recurrence of the current state name in the cycle-detection history
// before recording it, evaluate the Global state's transitions ahead of
// the current state's own (unless suppressed), take the first
// fully-satisfied transition (falling back to a guardless one), and loop
// again whenever a transition fires — since a newly-entered state's
// entry actions may themselves immediately satisfy another transition.
//
// A cycle is the same state name recurring in that history, not simply
// many loop iterations: a long acyclic chain of distinct states (say a
// 25-step linear onboarding flow) must run to completion without
// tripping the guard, while a state bouncing between itself and another
// trips it quickly. Each actual recurrence increments a dedicated
// counter and clears the history so a later, different cycle can still
// be detected; reaching maxCycles recurrences ends the engine with
// InfiniteLoopError.
func (e *Engine) runPipelineLocked(event string) error {
	if e.currentState == nil {
		return nil
	}
	cur := event
	cycles := 0
	for {
		if historyContains(e.history, e.currentState.Name) {
			cycles++
			if cycles >= e.maxCycles {
				err := &corerr.StateMachineEngineError{
					Kind:   corerr.InfiniteLoopError,
					Reason: "state " + e.currentState.Name + " recurred without settling",
				}
				e.notifyError(err.Error())
				e.End()
				return err
			}
			e.history = nil
		}
		e.history = append(e.history, e.currentState.Name)

		target, ok := "", false
		if e.globalState != nil && !e.ignoreGlobal {
			target, ok = evaluateTransitions(e.globalState.Transitions, e.triggers, cur)
		}
		if !ok {
			target, ok = evaluateTransitions(e.currentState.Transitions, e.triggers, cur)
		}
		if !ok {
			return nil
		}

		e.actionMutatedTriggers = false
		if err := e.setCurrentStateLocked(target); err != nil {
			return err
		}
		cur = ""
		e.ignoreGlobal = !e.actionMutatedTriggers
	}
}

func (e *Engine) setCurrentStateLocked(name string) error {
	next, ok := e.doc.StateByName(name)
	if !ok {
		return &corerr.StateMachineEngineError{Kind: corerr.SetStateError, Reason: "unknown state: " + name}
	}

	prevName := ""
	if e.currentState != nil {
		prevName = e.currentState.Name
		for _, a := range e.currentState.ExitActions {
			a.Execute(e)
		}
		e.notifyStateExit(prevName)
	}

	e.currentState = next
	if next.Kind == StatePlayback && e.player != nil {
		e.applyPlaybackOverride(next)
	}
	for _, a := range next.EntryActions {
		a.Execute(e)
	}

	e.notifyStateEntered(next.Name)
	if prevName != "" {
		e.notifyTransition(prevName, next.Name)
	}
	return nil
}

// applyPlaybackOverride starts playback when the entered state requests
// autoplay. The rest of a PlaybackState's Config override (mode, speed,
// segment, loop settings) is read from State.Override by the host
// embedding layer, which owns the concrete player.Config type the
// engine deliberately has no dependency on (see PlayerControl).
func (e *Engine) applyPlaybackOverride(s *State) {
	if s.Autoplay() {
		e.player.Play()
	}
}

// Autoplay reports whether this state's override requests playback to
// start on entry.
func (s *State) Autoplay() bool {
	return s.Override.Autoplay != nil && *s.Override.Autoplay
}

// allowOpenURL consults the engine's OpenURLPolicy for an OpenUrl
// action's url: Deny blocks it outright, Allow lets it proceed, and
// Prompt asks any observer implementing OpenURLObserver to decide (an
// engine with no such observer denies, since nothing answered).
func (e *Engine) allowOpenURL(url string) bool {
	switch e.openURLPolicy {
	case OpenURLPolicyAllow:
		return true
	case OpenURLPolicyPrompt:
		for _, o := range e.observers {
			if po, ok := o.(OpenURLObserver); ok {
				return po.OnOpenURLPrompt(url)
			}
		}
		return false
	default:
		return false
	}
}

// --- listener dispatch ---

// PostPointerEvent dispatches a pointer-kind listener whose layer hit
// test result is hit, for every listener scoped to the engine's current
// state (or unscoped).
func (e *Engine) PostPointerEvent(kind ListenerKind, layerName string, hit bool) {
	if e.currentState == nil {
		return
	}
	for _, l := range e.doc.Listeners {
		if l.Kind != kind || !l.isPointerKind() {
			continue
		}
		if l.LayerName != "" && l.LayerName != layerName {
			continue
		}
		if !l.matchesState(e.currentState.Name) {
			continue
		}
		if !l.firesOnHit(hit) {
			continue
		}
		for _, a := range l.Actions {
			a.Execute(e)
		}
	}
	e.retick()
}

// PostComplete dispatches OnComplete listeners scoped to the engine's
// current state.
func (e *Engine) PostComplete() {
	e.postLifecycle(ListenerOnComplete)
}

// PostLoopComplete dispatches OnLoopComplete listeners scoped to the
// engine's current state.
func (e *Engine) PostLoopComplete() {
	e.postLifecycle(ListenerOnLoopComplete)
}

func (e *Engine) postLifecycle(kind ListenerKind) {
	if e.currentState == nil {
		return
	}
	for _, l := range e.doc.Listeners {
		if l.Kind != kind || l.StateName != e.currentState.Name {
			continue
		}
		for _, a := range l.Actions {
			a.Execute(e)
		}
	}
	e.retick()
}

// --- observer notification ---

func (e *Engine) notifyCustomEvent(msg string) {
	for _, o := range e.observers {
		o.OnCustomEvent(msg)
	}
}

func (e *Engine) notifyError(msg string) {
	for _, o := range e.observers {
		o.OnError(msg)
	}
}

func (e *Engine) notifyTransition(prev, next string) {
	for _, o := range e.observers {
		o.OnTransition(prev, next)
	}
}

func (e *Engine) notifyStateEntered(name string) {
	for _, o := range e.observers {
		o.OnStateEntered(name)
	}
}

func (e *Engine) notifyStateExit(name string) {
	for _, o := range e.observers {
		o.OnStateExit(name)
	}
}

func (e *Engine) notifyInputChange(name string) {
	for _, o := range e.observers {
		if ic, ok := o.(InputChangeObserver); ok {
			ic.OnInputChange(name)
		}
	}
}
