package statemachine

import (
	"testing"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
)

const ratingDoc = `{
  "descriptor": {"id": "rating-sm", "initial": "star_0"},
  "triggers": [{"type": "Numeric", "name": "rating", "value": 0}],
  "states": [
    {"name": "star_0", "type": "PlaybackState", "transitions": [
      {"targetState": "star_1", "guards": [{"type": "Numeric", "triggerName": "rating", "operator": ">=", "value": "1"}]}
    ]},
    {"name": "star_1", "type": "PlaybackState", "transitions": [
      {"targetState": "star_2", "guards": [{"type": "Numeric", "triggerName": "rating", "operator": ">=", "value": "2"}]}
    ]},
    {"name": "star_2", "type": "PlaybackState"}
  ]
}`

func TestNumericTriggerDrivesTransitionChain(t *testing.T) {
	doc, err := Parse(ratingDoc)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	e := NewEngine(doc, nil, nil)
	if err := e.Start(OpenURLPolicyAllow); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if got := e.CurrentStateName(); got != "star_0" {
		t.Fatalf("expected initial state star_0, got %s", got)
	}

	e.SetNumericTrigger("rating", 2)

	if got := e.CurrentStateName(); got != "star_2" {
		t.Fatalf("expected a single SetNumericTrigger to chain through star_1 into star_2, got %s", got)
	}
}

const cyclicDoc = `{
  "descriptor": {"id": "cyclic-sm", "initial": "a"},
  "states": [
    {"name": "a", "type": "PlaybackState", "transitions": [{"targetState": "b"}]},
    {"name": "b", "type": "PlaybackState", "transitions": [{"targetState": "a"}]}
  ]
}`

func TestUnconditionalMutualTransitionsTripCycleDetection(t *testing.T) {
	doc, err := Parse(cyclicDoc)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	e := NewEngine(doc, nil, nil)

	err = e.Start(OpenURLPolicyAllow)
	if err == nil {
		t.Fatal("expected Start to fail with an infinite-loop error")
	}
	smErr, ok := err.(*corerr.StateMachineEngineError)
	if !ok {
		t.Fatalf("expected a *corerr.StateMachineEngineError, got %T: %v", err, err)
	}
	if smErr.Kind != corerr.InfiniteLoopError {
		t.Errorf("expected InfiniteLoopError kind, got %v", smErr.Kind)
	}
}

const duplicateStateDoc = `{
  "descriptor": {"id": "dup-sm", "initial": "a"},
  "states": [
    {"name": "a", "type": "PlaybackState"},
    {"name": "a", "type": "PlaybackState"}
  ]
}`

func TestParseRejectsDuplicateStateNames(t *testing.T) {
	_, err := Parse(duplicateStateDoc)
	if err == nil {
		t.Fatal("expected duplicate state names to be rejected")
	}
	smErr, ok := err.(*corerr.StateMachineEngineError)
	if !ok {
		t.Fatalf("expected a *corerr.StateMachineEngineError, got %T: %v", err, err)
	}
	if smErr.Kind != corerr.DuplicateStateName {
		t.Errorf("expected DuplicateStateName kind, got %v", smErr.Kind)
	}
}

const multiGuardlessDoc = `{
  "descriptor": {"id": "mg-sm", "initial": "a"},
  "states": [
    {"name": "a", "type": "PlaybackState", "transitions": [
      {"targetState": "b"},
      {"targetState": "c"}
    ]},
    {"name": "b", "type": "PlaybackState"},
    {"name": "c", "type": "PlaybackState"}
  ]
}`

func TestParseRejectsMultipleGuardlessTransitionsInOneState(t *testing.T) {
	_, err := Parse(multiGuardlessDoc)
	if err == nil {
		t.Fatal("expected more than one guardless transition on a state to be rejected")
	}
	smErr, ok := err.(*corerr.StateMachineEngineError)
	if !ok {
		t.Fatalf("expected a *corerr.StateMachineEngineError, got %T: %v", err, err)
	}
	if smErr.Kind != corerr.MultipleGuardlessTransitions {
		t.Errorf("expected MultipleGuardlessTransitions kind, got %v", smErr.Kind)
	}
}

func TestParseRejectsUnknownInitialState(t *testing.T) {
	_, err := Parse(`{"descriptor": {"id": "x", "initial": "missing"}, "states": [{"name": "a", "type": "PlaybackState"}]}`)
	if err == nil {
		t.Fatal("expected an unresolvable initial state to be rejected")
	}
}

func TestParseRejectsTransitionToUnknownState(t *testing.T) {
	doc := `{
      "descriptor": {"id": "x", "initial": "a"},
      "states": [
        {"name": "a", "type": "PlaybackState", "transitions": [{"targetState": "ghost"}]}
      ]
    }`
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected a transition targeting an unknown state to be rejected")
	}
}

type recordingObserver struct {
	transitions  [][2]string
	customEvents []string
	promptURL    string
	allowPrompt  bool
}

func (r *recordingObserver) OnTransition(prev, next string) {
	r.transitions = append(r.transitions, [2]string{prev, next})
}
func (r *recordingObserver) OnStateEntered(name string) {}
func (r *recordingObserver) OnStateExit(name string)    {}
func (r *recordingObserver) OnCustomEvent(msg string)   { r.customEvents = append(r.customEvents, msg) }
func (r *recordingObserver) OnError(msg string)         {}
func (r *recordingObserver) OnOpenURLPrompt(url string) bool {
	r.promptURL = url
	return r.allowPrompt
}

const openURLDoc = `{
  "descriptor": {"id": "x", "initial": "a"},
  "states": [
    {"name": "a", "type": "PlaybackState", "entryActions": [
      {"type": "OpenUrl", "url": "https://example.com"}
    ]}
  ]
}`

func TestOpenURLActionHonorsPolicy(t *testing.T) {
	cases := []struct {
		name   string
		policy OpenURLPolicy
		allow  bool
		want   bool
	}{
		{"deny blocks", OpenURLPolicyDeny, false, false},
		{"allow proceeds", OpenURLPolicyAllow, false, true},
		{"prompt denied by observer", OpenURLPolicyPrompt, false, false},
		{"prompt allowed by observer", OpenURLPolicyPrompt, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse(openURLDoc)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			obs := &recordingObserver{allowPrompt: tc.allow}
			e := NewEngine(doc, nil, nil)
			e.Observe(obs)
			if err := e.Start(tc.policy); err != nil {
				t.Fatalf("unexpected start error: %v", err)
			}
			got := len(obs.customEvents) == 1 && obs.customEvents[0] == "open_url:https://example.com"
			if got != tc.want {
				t.Fatalf("policy %v: expected fired=%v, got events %v", tc.policy, tc.want, obs.customEvents)
			}
		})
	}
}

func TestOpenURLDeniedByDefaultPolicyValue(t *testing.T) {
	doc, err := Parse(openURLDoc)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	obs := &recordingObserver{}
	e := NewEngine(doc, nil, nil)
	e.Observe(obs)
	if err := e.Start(OpenURLPolicy(0)); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if len(obs.customEvents) != 0 {
		t.Fatalf("expected the zero-value policy to deny OpenUrl, got %v", obs.customEvents)
	}
}

func TestObserverSeesTransitionAndCustomEvent(t *testing.T) {
	doc := `{
      "descriptor": {"id": "x", "initial": "a"},
      "states": [
        {"name": "a", "type": "PlaybackState", "transitions": [
          {"targetState": "b", "guards": [{"type": "Event", "triggerName": "go"}]}
        ]},
        {"name": "b", "type": "PlaybackState", "entryActions": [
          {"type": "FireCustomEvent", "value": "arrived"}
        ]}
      ]
    }`
	parsed, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	obs := &recordingObserver{}
	e := NewEngine(parsed, nil, nil)
	e.Observe(obs)
	if err := e.Start(OpenURLPolicyAllow); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	if err := e.Fire("go"); err != nil {
		t.Fatalf("unexpected fire error: %v", err)
	}

	if e.CurrentStateName() != "b" {
		t.Fatalf("expected event-guarded transition to fire, got state %s", e.CurrentStateName())
	}
	if len(obs.transitions) != 1 || obs.transitions[0] != [2]string{"a", "b"} {
		t.Fatalf("expected one a->b transition notification, got %v", obs.transitions)
	}
	if len(obs.customEvents) != 1 || obs.customEvents[0] != "arrived" {
		t.Fatalf("expected FireCustomEvent to notify observers with \"arrived\", got %v", obs.customEvents)
	}
}
