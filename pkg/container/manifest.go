package container

import (
	"encoding/json"

	"github.com/LottieFiles/dotlottie-go/internal/schema"
)

// AnimationInfo describes one animation entry in the manifest.
type AnimationInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	InitialTheme string   `json:"initial_theme,omitempty"`
	Background   string   `json:"background,omitempty"`
	Themes       []string `json:"themes,omitempty"`
}

// ThemeInfo describes one theme entry in the manifest.
type ThemeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// StateMachineInfo describes one state-machine entry in the manifest.
type StateMachineInfo struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Manifest is the parsed manifest.json header: it enumerates contained
// animations, themes, and state machines. Lookup is by id; Animations,
// Themes, and StateMachines preserve insertion (document) order.
type Manifest struct {
	ActiveAnimationID string             `json:"active_animation_id,omitempty"`
	Generator         string             `json:"generator,omitempty"`
	Version           string             `json:"version,omitempty"`
	Animations        []AnimationInfo    `json:"animations"`
	Themes            []ThemeInfo        `json:"themes,omitempty"`
	StateMachines     []StateMachineInfo `json:"state_machines,omitempty"`
}

func parseManifest(text string) (*Manifest, error) {
	if err := schema.Validate(schema.Manifest, text); err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Animation looks up an animation's manifest entry by id.
func (m *Manifest) Animation(id string) (AnimationInfo, bool) {
	for _, a := range m.Animations {
		if a.ID == id {
			return a, true
		}
	}
	return AnimationInfo{}, false
}

// Theme looks up a theme's manifest entry by id.
func (m *Manifest) Theme(id string) (ThemeInfo, bool) {
	for _, th := range m.Themes {
		if th.ID == id {
			return th, true
		}
	}
	return ThemeInfo{}, false
}

// StateMachine looks up a state machine's manifest entry by id.
func (m *Manifest) StateMachine(id string) (StateMachineInfo, bool) {
	for _, sm := range m.StateMachines {
		if sm.ID == id {
			return sm, true
		}
	}
	return StateMachineInfo{}, false
}
