package inputs

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LottieFiles/dotlottie-go/pkg/theme"
)

// Change describes one mutation applied through the Global Inputs overlay.
type Change struct {
	Kind     theme.RuleType
	Name     string
	OldValue interface{}
	NewValue interface{}
}

// Observer receives Global Inputs mutation notifications.
type Observer interface {
	OnValueChange(Change)
}

// PublishFunc is called with the freshly-lowered slot-override JSON
// document every time the overlay changes, so the owner (the Player) can
// forward it to the renderer via SetSlots.
type PublishFunc func(slotsJSON string)

// GlobalInputs is the runtime-mutable overlay over a theme's slot rules.
type GlobalInputs struct {
	mu sync.Mutex

	base    *theme.Document
	overlay *theme.Document

	activeAnimationID string
	eval              theme.ExpressionEvaluator
	lastGood          map[string]float64

	publish   PublishFunc
	observers map[int]Observer
	nextID    int

	logger *logrus.Entry
}

// New creates a Global Inputs overlay over a base theme document (which may
// be empty/nil for an animation with no theme). publish is invoked after
// every mutation with the newly lowered slots document; it may be nil.
func New(base *theme.Document, activeAnimationID string, publish PublishFunc, logger *logrus.Entry) *GlobalInputs {
	if base == nil {
		base = &theme.Document{}
	}
	return &GlobalInputs{
		base:              base,
		overlay:           &theme.Document{},
		activeAnimationID: activeAnimationID,
		publish:           publish,
		observers:         make(map[int]Observer),
		lastGood:          make(map[string]float64),
		logger:            logger,
	}
}

// SetActiveAnimationID updates which animation id rule scoping is evaluated
// against, re-publishing the slot document.
func (g *GlobalInputs) SetActiveAnimationID(id string) {
	g.mu.Lock()
	g.activeAnimationID = id
	g.mu.Unlock()
	g.republish()
}

// SetExpressionEvaluator installs the JS expression evaluator capability;
// may be nil to disable expression-backed scalar rules.
func (g *GlobalInputs) SetExpressionEvaluator(eval theme.ExpressionEvaluator) {
	g.mu.Lock()
	g.eval = eval
	g.mu.Unlock()
}

// Observe registers an observer and returns a handle for Unobserve.
func (g *GlobalInputs) Observe(o Observer) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	g.observers[id] = o
	return id
}

// Unobserve deregisters an observer by handle.
func (g *GlobalInputs) Unobserve(handle int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.observers, handle)
}

func (g *GlobalInputs) notify(c Change) {
	g.mu.Lock()
	obs := make([]Observer, 0, len(g.observers))
	for _, o := range g.observers {
		obs = append(obs, o)
	}
	g.mu.Unlock()
	for _, o := range obs {
		o.OnValueChange(c)
	}
}

func rawValue(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func (g *GlobalInputs) setOverlay(kind theme.RuleType, name string, value interface{}) {
	g.mu.Lock()
	old, hadOld := g.overlayValue(name)
	g.overlay.SetRule(theme.Rule{Type: kind, ID: name, Value: rawValue(value)})
	g.mu.Unlock()

	var oldValue interface{}
	if hadOld {
		oldValue = old
	}
	g.notify(Change{Kind: kind, Name: name, OldValue: oldValue, NewValue: value})
	g.republish()
}

func (g *GlobalInputs) overlayValue(name string) (json.RawMessage, bool) {
	if r, ok := g.overlay.Rule(name); ok {
		return r.Value, true
	}
	return nil, false
}

// SetColor mutates (or creates) a Color input.
func (g *GlobalInputs) SetColor(name string, red, green, blue, alpha float64) {
	g.setOverlay(theme.RuleColor, name, []float64{red, green, blue, alpha})
}

// SetScalar mutates (or creates) a Scalar input.
func (g *GlobalInputs) SetScalar(name string, v float64) {
	g.mu.Lock()
	g.lastGood[name] = v
	g.mu.Unlock()
	g.setOverlay(theme.RuleScalar, name, v)
}

// SetVector mutates (or creates) a Vector input.
func (g *GlobalInputs) SetVector(name string, x, y float64) {
	g.setOverlay(theme.RuleVector, name, []float64{x, y})
}

// SetGradient mutates (or creates) a Gradient input.
func (g *GlobalInputs) SetGradient(name string, stops []theme.GradientStopValue) {
	wire := make([]map[string]float64, 0, len(stops))
	for _, s := range stops {
		wire = append(wire, map[string]float64{"offset": s.Offset, "r": s.R, "g": s.G, "b": s.B, "a": s.A})
	}
	g.setOverlay(theme.RuleGradient, name, map[string]interface{}{"stops": wire})
}

// SetText mutates (or creates) a Text input.
func (g *GlobalInputs) SetText(name string, v theme.TextValue) {
	g.setOverlay(theme.RuleText, name, map[string]interface{}{
		"font":          v.Font,
		"size":          v.Size,
		"fillColor":     []float64{v.FillColor.R, v.FillColor.G, v.FillColor.B, v.FillColor.A},
		"strokeColor":   []float64{v.StrokeColor.R, v.StrokeColor.G, v.StrokeColor.B, v.StrokeColor.A},
		"justification": v.Justification,
		"caps":          v.Caps,
		"tracking":      v.Tracking,
	})
}

// SetImage mutates (or creates) an Image input.
func (g *GlobalInputs) SetImage(name string, v theme.ImageValue) {
	g.setOverlay(theme.RuleImage, name, v)
}

// SetPosition mutates (or creates) a Position input.
func (g *GlobalInputs) SetPosition(name string, v theme.PositionValue) {
	g.setOverlay(theme.RulePosition, name, map[string]interface{}{
		"x": v.X, "y": v.Y,
		"inTangent":  []float64{v.InTangentX, v.InTangentY},
		"outTangent": []float64{v.OutTangentX, v.OutTangentY},
	})
}

// Remove reverts name to its theme-only projection, reporting whether an
// overlay entry was present.
func (g *GlobalInputs) Remove(name string) bool {
	g.mu.Lock()
	removed := g.overlay.RemoveRule(name)
	delete(g.lastGood, name)
	g.mu.Unlock()
	if removed {
		g.republish()
	}
	return removed
}

// Reset clears the entire overlay, reverting to the theme-only projection.
func (g *GlobalInputs) Reset() {
	g.mu.Lock()
	g.overlay = &theme.Document{}
	g.lastGood = make(map[string]float64)
	g.mu.Unlock()
	g.republish()
}

// Slots returns the current merged (base theme + overlay) slot-override
// JSON document.
func (g *GlobalInputs) Slots() (string, error) {
	g.mu.Lock()
	merged := g.merged()
	activeID := g.activeAnimationID
	eval := g.eval
	lastGood := g.lastGood
	g.mu.Unlock()

	out, errs, err := theme.Lower(merged, activeID, eval, lastGood)
	if err != nil {
		return "", err
	}
	if len(errs) > 0 && g.logger != nil {
		g.logger.WithField("errors", errs).Warn("some theme rules failed to lower")
	}
	return out, nil
}

func (g *GlobalInputs) merged() *theme.Document {
	merged := &theme.Document{Rules: append([]theme.Rule(nil), g.base.Rules...)}
	for _, r := range g.overlay.Rules {
		merged.SetRule(r)
	}
	return merged
}

func (g *GlobalInputs) republish() {
	if g.publish == nil {
		return
	}
	slots, err := g.Slots()
	if err != nil {
		if g.logger != nil {
			g.logger.WithError(err).Warn("failed to lower global inputs to slots")
		}
		return
	}
	g.publish(slots)
}
