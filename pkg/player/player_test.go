package player

import (
	"testing"
	"time"

	"github.com/LottieFiles/dotlottie-go/pkg/renderer/fakerenderer"
)

const sixtyFrameDoc = `{"fr":30,"ip":0,"op":60,"w":100,"h":100,"layers":[]}`

func newTestPlayer(t *testing.T, cfg Config) (*Player, *fakerenderer.Renderer, *fixedClock) {
	t.Helper()
	r := fakerenderer.New()
	clock := newFixedClock(time.Unix(0, 0))
	p := newWithClock(r, cfg, nil, clock)
	if !p.LoadAnimationData(sixtyFrameDoc, 100, 100) {
		t.Fatal("expected LoadAnimationData to succeed")
	}
	return p, r, clock
}

func drainEvents(p *Player) []Event {
	var out []Event
	for {
		e, ok := p.PollEvent()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func TestForwardNoLoopCompletesAtLastFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Autoplay = true
	cfg.Mode = ModeForward
	cfg.LoopAnimation = false

	p, _, clock := newTestPlayer(t, cfg)

	events := drainEvents(p)
	kinds := kindsOf(events)
	if len(kinds) < 2 || kinds[0] != EventLoad || kinds[1] != EventPlay {
		t.Fatalf("expected Load,Play at head of event queue, got %v", kinds)
	}

	sawComplete := false
	for i := 0; i < 300; i++ {
		clock.Advance(7 * time.Millisecond)
		p.Tick()
		for _, e := range drainEvents(p) {
			if e.Kind == EventComplete {
				sawComplete = true
			}
		}
		if sawComplete {
			break
		}
	}

	if !sawComplete {
		t.Fatal("expected a Complete event within 2.1s of ticking")
	}
	if p.LoopCount() != 0 {
		t.Errorf("expected loop_count == 0 for a non-looping run, got %d", p.LoopCount())
	}
	if got := p.CurrentFrame(); got != 59 {
		t.Errorf("expected final frame 59, got %v", got)
	}
	if !p.IsStopped() {
		t.Error("expected player to be Stopped after Complete")
	}
}

func TestBounceCountedLoopsStopsAfterConfiguredCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Autoplay = true
	cfg.Mode = ModeBounce
	cfg.LoopAnimation = true
	cfg.LoopCount = 2

	p, _, clock := newTestPlayer(t, cfg)
	drainEvents(p)

	var loops []uint32
	sawComplete := false
	for i := 0; i < 2000 && !sawComplete; i++ {
		clock.Advance(7 * time.Millisecond)
		p.Tick()
		for _, e := range drainEvents(p) {
			if e.Kind == EventLoop {
				loops = append(loops, e.LoopCount)
			}
			if e.Kind == EventComplete {
				sawComplete = true
			}
		}
	}

	if !sawComplete {
		t.Fatal("expected Complete after two bounce cycles")
	}
	if len(loops) != 2 || loops[0] != 1 || loops[1] != 2 {
		t.Fatalf("expected Loop(1) then Loop(2), got %v", loops)
	}
	if !p.IsStopped() {
		t.Error("expected player Stopped once counted bounce loops are exhausted")
	}
}

func TestSetFrameRejectsOutOfSegmentBounds(t *testing.T) {
	cfg := DefaultConfig()
	p, _, _ := newTestPlayer(t, cfg)

	if p.SetFrame(-1) {
		t.Error("expected SetFrame(start - epsilon) to fail")
	}
	if p.SetFrame(1000) {
		t.Error("expected SetFrame(end + epsilon) to fail")
	}
	if !p.SetFrame(30) {
		t.Error("expected SetFrame within bounds to succeed")
	}
}

func TestResizeUnchangedDimensionsIsNoopSuccess(t *testing.T) {
	cfg := DefaultConfig()
	p, _, _ := newTestPlayer(t, cfg)

	if !p.Resize(100, 100) {
		t.Error("expected Resize to identical dimensions to succeed")
	}
}

func TestThemeOverrideChangesRenderedBuffer(t *testing.T) {
	cfg := DefaultConfig()
	p, r, _ := newTestPlayer(t, cfg)

	themeJSON := `{"rules":[{"type":"Color","id":"accent","value":[1,0,0,1]}]}`
	if !p.SetThemeData(themeJSON) {
		t.Fatal("expected SetThemeData to succeed")
	}
	p.Render()
	first := append([]byte(nil), r.Buffer()...)
	p.Render()
	second := append([]byte(nil), r.Buffer()...)
	if string(first) != string(second) {
		t.Error("expected rendering the same slots twice to produce identical buffers")
	}

	gi := p.GlobalInputs()
	gi.SetColor("accent", 0, 1, 0, 1)
	p.Render()
	third := r.Buffer()
	if string(first) == string(third) {
		t.Error("expected overriding accent via Global Inputs to change the rendered buffer")
	}

	gi.Reset()
	p.Render()
	fourth := r.Buffer()
	if string(first) != string(fourth) {
		t.Error("expected Reset to revert the buffer to the theme-only projection")
	}
}

func TestContainerTruncationFailsWithoutPartialState(t *testing.T) {
	cfg := DefaultConfig()
	r := fakerenderer.New()
	p := newWithClock(r, cfg, nil, newFixedClock(time.Unix(0, 0)))

	ok := p.LoadDotLottieData([]byte("not a zip"), "", 100, 100)
	if ok {
		t.Fatal("expected truncated/invalid container bytes to fail")
	}
	if p.IsLoaded() {
		t.Error("expected no partially-loaded state after a failed container read")
	}
	events := drainEvents(p)
	if len(events) != 1 || events[0].Kind != EventLoadError {
		t.Fatalf("expected a single LoadError event, got %v", events)
	}
}

func kindsOf(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
