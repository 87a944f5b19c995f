package fakerenderer

import "testing"

const sixtyFrameDoc = `{"fr":30,"ip":0,"op":60,"w":100,"h":100}`

func TestLoadAndBasicContract(t *testing.T) {
	r := New()
	if err := r.LoadData(sixtyFrameDoc, 64, 64); err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if got := r.TotalFrames(); got != 60 {
		t.Errorf("expected 60 total frames, got %v", got)
	}
	if got := r.DurationSeconds(); got != 2 {
		t.Errorf("expected 2s duration, got %v", got)
	}
	w, h := r.PictureSize()
	if w != 64 || h != 64 {
		t.Errorf("expected 64x64, got %dx%d", w, h)
	}
}

func TestSetFrameBounds(t *testing.T) {
	r := New()
	_ = r.LoadData(sixtyFrameDoc, 10, 10)

	if err := r.SetFrame(-1); err == nil {
		t.Error("expected error for frame below range")
	}
	if err := r.SetFrame(60); err == nil {
		t.Error("expected error for frame at/above total frames")
	}
	if err := r.SetFrame(59); err != nil {
		t.Errorf("expected frame 59 to be valid: %v", err)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := New()
	_ = r.LoadData(sixtyFrameDoc, 4, 4)
	_ = r.SetFrame(0)

	_ = r.Render()
	first := r.Buffer()
	_ = r.Render()
	second := r.Buffer()

	if string(first) != string(second) {
		t.Error("expected identical buffers for repeated render of same frame")
	}
}

func TestRenderDiffersWithSlotOverride(t *testing.T) {
	r := New()
	_ = r.LoadData(sixtyFrameDoc, 4, 4)
	_ = r.SetFrame(0)
	_ = r.Render()
	before := r.Buffer()

	_ = r.SetSlots(`{"accent":{"r":0,"g":255,"b":0}}`)
	_ = r.Render()
	after := r.Buffer()

	if string(before) == string(after) {
		t.Error("expected buffer to differ after slot override change")
	}
}

func TestResizeNoopWhenUnchanged(t *testing.T) {
	r := New()
	_ = r.LoadData(sixtyFrameDoc, 8, 8)
	if err := r.Resize(8, 8); err != nil {
		t.Errorf("expected no-op resize to succeed, got %v", err)
	}
	if err := r.Resize(0, 0); err == nil {
		t.Error("expected resize(0,0) to fail")
	}
}

func TestTweenLifecycle(t *testing.T) {
	r := New()
	_ = r.LoadData(sixtyFrameDoc, 4, 4)
	_ = r.SetFrame(0)

	if err := r.Tween(59, nil, nil); err != nil {
		t.Fatalf("Tween: %v", err)
	}
	if !r.IsTweening() {
		t.Fatal("expected IsTweening true after Tween")
	}

	progress := 1.0
	complete, err := r.TweenUpdate(&progress)
	if err != nil {
		t.Fatalf("TweenUpdate: %v", err)
	}
	if !complete {
		t.Error("expected tween to complete at progress 1.0")
	}
	if r.IsTweening() {
		t.Error("expected IsTweening false after completion")
	}
}

func TestBackgroundFixtureBlitsScaledPattern(t *testing.T) {
	r := New()
	_ = r.LoadData(sixtyFrameDoc, 4, 4)
	_ = r.SetFrame(0)

	_ = r.Render()
	withoutFixture := r.Buffer()

	r.SetBackgroundFixture(true)
	_ = r.Render()
	withFixture := r.Buffer()

	if string(withoutFixture) == string(withFixture) {
		t.Error("expected enabling the background fixture to change the rendered buffer")
	}

	_ = r.Render()
	again := r.Buffer()
	if string(withFixture) != string(again) {
		t.Error("expected repeated renders with the fixture enabled to stay deterministic")
	}
}

func TestHitCheckBounds(t *testing.T) {
	r := New()
	_ = r.LoadData(sixtyFrameDoc, 10, 10)

	hit, err := r.HitCheck("root", 5, 5)
	if err != nil || !hit {
		t.Errorf("expected hit inside canvas, got hit=%v err=%v", hit, err)
	}
	hit, err = r.HitCheck("root", -1, -1)
	if err != nil || hit {
		t.Errorf("expected no hit outside canvas, got hit=%v err=%v", hit, err)
	}
}
