// Package renderer defines the operation contract the core consumes from an
// external vector renderer. The core never decodes Lottie JSON or
// rasterizes; it only calls this small interface. Any backend — a real
// thorvg-style renderer reached over cgo, or the in-memory fakerenderer used
// by tests and the demo player — can satisfy it.
package renderer

// Easing is an optional cubic-Bezier control-point pair for a tween.
type Easing struct {
	P1X, P1Y float64
	P2X, P2Y float64
}

// Renderer is the operation contract every backend implements. Implementations
// own a single framebuffer sized w*h*4 RGBA bytes and must be safe to call
// repeatedly from a single goroutine (the core never calls it concurrently).
type Renderer interface {
	// LoadData parses a Lottie JSON document and sizes the framebuffer.
	LoadData(json string, width, height int) error

	// Resize reallocates the framebuffer. No-op if dimensions are unchanged.
	Resize(width, height int) error

	// SetViewport applies a windowed clip. Valid only after a successful load.
	SetViewport(x, y, width, height int) error

	// SetFrame positions the renderer at frame f, 0 <= f <= TotalFrames()-1.
	SetFrame(f float64) error

	TotalFrames() float64
	DurationSeconds() float64
	PictureSize() (width, height int)

	SetBackgroundColor(rgba uint32) error

	// SetSlots replaces slot overrides with a JSON document; an empty
	// string resets all overrides.
	SetSlots(json string) error

	// GetLayerBounds returns the four corner points (x0,y0,x1,y1,x2,y2,x3,y3)
	// of a named layer's bounding box.
	GetLayerBounds(name string) ([8]float64, error)

	// HitCheck reports whether point (x,y) falls within the named layer.
	HitCheck(name string, x, y float64) (bool, error)

	// Tween begins a timed interpolation to toFrame. A nil duration uses the
	// renderer's own default pacing; a nil easing is linear.
	Tween(toFrame float64, duration *float64, ease *Easing) error
	// TweenUpdate steps the active tween. A nil progress lets the renderer
	// derive progress from elapsed wall-clock time; a non-nil progress
	// forces that value. Returns true when the tween has completed.
	TweenUpdate(progress *float64) (complete bool, err error)
	TweenStop()
	IsTweening() bool

	// Render rasterizes the current frame into the framebuffer. Safe to
	// call repeatedly; a failed render leaves the framebuffer at its last
	// good contents.
	Render() error

	// Buffer returns the framebuffer contents (length == 4*w*h).
	Buffer() []byte
}
