// Package fakerenderer is an in-memory double of the renderer.Renderer
// contract, used by player/state-machine tests and by cmd/demoplayer. It
// does not understand real Lottie vector graphics; it reads just enough of
// the document (frame rate, in/out points, declared size) to honor the
// contract's numeric observables, and paints a deterministic RGBA pattern
// driven by frame number, background color, and slot overrides so callers
// can assert on buffer equality/inequality the way a real renderer's output
// would differ.
package fakerenderer

import (
	"encoding/json"
	"hash/fnv"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
	"github.com/LottieFiles/dotlottie-go/pkg/renderer"
)

type lottieDoc struct {
	FrameRate   float64 `json:"fr"`
	InPoint     float64 `json:"ip"`
	OutPoint    float64 `json:"op"`
	Width       int     `json:"w"`
	Height      int     `json:"h"`
}

// Renderer is a fakerenderer.Renderer value satisfying renderer.Renderer.
type Renderer struct {
	mu sync.Mutex

	loaded      bool
	doc         lottieDoc
	width       int
	height      int
	viewX       int
	viewY       int
	viewW       int
	viewH       int
	frame       float64
	bgColor     uint32
	slotsJSON   string
	buf         []byte

	tweening    bool
	tweenTo     float64
	tweenFrom   float64
	tweenProg   float64

	useBackgroundFixture bool
}

var (
	fixtureOnce  sync.Once
	fixtureImage *image.RGBA
)

// checkerFixture is a small placeholder swatch standing in for a themed
// background image a real renderer would composite under the vector
// content.
func checkerFixture() *image.RGBA {
	fixtureOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				c := color.RGBA{R: 80, G: 80, B: 80, A: 255}
				if (x+y)%2 == 0 {
					c = color.RGBA{R: 200, G: 200, B: 200, A: 255}
				}
				img.SetRGBA(x, y, c)
			}
		}
		fixtureImage = img
	})
	return fixtureImage
}

// SetBackgroundFixture toggles whether Render blits the checkerboard
// fixture, scaled to the framebuffer size with golang.org/x/image/draw's
// bilinear scaler, as a backdrop under the frame/slot pattern.
func (r *Renderer) SetBackgroundFixture(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.useBackgroundFixture = enabled
}

// New returns an unloaded fake renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) LoadData(jsonText string, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var doc lottieDoc
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return &corerr.RendererError{Op: "LoadData", Err: err}
	}
	if doc.OutPoint <= doc.InPoint {
		return &corerr.RendererError{Op: "LoadData", Err: &corerr.ParsingError{Reason: "animation out point must exceed in point"}}
	}
	if doc.FrameRate <= 0 {
		doc.FrameRate = 30
	}

	r.doc = doc
	r.width, r.height = width, height
	r.viewX, r.viewY, r.viewW, r.viewH = 0, 0, width, height
	r.frame = doc.InPoint
	r.bgColor = 0
	r.slotsJSON = ""
	r.loaded = true
	r.buf = make([]byte, width*height*4)
	return nil
}

func (r *Renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return &corerr.RendererError{Op: "Resize", Err: &corerr.InvalidParameter{Reason: "width and height must be positive"}}
	}
	if width == r.width && height == r.height {
		return nil
	}
	r.width, r.height = width, height
	r.buf = make([]byte, width*height*4)
	return nil
}

func (r *Renderer) SetViewport(x, y, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return &corerr.RendererError{Op: "SetViewport", Err: &corerr.NotLoaded{Op: "SetViewport"}}
	}
	r.viewX, r.viewY, r.viewW, r.viewH = x, y, width, height
	return nil
}

func (r *Renderer) SetFrame(f float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return &corerr.RendererError{Op: "SetFrame", Err: &corerr.NotLoaded{Op: "SetFrame"}}
	}
	if f < r.doc.InPoint || f > r.doc.OutPoint-1 {
		return &corerr.RendererError{Op: "SetFrame", Err: &corerr.InvalidParameter{Reason: "frame out of range"}}
	}
	r.frame = f
	return nil
}

func (r *Renderer) TotalFrames() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc.OutPoint - r.doc.InPoint
}

func (r *Renderer) DurationSeconds() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doc.FrameRate == 0 {
		return 0
	}
	return (r.doc.OutPoint - r.doc.InPoint) / r.doc.FrameRate
}

func (r *Renderer) PictureSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Renderer) SetBackgroundColor(rgba uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bgColor = rgba
	return nil
}

func (r *Renderer) SetSlots(jsonText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slotsJSON = jsonText
	return nil
}

func (r *Renderer) GetLayerBounds(name string) ([8]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return [8]float64{}, &corerr.RendererError{Op: "GetLayerBounds", Err: &corerr.NotLoaded{Op: "GetLayerBounds"}}
	}
	w, h := float64(r.width), float64(r.height)
	return [8]float64{0, 0, w, 0, w, h, 0, h}, nil
}

func (r *Renderer) HitCheck(name string, x, y float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return false, &corerr.RendererError{Op: "HitCheck", Err: &corerr.NotLoaded{Op: "HitCheck"}}
	}
	return x >= 0 && y >= 0 && x < float64(r.width) && y < float64(r.height), nil
}

func (r *Renderer) Tween(toFrame float64, duration *float64, ease *renderer.Easing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return &corerr.RendererError{Op: "Tween", Err: &corerr.NotLoaded{Op: "Tween"}}
	}
	r.tweening = true
	r.tweenFrom = r.frame
	r.tweenTo = toFrame
	r.tweenProg = 0
	return nil
}

func (r *Renderer) TweenUpdate(progress *float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.tweening {
		return false, nil
	}
	if progress != nil {
		r.tweenProg = *progress
	} else {
		r.tweenProg += 0.1
	}
	if r.tweenProg >= 1 {
		r.tweenProg = 1
		r.frame = r.tweenTo
		r.tweening = false
		return true, nil
	}
	r.frame = r.tweenFrom + (r.tweenTo-r.tweenFrom)*r.tweenProg
	return false, nil
}

func (r *Renderer) TweenStop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tweening = false
}

func (r *Renderer) IsTweening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tweening
}

// Render paints a deterministic pattern derived from the current frame,
// background color, and slot overrides, so tests can assert
// buffer equality/inequality across renders the way a real rasterizer's
// output would vary.
func (r *Renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return &corerr.RendererError{Op: "Render", Err: &corerr.NotLoaded{Op: "Render"}}
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(r.slotsJSON))
	slotHash := h.Sum32()

	bg0 := byte(r.bgColor >> 24)
	bg1 := byte(r.bgColor >> 16)
	bg2 := byte(r.bgColor >> 8)
	bg3 := byte(r.bgColor)
	frameByte := byte(int(r.frame*1000) % 256)
	slotByte := byte(slotHash % 256)

	if r.useBackgroundFixture {
		scaled := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
		fixture := checkerFixture()
		draw.BiLinear.Scale(scaled, scaled.Bounds(), fixture, fixture.Bounds(), draw.Src, nil)
		copy(r.buf, scaled.Pix)
		for i := 0; i+3 < len(r.buf); i += 4 {
			r.buf[i] ^= bg0 ^ frameByte
			r.buf[i+1] ^= bg1 ^ slotByte
			r.buf[i+2] ^= bg2 ^ frameByte ^ slotByte
			r.buf[i+3] = bg3
		}
		return nil
	}

	for i := 0; i+3 < len(r.buf); i += 4 {
		r.buf[i] = bg0 ^ frameByte
		r.buf[i+1] = bg1 ^ slotByte
		r.buf[i+2] = bg2 ^ frameByte ^ slotByte
		r.buf[i+3] = bg3
	}
	return nil
}

func (r *Renderer) Buffer() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, len(r.buf))
	copy(out, r.buf)
	return out
}

var _ renderer.Renderer = (*Renderer)(nil)
