// Package player implements the dotLottie Player Engine: a renderer-
// agnostic playback clock driving a renderer.Renderer through the frame
// arithmetic described in the container's animation data.
package player

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
	"github.com/LottieFiles/dotlottie-go/pkg/container"
	"github.com/LottieFiles/dotlottie-go/pkg/inputs"
	"github.com/LottieFiles/dotlottie-go/pkg/logging"
	"github.com/LottieFiles/dotlottie-go/pkg/renderer"
	"github.com/LottieFiles/dotlottie-go/pkg/theme"
)

// Player drives a renderer.Renderer through the load/play/tick lifecycle.
// It is safe for concurrent use; a single host typically owns one Player
// per on-screen animation and calls Tick once per display refresh.
type Player struct {
	mu sync.Mutex

	renderer renderer.Renderer
	clock    Clock
	logger   *logrus.Entry

	config        Config
	playbackState PlaybackState
	isLoaded      bool
	originTime    time.Time
	loopCount     uint32
	direction     direction
	currentFrame  float64

	markers               map[string]Marker
	activeAnimationID     string
	activeThemeID         string
	activeStateMachineID  string

	haveCache    bool
	cachedStart  float64
	cachedEnd    float64

	container *container.Container
	inputs    *inputs.GlobalInputs

	queue eventQueue
}

// New creates a Player bound to a renderer using the system wall clock.
func New(r renderer.Renderer, cfg Config, logger *logrus.Logger) *Player {
	return newWithClock(r, cfg, logger, realClock{})
}

func newWithClock(r renderer.Renderer, cfg Config, logger *logrus.Logger, clock Clock) *Player {
	return &Player{
		renderer:  r,
		clock:     clock,
		logger:    logging.PlayerLogger(logger, cfg.AnimationID),
		config:    cfg,
		direction: initialDirection(cfg.Mode),
		markers:   make(map[string]Marker),
	}
}

// --- load lifecycle ---

// LoadAnimationData loads a bare Lottie JSON document.
func (p *Player) LoadAnimationData(animationData string, width, height int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.container = nil
	p.activeAnimationID = ""
	p.activeThemeID = ""

	markers, err := ExtractMarkers(animationData)
	if err == nil {
		p.markers = markers
	}

	loaded := p.loadCommonLocked(func() error {
		return p.renderer.LoadData(animationData, width, height)
	})

	if loaded {
		if p.config.AnimationID != "" {
			p.activeAnimationID = p.config.AnimationID
		}
		if p.config.ThemeID != "" {
			p.setThemeLocked(p.config.ThemeID)
		}
		p.queue.push(Event{Kind: EventLoad})
		if p.config.Autoplay {
			p.playLocked()
		}
	} else {
		p.queue.push(Event{Kind: EventLoadError})
	}
	return loaded
}

// LoadAnimationPath reads a Lottie JSON document from disk and loads it
// synchronously; dotLottie's embedding contract assumes a host thread that
// can afford a blocking file read at load time.
func (p *Player) LoadAnimationPath(path string, width, height int) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		p.mu.Lock()
		p.queue.push(Event{Kind: EventLoadError})
		p.mu.Unlock()
		return false
	}
	return p.LoadAnimationData(string(data), width, height)
}

// LoadDotLottieData opens a .lottie container and loads the named
// animation (or the manifest's first animation, if animationID is empty).
func (p *Player) LoadDotLottieData(data []byte, animationID string, width, height int) bool {
	c, err := container.Read(data, p.logger)
	if err != nil {
		p.mu.Lock()
		p.queue.push(Event{Kind: EventLoadError})
		p.mu.Unlock()
		return false
	}

	id := animationID
	if id == "" {
		if len(c.Manifest.Animations) == 0 {
			p.mu.Lock()
			p.queue.push(Event{Kind: EventLoadError})
			p.mu.Unlock()
			return false
		}
		id = c.Manifest.Animations[0].ID
	}

	animText, err := c.Animation(id)
	if err != nil {
		p.mu.Lock()
		p.queue.push(Event{Kind: EventLoadError})
		p.mu.Unlock()
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	markers, err := ExtractMarkers(animText)
	if err == nil {
		p.markers = markers
	}

	loaded := p.loadCommonLocked(func() error {
		return p.renderer.LoadData(animText, width, height)
	})

	if loaded {
		p.container = c
		p.activeAnimationID = id

		themeID := p.config.ThemeID
		if themeID == "" {
			if info, ok := c.Manifest.Animation(id); ok && info.InitialTheme != "" {
				themeID = info.InitialTheme
			}
		}
		if themeID != "" {
			p.setThemeLocked(themeID)
		}

		p.queue.push(Event{Kind: EventLoad})
		if p.config.Autoplay {
			p.playLocked()
		}
	} else {
		p.queue.push(Event{Kind: EventLoadError})
	}
	return loaded
}

// loadCommonLocked resets playback state, invokes loader, and re-derives
// the start/end frame cache and initial playhead. Caller holds p.mu.
func (p *Player) loadCommonLocked(loader func() error) bool {
	p.queue.clear()
	p.playbackState = StateStopped
	p.originTime = p.clock.Now()
	p.loopCount = 0

	err := loader()
	loaded := err == nil
	if loaded {
		_ = p.renderer.SetBackgroundColor(p.config.BackgroundColor)
	}
	p.isLoaded = loaded
	p.invalidateFrameCacheLocked()

	start, end := p.startFrameLocked(), p.endFrameLocked()
	switch p.config.Mode {
	case ModeForward, ModeBounce:
		p.direction = dirForward
		p.setFrameInternalLocked(start, false)
	default:
		p.direction = dirReverse
		p.setFrameInternalLocked(end, false)
	}
	return loaded
}

// --- frame window ---

func (p *Player) computeStartFrameLocked() float64 {
	if p.config.Marker != "" {
		if m, ok := p.markerByName(p.config.Marker); ok {
			return maxF(m.Time, 0)
		}
	}
	if isValidSegment(p.config.HasSegment, p.config.Segment) {
		return maxF(p.config.Segment[0], 0)
	}
	return 0
}

func (p *Player) computeEndFrameLocked() float64 {
	total := p.renderer.TotalFrames()
	if p.config.Marker != "" {
		if m, ok := p.markerByName(p.config.Marker); ok {
			return minF(m.Time+m.Duration, total-1)
		}
	}
	if isValidSegment(p.config.HasSegment, p.config.Segment) {
		return minF(p.config.Segment[1], total-1)
	}
	return total - 1
}

func (p *Player) invalidateFrameCacheLocked() {
	p.cachedStart = p.computeStartFrameLocked()
	p.cachedEnd = p.computeEndFrameLocked()
	p.haveCache = true
}

func (p *Player) startFrameLocked() float64 {
	if !p.haveCache {
		p.invalidateFrameCacheLocked()
	}
	return p.cachedStart
}

func (p *Player) endFrameLocked() float64 {
	if !p.haveCache {
		p.invalidateFrameCacheLocked()
	}
	return p.cachedEnd
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// --- playback lifecycle ---

// Play starts or resumes playback, returning false if unloaded or already
// playing.
func (p *Player) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playLocked()
}

func (p *Player) playLocked() bool {
	if !p.isLoaded || p.playbackState == StatePlaying {
		return false
	}

	if p.isCompleteLocked() && p.playbackState == StateStopped {
		p.originTime = p.clock.Now()
		switch p.config.Mode {
		case ModeForward, ModeBounce:
			p.setFrameInternalLocked(p.startFrameLocked(), true)
			p.direction = dirForward
		default:
			p.setFrameInternalLocked(p.endFrameLocked(), true)
			p.direction = dirReverse
		}
	} else {
		p.updateOriginForFrameLocked(p.currentFrame)
	}

	p.playbackState = StatePlaying
	p.queue.push(Event{Kind: EventPlay})
	return true
}

// Pause freezes playback at the current frame.
func (p *Player) Pause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isLoaded && p.playbackState == StatePlaying {
		p.playbackState = StatePaused
		p.queue.push(Event{Kind: EventPause})
		return true
	}
	return false
}

// Stop halts playback and resets the playhead to the segment boundary
// (start for Forward/Bounce, end for Reverse/ReverseBounce).
func (p *Player) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

func (p *Player) stopLocked() bool {
	if !p.isLoaded || p.playbackState == StateStopped {
		return false
	}
	p.playbackState = StateStopped
	switch p.config.Mode {
	case ModeForward, ModeBounce:
		p.setFrameInternalLocked(p.startFrameLocked(), true)
	default:
		p.setFrameInternalLocked(p.endFrameLocked(), true)
	}
	p.queue.push(Event{Kind: EventStop})
	return true
}

func (p *Player) IsLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isLoaded
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playbackState == StatePlaying
}

func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playbackState == StatePaused
}

func (p *Player) IsStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playbackState == StateStopped
}

// --- frame positioning ---

func (p *Player) setFrameInternalLocked(no float64, pushEvent bool) bool {
	if err := p.renderer.SetFrame(no); err != nil {
		if p.logger != nil {
			p.logger.WithError(err).Warn("renderer rejected SetFrame")
		}
		return false
	}
	p.currentFrame = no
	if pushEvent {
		p.queue.push(Event{Kind: EventFrame, FrameNo: no})
	}
	return true
}

// SetFrame jumps directly to frame no without adjusting the playback
// clock; a caller driving its own loop via Tick is expected to follow up
// with Seek if it wants the clock to account for the jump.
func (p *Player) SetFrame(no float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	start, end := p.startFrameLocked(), p.endFrameLocked()
	if no < start || no > end {
		return false
	}
	return p.setFrameInternalLocked(no, true)
}

// Seek jumps to frame no and rebases the playback clock so playback
// continues smoothly from that position.
func (p *Player) Seek(no float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	start, end := p.startFrameLocked(), p.endFrameLocked()
	if no < start || no > end {
		return false
	}
	if !p.setFrameInternalLocked(no, true) {
		return false
	}
	p.updateOriginForFrameLocked(no)
	return true
}

// updateOriginForFrameLocked rebases originTime so that, were playback to
// resume immediately, request_frame would compute frameNo as the current
// position.
func (p *Player) updateOriginForFrameLocked(frameNo float64) {
	start, end := p.startFrameLocked(), p.endFrameLocked()
	total := p.renderer.TotalFrames()
	dur := p.renderer.DurationSeconds()
	effTotal := end - start

	if dur > 0 && total > 0 && effTotal > 0 && p.config.Speed > 0 {
		effDur := (dur * effTotal / total) / p.config.Speed
		frameDur := effDur / effTotal

		var elapsed float64
		if p.direction == dirForward {
			elapsed = (frameNo - start) * frameDur
		} else {
			elapsed = (end - frameNo) * frameDur
		}
		if elapsed < 0 {
			elapsed = 0
		}
		p.originTime = p.clock.Now().Add(-time.Duration(elapsed * float64(time.Second)))
		return
	}
	p.originTime = p.clock.Now()
}

// --- viewport / render surface ---

func (p *Player) Resize(width, height int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.Resize(width, height) == nil
}

func (p *Player) SetViewport(x, y, width, height int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.SetViewport(x, y, width, height) == nil
}

func (p *Player) Render() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderLocked()
}

func (p *Player) renderLocked() bool {
	err := p.renderer.Render()
	ok := err == nil

	if ok && p.isCompleteLocked() && !p.config.LoopAnimation {
		p.playbackState = StateStopped
	}

	if ok {
		p.queue.push(Event{Kind: EventRender, FrameNo: p.currentFrame})

		if p.isCompleteLocked() {
			if p.config.LoopAnimation {
				countComplete := p.config.LoopCount > 0 && p.loopCount >= p.config.LoopCount
				if countComplete {
					// Stop before emitting Complete, so a driving state
					// machine observes the terminal playback state rather
					// than a still-"looping" one at the moment Complete
					// fires.
					p.stopLocked()
				}
				p.queue.push(Event{Kind: EventLoop, LoopCount: p.loopCount})
				if countComplete {
					p.queue.push(Event{Kind: EventComplete})
					p.loopCount = 0
				}
			} else {
				p.queue.push(Event{Kind: EventComplete})
			}
		}
	}
	return ok
}

// isCompleteLocked is the per-mode completion predicate, including
// Bounce/ReverseBounce's loop-aware special casing that avoids firing
// Complete at the initial edge before any lap runs.
func (p *Player) isCompleteLocked() bool {
	if !p.isLoaded {
		return false
	}
	start, end := p.startFrameLocked(), p.endFrameLocked()
	switch p.config.Mode {
	case ModeForward:
		return p.currentFrame >= end
	case ModeReverse:
		return p.currentFrame <= start
	case ModeBounce:
		if p.config.LoopAnimation && p.config.LoopCount > 0 {
			return p.loopCount > 0 && p.currentFrame <= start
		}
		return p.currentFrame <= start && p.direction == dirReverse
	case ModeReverseBounce:
		if p.config.LoopAnimation && p.config.LoopCount > 0 {
			return p.loopCount > 0 && p.currentFrame >= end
		}
		return p.currentFrame >= end && p.direction == dirForward
	default:
		return false
	}
}

// --- the playback clock: request_frame + mode handling ---

func (p *Player) requestFrameLocked() float64 {
	if !p.isLoaded || p.playbackState != StatePlaying {
		return p.currentFrame
	}

	total := p.renderer.TotalFrames()
	dur := p.renderer.DurationSeconds()
	start, end := p.startFrameLocked(), p.endFrameLocked()
	effTotal := end - start

	if total <= 0 || dur <= 0 || effTotal <= 0 || p.config.Speed <= 0 {
		return p.currentFrame
	}

	elapsed := p.clock.Now().Sub(p.originTime).Seconds()
	effDur := (dur * effTotal / total) / p.config.Speed
	raw := (elapsed / effDur) * effTotal

	var next float64
	if p.direction == dirForward {
		next = start + raw
	} else {
		next = end - raw
	}

	next = roundFrame(next, p.config.UseFrameInterpolation)
	next = clampFrame(next, start, end)

	switch p.config.Mode {
	case ModeForward:
		next = p.handleForwardLocked(next, end)
	case ModeReverse:
		next = p.handleReverseLocked(next, start)
	case ModeBounce:
		next = p.handleBounceLocked(next, start, end)
	case ModeReverseBounce:
		next = p.handleReverseBounceLocked(next, start, end)
	}
	return next
}

func (p *Player) shouldIncrementLoopLocked() bool {
	if !p.config.LoopAnimation {
		return false
	}
	if p.config.LoopCount == 0 {
		return true
	}
	return p.loopCount < p.config.LoopCount
}

func (p *Player) handleForwardLocked(next, end float64) float64 {
	if next >= end {
		if p.shouldIncrementLoopLocked() {
			p.loopCount++
			p.originTime = p.clock.Now()
		}
		return end
	}
	return next
}

func (p *Player) handleReverseLocked(next, start float64) float64 {
	if next <= start {
		if p.shouldIncrementLoopLocked() {
			p.loopCount++
			p.originTime = p.clock.Now()
		}
		return start
	}
	return next
}

func (p *Player) handleBounceLocked(next, start, end float64) float64 {
	if p.direction == dirForward {
		if next >= end {
			p.direction = dirReverse
			p.originTime = p.clock.Now()
			return end
		}
		return next
	}
	if next <= start {
		if p.shouldIncrementLoopLocked() {
			p.loopCount++
			p.direction = dirForward
			p.originTime = p.clock.Now()
		}
		return start
	}
	return next
}

func (p *Player) handleReverseBounceLocked(next, start, end float64) float64 {
	if p.direction == dirReverse {
		if next <= start {
			p.direction = dirForward
			p.originTime = p.clock.Now()
			return start
		}
		return next
	}
	if next >= end {
		if p.shouldIncrementLoopLocked() {
			p.loopCount++
			p.direction = dirReverse
			p.originTime = p.clock.Now()
		}
		return end
	}
	return next
}

// Tick advances playback by one frame-request/render cycle; a host calls
// this once per display refresh.
func (p *Player) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.renderer.IsTweening() {
		done, err := p.renderer.TweenUpdate(nil)
		if err != nil {
			return false
		}
		if done {
			p.originTime = p.clock.Now()
		}
		return p.renderLocked()
	}

	next := p.requestFrameLocked()
	p.setFrameInternalLocked(next, true)
	return p.renderLocked()
}

// --- configuration ---

func (p *Player) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// SetConfig applies a new configuration wholesale, mirroring only the
// fields that actually changed so as not to disturb an in-flight
// animation unnecessarily.
func (p *Player) SetConfig(next Config) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config.Mode != next.Mode {
		p.flipDirectionIfNeededLocked(next.Mode)
		p.config.Mode = next.Mode
	}
	if p.config.BackgroundColor != next.BackgroundColor {
		if p.renderer.SetBackgroundColor(next.BackgroundColor) == nil {
			p.config.BackgroundColor = next.BackgroundColor
		}
	}
	if p.config.Speed != next.Speed && next.Speed > 0 {
		p.config.Speed = next.Speed
		p.updateOriginForFrameLocked(p.currentFrame)
	}
	if p.config.LoopAnimation != next.LoopAnimation {
		p.loopCount = 0
		p.config.LoopAnimation = next.LoopAnimation
	}
	if p.config.LoopCount != next.LoopCount {
		p.loopCount = 0
		p.config.LoopCount = next.LoopCount
	}
	if p.config.Marker != next.Marker {
		p.updateMarkerLocked(next.Marker)
	}
	p.config.Layout = next.Layout
	p.config.UseFrameInterpolation = next.UseFrameInterpolation

	if isValidSegment(next.HasSegment, next.Segment) {
		p.config.Segment = next.Segment
		p.config.HasSegment = true
		p.invalidateFrameCacheLocked()
	}
	p.config.Autoplay = next.Autoplay
	p.config.AnimationID = next.AnimationID

	if next.ThemeID != "" {
		p.setThemeLocked(next.ThemeID)
	}

	if next.Autoplay {
		p.playLocked()
	} else {
		p.pauseLocked()
	}
}

func (p *Player) pauseLocked() bool {
	if p.isLoaded && p.playbackState == StatePlaying {
		p.playbackState = StatePaused
		p.queue.push(Event{Kind: EventPause})
		return true
	}
	return false
}

func (p *Player) updateMarkerLocked(marker string) {
	if p.config.Marker == marker {
		return
	}
	if m, ok := p.markerByName(marker); ok {
		p.originTime = p.clock.Now()
		p.config.Marker = m.Name
		p.invalidateFrameCacheLocked()
		p.setFrameInternalLocked(m.Time, true)
		p.renderLocked()
	} else {
		p.config.Marker = ""
		p.invalidateFrameCacheLocked()
	}
}

func (p *Player) flipDirectionIfNeededLocked(newMode Mode) {
	shouldFlip := false
	switch {
	case (newMode == ModeForward || newMode == ModeBounce) && p.direction == dirReverse:
		shouldFlip = true
	case (newMode == ModeReverse || newMode == ModeReverseBounce) && p.direction == dirForward:
		shouldFlip = true
	}
	if shouldFlip {
		p.direction = p.direction.flip()
		p.updateOriginForFrameLocked(p.currentFrame)
	}
}

// --- theming ---

func (p *Player) SetTheme(themeID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setThemeLocked(themeID)
}

func (p *Player) setThemeLocked(themeID string) bool {
	if p.activeThemeID == themeID {
		return true
	}
	if p.container == nil {
		return false
	}
	p.activeThemeID = ""
	p.config.ThemeID = ""

	if themeID == "" {
		return p.renderer.SetSlots("") == nil
	}

	themeText, err := p.container.Theme(themeID)
	if err != nil {
		return false
	}
	doc, err := theme.Parse(themeText)
	if err != nil {
		if p.logger != nil {
			p.logger.WithError(err).Warn("failed to parse theme document")
		}
		return false
	}
	slots, _, err := theme.Lower(doc, p.activeAnimationID, nil, nil)
	if err != nil {
		return false
	}
	if p.renderer.SetSlots(slots) != nil {
		return false
	}
	p.activeThemeID = themeID
	p.config.ThemeID = themeID
	return true
}

func (p *Player) ResetTheme() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeThemeID = ""
	p.config.ThemeID = ""
	return p.renderer.SetSlots("") == nil
}

func (p *Player) SetThemeData(themeData string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	doc, err := theme.Parse(themeData)
	if err != nil {
		return false
	}
	slots, _, err := theme.Lower(doc, p.activeAnimationID, nil, nil)
	if err != nil {
		return false
	}
	return p.renderer.SetSlots(slots) == nil
}

func (p *Player) SetSlots(slotsJSON string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.SetSlots(slotsJSON) == nil
}

// GlobalInputs lazily creates and returns the Global Inputs overlay bound
// to this player's active theme, publishing directly to the renderer.
func (p *Player) GlobalInputs() *inputs.GlobalInputs {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inputs == nil {
		base := &theme.Document{}
		if p.container != nil && p.activeThemeID != "" {
			if text, err := p.container.Theme(p.activeThemeID); err == nil {
				if doc, err := theme.Parse(text); err == nil {
					base = doc
				}
			}
		}
		animID := p.activeAnimationID
		p.inputs = inputs.New(base, animID, func(slots string) {
			_ = p.renderer.SetSlots(slots)
		}, p.logger)
	}
	return p.inputs
}

// --- tweening ---

func (p *Player) Tween(toFrame float64, duration *float64, ease *renderer.Easing) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.Tween(toFrame, duration, ease) == nil
}

func (p *Player) TweenToMarker(name string, duration *float64, ease *renderer.Easing) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.markerByName(name)
	if !ok {
		return false
	}
	if p.renderer.Tween(m.Time, duration, ease) != nil {
		return false
	}
	p.config.Marker = m.Name
	return true
}

func (p *Player) TweenStop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderer.TweenStop()
}

func (p *Player) IsTweening() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.IsTweening()
}

func (p *Player) TweenUpdate(progress *float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	done, err := p.renderer.TweenUpdate(progress)
	if err != nil || done {
		p.originTime = p.clock.Now()
	}
	return err == nil
}

// --- introspection ---

func (p *Player) Markers() map[string]Marker {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]Marker, len(p.markers))
	for k, v := range p.markers {
		out[k] = v
	}
	return out
}

func (p *Player) ActiveAnimationID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeAnimationID
}

func (p *Player) ActiveThemeID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeThemeID
}

func (p *Player) AnimationSize() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.PictureSize()
}

func (p *Player) CurrentFrame() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentFrame
}

func (p *Player) LoopCount() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loopCount
}

// TotalFrames reports the animation's total frame count, independent of
// any active segment/marker window — callers wanting the current
// playback window should use Config().Segment or the active marker.
func (p *Player) TotalFrames() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.TotalFrames()
}

func (p *Player) GetLayerBounds(layerName string) (LayerBounds, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	bounds, err := p.renderer.GetLayerBounds(layerName)
	if err != nil {
		return LayerBounds{}, &corerr.RendererError{Op: "GetLayerBounds", Err: err}
	}
	return bounds, nil
}

func (p *Player) Intersect(layerName string, x, y float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	hit, err := p.renderer.HitCheck(layerName, x, y)
	if err != nil {
		return false
	}
	return hit
}

func (p *Player) PollEvent() (Event, bool) {
	return p.queue.poll()
}
