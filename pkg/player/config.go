package player

// Mode selects the traversal pattern the frame-request step walks the
// active segment with.
type Mode int

const (
	ModeForward Mode = iota
	ModeReverse
	ModeBounce
	ModeReverseBounce
)

func (m Mode) String() string {
	switch m {
	case ModeForward:
		return "Forward"
	case ModeReverse:
		return "Reverse"
	case ModeBounce:
		return "Bounce"
	case ModeReverseBounce:
		return "ReverseBounce"
	default:
		return "Unknown"
	}
}

// direction is the internal walking direction, distinct from Mode: Bounce
// and ReverseBounce flip it mid-flight while config.Mode stays fixed.
type direction int

const (
	dirForward direction = iota
	dirReverse
)

func (d direction) flip() direction {
	if d == dirForward {
		return dirReverse
	}
	return dirForward
}

// initialDirection is a Config's starting walk direction: Bounce starts
// walking Forward, ReverseBounce starts walking Reverse.
func initialDirection(m Mode) direction {
	switch m {
	case ModeReverse, ModeReverseBounce:
		return dirReverse
	default:
		return dirForward
	}
}

// Layout describes how the animation's picture is fit into the renderer's
// viewport. Values mirror the dotLottie wire format's fit/align scheme.
type Layout struct {
	Fit   string    `json:"fit"`
	Align [2]float64 `json:"align"`
}

// DefaultLayout is "contain" fit, centered.
func DefaultLayout() Layout {
	return Layout{Fit: "contain", Align: [2]float64{0.5, 0.5}}
}

// Config is the full set of playback parameters a Player can be driven
// with, settable wholesale via SetConfig or individually through the
// playback setters.
type Config struct {
	Mode                 Mode
	LoopAnimation        bool
	LoopCount            uint32
	Speed                float64
	UseFrameInterpolation bool
	Autoplay             bool
	Segment              [2]float64
	HasSegment           bool
	BackgroundColor      uint32
	Layout               Layout
	Marker               string
	ThemeID              string
	AnimationID          string
	StateMachineID       string
}

// DefaultConfig's zero-ish value plays forward at 1x speed with no
// looping, frame interpolation on, autoplay off, and a fully transparent
// background.
func DefaultConfig() Config {
	return Config{
		Mode:                  ModeForward,
		Speed:                 1.0,
		UseFrameInterpolation: true,
		BackgroundColor:       0x00000000,
		Layout:                DefaultLayout(),
	}
}

func isValidSegment(has bool, seg [2]float64) bool {
	return has && seg[0] < seg[1]
}

// PlaybackState is the coarse play/pause/stop state machine.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// LayerBounds is the eight-float oriented bounding box a renderer reports
// for a layer, corner order matching renderer.Renderer.GetLayerBounds.
type LayerBounds = [8]float64
