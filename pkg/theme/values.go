package theme

import (
	"encoding/json"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
)

// decodeColor accepts a [r,g,b] or [r,g,b,a] array in the [0,1] range and
// clamps it via go-colorful so out-of-range author input never reaches the
// renderer as an invalid color.
func decodeColor(raw json.RawMessage) (ColorValue, error) {
	var arr []float64
	if err := json.Unmarshal(raw, &arr); err != nil {
		return ColorValue{}, &corerr.ParsingError{Reason: "color value must be a [r,g,b] or [r,g,b,a] array: " + err.Error()}
	}
	if len(arr) != 3 && len(arr) != 4 {
		return ColorValue{}, &corerr.ParsingError{Reason: "color value must have 3 or 4 components"}
	}
	c := colorful.Color{R: arr[0], G: arr[1], B: arr[2]}.Clamped()
	a := 1.0
	if len(arr) == 4 {
		a = clamp01(arr[3])
	}
	return ColorValue{R: c.R, G: c.G, B: c.B, A: a}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func decodeScalar(raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, &corerr.ParsingError{Reason: "scalar value must be a number: " + err.Error()}
	}
	return v, nil
}

// scalarKeyframe is one entry of an animated Scalar rule's Keyframes list.
type scalarKeyframe struct {
	Frame float64 `json:"frame"`
	Value float64 `json:"value"`
}

func decodeScalarKeyframes(raw json.RawMessage) ([]scalarKeyframe, error) {
	var kfs []scalarKeyframe
	if err := json.Unmarshal(raw, &kfs); err != nil {
		return nil, &corerr.ParsingError{Reason: "scalar keyframes must be a [{frame,value}] array: " + err.Error()}
	}
	return kfs, nil
}

type gradientWire struct {
	Stops []struct {
		Offset float64 `json:"offset"`
		R      float64 `json:"r"`
		G      float64 `json:"g"`
		B      float64 `json:"b"`
		A      float64 `json:"a"`
	} `json:"stops"`
}

func decodeGradient(raw json.RawMessage) ([]GradientStopValue, error) {
	var w gradientWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &corerr.ParsingError{Reason: "gradient value must be {stops:[...]}: " + err.Error()}
	}
	stops := make([]GradientStopValue, 0, len(w.Stops))
	for _, s := range w.Stops {
		stops = append(stops, GradientStopValue{Offset: s.Offset, R: s.R, G: s.G, B: s.B, A: s.A})
	}
	return stops, nil
}

func decodeImage(raw json.RawMessage) (ImageValue, error) {
	var v ImageValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return ImageValue{}, &corerr.ParsingError{Reason: "image value malformed: " + err.Error()}
	}
	return v, nil
}

type textWire struct {
	Font          string    `json:"font"`
	Size          float64   `json:"size"`
	FillColor     []float64 `json:"fillColor"`
	StrokeColor   []float64 `json:"strokeColor"`
	Justification string    `json:"justification,omitempty"`
	Caps          bool      `json:"caps,omitempty"`
	Tracking      float64   `json:"tracking,omitempty"`
}

func decodeText(raw json.RawMessage) (TextValue, error) {
	var w textWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return TextValue{}, &corerr.ParsingError{Reason: "text value malformed: " + err.Error()}
	}
	fill, err := colorFromComponents(w.FillColor)
	if err != nil {
		return TextValue{}, err
	}
	stroke, err := colorFromComponents(w.StrokeColor)
	if err != nil {
		return TextValue{}, err
	}
	return TextValue{
		Font:          w.Font,
		Size:          w.Size,
		FillColor:     fill,
		StrokeColor:   stroke,
		Justification: w.Justification,
		Caps:          w.Caps,
		Tracking:      w.Tracking,
	}, nil
}

func colorFromComponents(arr []float64) (ColorValue, error) {
	if arr == nil {
		return ColorValue{A: 1}, nil
	}
	raw, _ := json.Marshal(arr)
	return decodeColor(raw)
}

func decodeVector(raw json.RawMessage) ([2]float64, error) {
	var arr []float64
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) != 2 {
		return [2]float64{}, &corerr.ParsingError{Reason: "vector value must be a [x,y] array"}
	}
	return [2]float64{arr[0], arr[1]}, nil
}

type positionWire struct {
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	InTangent  *[2]float64 `json:"inTangent,omitempty"`
	OutTangent *[2]float64 `json:"outTangent,omitempty"`
}

func decodePosition(raw json.RawMessage) (PositionValue, error) {
	var w positionWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return PositionValue{}, &corerr.ParsingError{Reason: "position value malformed: " + err.Error()}
	}
	p := PositionValue{X: w.X, Y: w.Y}
	if w.InTangent != nil {
		p.InTangentX, p.InTangentY = w.InTangent[0], w.InTangent[1]
	}
	if w.OutTangent != nil {
		p.OutTangentX, p.OutTangentY = w.OutTangent[0], w.OutTangent[1]
	}
	return p, nil
}
