package player

import "encoding/json"

// Marker is a named {time, duration} window lifted from a Lottie
// animation's top-level "markers" array (cm/tm/dr fields), used by
// Config.Marker and TweenToMarker to resolve a playback window by name.
type Marker struct {
	Name     string
	Time     float64
	Duration float64
}

type rawMarker struct {
	Name     string  `json:"cm"`
	Time     float64 `json:"tm"`
	Duration float64 `json:"dr"`
}

type markerDoc struct {
	Markers []rawMarker `json:"markers"`
}

// ExtractMarkers parses the "markers" array out of a Lottie animation
// JSON document. A document with no markers array yields an empty map,
// not an error.
func ExtractMarkers(animationJSON string) (map[string]Marker, error) {
	var doc markerDoc
	if err := json.Unmarshal([]byte(animationJSON), &doc); err != nil {
		return nil, err
	}
	out := make(map[string]Marker, len(doc.Markers))
	for _, m := range doc.Markers {
		out[m.Name] = Marker{Name: m.Name, Time: m.Time, Duration: m.Duration}
	}
	return out, nil
}

func (p *Player) markerByName(name string) (Marker, bool) {
	m, ok := p.markers[name]
	return m, ok
}
