package container

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
)

// Container is an indexed, lazily-extracting view over a dotLottie ZIP
// buffer. It is read-only after construction except for each entry's own
// decompression cache (pkg/container.ContainerEntry).
type Container struct {
	Manifest *Manifest

	animations     map[string]*ContainerEntry
	themes         map[string]*ContainerEntry
	stateMachines  map[string]*ContainerEntry
	images         map[string]*ContainerEntry
	animationOrder []string
	themeOrder     []string
	smOrder        []string
}

// Read parses a dotLottie ZIP buffer and indexes its entries. manifest.json
// must be present and parse as JSON or reading fails with ParsingError.
func Read(data []byte, logger *logrus.Entry) (*Container, error) {
	entries, err := parseZip(data)
	if err != nil {
		if logger != nil {
			logger.WithError(err).Warn("failed to parse dotlottie zip structure")
		}
		return nil, err
	}

	c := &Container{
		animations:    make(map[string]*ContainerEntry),
		themes:        make(map[string]*ContainerEntry),
		stateMachines: make(map[string]*ContainerEntry),
		images:        make(map[string]*ContainerEntry),
	}

	var manifestEntry *rawEntry
	for i := range entries {
		e := &entries[i]
		bucket, id, k, ok := routeEntry(e.name)
		if !ok {
			continue
		}
		if bucket == bucketManifest {
			manifestEntry = e
			continue
		}

		payload, err := extractPayload(data, *e)
		if err != nil {
			return nil, err
		}

		ce := &ContainerEntry{
			LogicalName:     e.name,
			UncompressedLen: e.uncompressedSize,
			kind:            k,
			method:          e.method,
			compressed:      payload,
		}

		switch bucket {
		case bucketAnimation:
			c.animations[id] = ce
			c.animationOrder = append(c.animationOrder, id)
		case bucketTheme:
			c.themes[id] = ce
			c.themeOrder = append(c.themeOrder, id)
		case bucketStateMachine:
			c.stateMachines[id] = ce
			c.smOrder = append(c.smOrder, id)
		case bucketImage:
			c.images[id] = ce
		}
	}

	if manifestEntry == nil {
		return nil, &corerr.ParsingError{Reason: "manifest.json not present in dotlottie container"}
	}
	payload, err := extractPayload(data, *manifestEntry)
	if err != nil {
		return nil, err
	}
	text := string(payload)
	if manifestEntry.method != methodStored {
		inflated, err := inflate(payload, manifestEntry.uncompressedSize)
		if err != nil {
			return nil, err
		}
		text = string(inflated)
	}
	manifest, err := parseManifest(text)
	if err != nil {
		return nil, &corerr.ParsingError{Reason: "manifest.json is not valid JSON: " + err.Error()}
	}
	c.Manifest = manifest

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"animations":    len(c.animations),
			"themes":        len(c.themes),
			"stateMachines": len(c.stateMachines),
			"images":        len(c.images),
		}).Debug("dotlottie container parsed")
	}

	return c, nil
}

type bucket int

const (
	bucketIgnored bucket = iota
	bucketManifest
	bucketAnimation
	bucketTheme
	bucketStateMachine
	bucketImage
)

// routeEntry derives the logical bucket and id for an archive path, per the
// spec's path-routing table.
func routeEntry(name string) (b bucket, id string, k kind, ok bool) {
	switch {
	case name == "manifest.json":
		return bucketManifest, "", kindText, true
	case strings.HasPrefix(name, "animations/") && strings.HasSuffix(name, ".json"):
		return bucketAnimation, trimIDPath(name, "animations/"), kindText, true
	case strings.HasPrefix(name, "themes/") && strings.HasSuffix(name, ".json"):
		return bucketTheme, trimIDPath(name, "themes/"), kindText, true
	case strings.HasPrefix(name, "state_machines/") && strings.HasSuffix(name, ".json"):
		return bucketStateMachine, trimIDPath(name, "state_machines/"), kindText, true
	case strings.HasPrefix(name, "states/") && strings.HasSuffix(name, ".json"):
		// Legacy prefix, accepted on read for compatibility with older artifacts.
		return bucketStateMachine, trimIDPath(name, "states/"), kindText, true
	case strings.HasPrefix(name, "images/"):
		return bucketImage, strings.TrimPrefix(name, "images/"), kindImage, true
	default:
		return bucketIgnored, "", kindText, false
	}
}

func trimIDPath(name, prefix string) string {
	id := strings.TrimPrefix(name, prefix)
	return strings.TrimSuffix(id, ".json")
}

// AnimationIDs returns animation ids in insertion (archive) order.
func (c *Container) AnimationIDs() []string { return append([]string(nil), c.animationOrder...) }

// ThemeIDs returns theme ids in insertion (archive) order.
func (c *Container) ThemeIDs() []string { return append([]string(nil), c.themeOrder...) }

// StateMachineIDs returns state-machine ids in insertion (archive) order.
func (c *Container) StateMachineIDs() []string { return append([]string(nil), c.smOrder...) }

// Animation returns the decompressed Lottie JSON text for an animation id.
func (c *Container) Animation(id string) (string, error) {
	e, ok := c.animations[id]
	if !ok {
		return "", &corerr.AnimationNotFound{ID: id}
	}
	return e.GetOrDecompress()
}

// Theme returns the decompressed theme JSON text for a theme id.
func (c *Container) Theme(id string) (string, error) {
	e, ok := c.themes[id]
	if !ok {
		return "", &corerr.ThemeNotFound{ID: id}
	}
	return e.GetOrDecompress()
}

// StateMachine returns the decompressed state-machine JSON text for an id.
func (c *Container) StateMachine(id string) (string, error) {
	e, ok := c.stateMachines[id]
	if !ok {
		return "", &corerr.StateMachineNotFound{ID: id}
	}
	return e.GetOrDecompress()
}

// Image returns the base64-encoded bytes of an image asset by its filename
// (the path segment following "images/").
func (c *Container) Image(filename string) (string, bool, error) {
	e, ok := c.images[filename]
	if !ok {
		return "", false, nil
	}
	text, err := e.GetOrDecompress()
	return text, true, err
}
