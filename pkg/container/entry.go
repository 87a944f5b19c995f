package container

import (
	"encoding/base64"
	"sync"
	"unicode/utf8"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
)

// kind classifies a ContainerEntry by how its bytes should be materialized:
// text entries are validated as UTF-8 JSON, image entries are base64-encoded.
type kind int

const (
	kindText kind = iota
	kindImage
)

// ContainerEntry holds exactly one of a compressed payload or an already
// materialized decompressed form. GetOrDecompress lazily inflates the
// compressed form (idempotently — repeat calls return the cached value) and
// drops the compressed buffer once materialized, per the spec's
// ContainerEntry contract.
type ContainerEntry struct {
	LogicalName     string
	UncompressedLen uint32

	mu           sync.Mutex
	kind         kind
	method       uint16
	compressed   []byte
	decompressed string
	materialized bool
}

// GetOrDecompress returns the entry's text form: for kindText entries this
// is the raw UTF-8 JSON; for kindImage entries this is the base64 encoding
// of the raw image bytes. Decompression happens at most once.
func (e *ContainerEntry) GetOrDecompress() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.materialized {
		return e.decompressed, nil
	}

	raw := e.compressed
	if e.method != methodStored {
		inflated, err := inflate(e.compressed, e.UncompressedLen)
		if err != nil {
			return "", err
		}
		raw = inflated
	}

	var text string
	switch e.kind {
	case kindImage:
		text = base64.StdEncoding.EncodeToString(raw)
	default:
		if !utf8.Valid(raw) {
			return "", &corerr.ParsingError{Reason: "entry " + e.LogicalName + " is not valid UTF-8"}
		}
		text = string(raw)
	}

	e.decompressed = text
	e.compressed = nil
	e.materialized = true
	return e.decompressed, nil
}
