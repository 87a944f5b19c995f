package container

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"io"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
)

const (
	sigEndOfCentralDir = 0x06054b50
	sigCentralDirHdr   = 0x02014b50
	sigLocalFileHdr    = 0x04034b50

	methodStored  = 0
	eocdMinSize   = 22
	localHdrFixed = 30
)

// rawEntry is one parsed central-directory record: enough to locate and
// decompress the corresponding local file payload on demand.
type rawEntry struct {
	name             string
	method           uint16
	compressedSize   uint32
	uncompressedSize uint32
	localHeaderOff   uint32
}

// parseZip walks the End-of-Central-Directory record and central directory
// of a ZIP buffer, per the byte layout described in the container-reader
// specification; local file headers are read later by extractPayload. It
// never trusts a general-purpose archive library: every offset is read by
// hand so a truncated or malformed buffer fails with a precise reason.
func parseZip(data []byte) ([]rawEntry, error) {
	eocdOff, err := findEndOfCentralDir(data)
	if err != nil {
		return nil, err
	}
	if eocdOff+eocdMinSize > len(data) {
		return nil, &corerr.ParsingError{Reason: "truncated end-of-central-directory record"}
	}

	entryCount := int(binary.LittleEndian.Uint16(data[eocdOff+10 : eocdOff+12]))
	cdOffset := int(binary.LittleEndian.Uint32(data[eocdOff+16 : eocdOff+20]))
	if cdOffset < 0 || cdOffset > len(data) {
		return nil, &corerr.ParsingError{Reason: "central directory offset out of range"}
	}

	entries := make([]rawEntry, 0, entryCount)
	pos := cdOffset
	for i := 0; i < entryCount; i++ {
		if pos+46 > len(data) {
			return nil, &corerr.ParsingError{Reason: "truncated central directory entry"}
		}
		if binary.LittleEndian.Uint32(data[pos:pos+4]) != sigCentralDirHdr {
			return nil, &corerr.ParsingError{Reason: "invalid central directory signature"}
		}

		method := binary.LittleEndian.Uint16(data[pos+10 : pos+12])
		compSize := binary.LittleEndian.Uint32(data[pos+20 : pos+24])
		uncompSize := binary.LittleEndian.Uint32(data[pos+24 : pos+28])
		nameLen := int(binary.LittleEndian.Uint16(data[pos+28 : pos+30]))
		extraLen := int(binary.LittleEndian.Uint16(data[pos+30 : pos+32]))
		commentLen := int(binary.LittleEndian.Uint16(data[pos+32 : pos+34]))
		localOff := binary.LittleEndian.Uint32(data[pos+42 : pos+46])

		nameStart := pos + 46
		nameEnd := nameStart + nameLen
		if nameEnd > len(data) {
			return nil, &corerr.ParsingError{Reason: "truncated central directory file name"}
		}
		name := string(data[nameStart:nameEnd])

		entries = append(entries, rawEntry{
			name:             name,
			method:           method,
			compressedSize:   compSize,
			uncompressedSize: uncompSize,
			localHeaderOff:   localOff,
		})

		pos = nameEnd + extraLen + commentLen
	}

	return entries, nil
}

// findEndOfCentralDir scans backward from the buffer end for the EOCD
// signature, since a ZIP comment of unknown length may follow it.
func findEndOfCentralDir(data []byte) (int, error) {
	if len(data) < eocdMinSize {
		return 0, &corerr.ParsingError{Reason: "buffer too small to contain a zip end-of-central-directory record"}
	}
	maxBack := len(data) - eocdMinSize
	// A comment can be at most 65535 bytes; search no further back than that.
	limit := maxBack - 65535
	if limit < 0 {
		limit = 0
	}
	for i := maxBack; i >= limit; i-- {
		if binary.LittleEndian.Uint32(data[i:i+4]) == sigEndOfCentralDir {
			return i, nil
		}
	}
	return 0, &corerr.ParsingError{Reason: "end-of-central-directory signature not found"}
}

// extractPayload reads the raw (still-compressed, if applicable) bytes for
// one entry from its local file header, validating the local header
// signature and taking the payload size from the central-directory record.
func extractPayload(data []byte, e rawEntry) ([]byte, error) {
	off := int(e.localHeaderOff)
	if off < 0 || off+localHdrFixed > len(data) {
		return nil, &corerr.ParsingError{Reason: "local file header out of range for " + e.name}
	}
	if binary.LittleEndian.Uint32(data[off:off+4]) != sigLocalFileHdr {
		return nil, &corerr.ParsingError{Reason: "invalid local file header signature for " + e.name}
	}

	nameLen := int(binary.LittleEndian.Uint16(data[off+26 : off+28]))
	extraLen := int(binary.LittleEndian.Uint16(data[off+28 : off+30]))

	payloadStart := off + localHdrFixed + nameLen + extraLen
	payloadEnd := payloadStart + int(e.compressedSize)
	if payloadStart < 0 || payloadEnd > len(data) || payloadStart > payloadEnd {
		return nil, &corerr.ParsingError{Reason: "local file payload out of range for " + e.name}
	}

	return data[payloadStart:payloadEnd], nil
}

// inflate decompresses a raw DEFLATE payload (method != stored) to its
// expected uncompressed size.
func inflate(compressed []byte, expectedSize uint32) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	out := make([]byte, 0, expectedSize)
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &corerr.ParsingError{Reason: "deflate decompression failed: " + err.Error()}
		}
	}
	return out, nil
}
