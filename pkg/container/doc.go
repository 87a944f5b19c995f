// Package container implements a lazy-extraction reader over dotLottie
// files: a ZIP archive bundling a manifest, one or more Lottie animations,
// optional themes, state-machine documents, and image assets.
//
// # Format
//
// dotLottie is a plain ZIP (STORE or DEFLATE) with a fixed path layout:
//
//	manifest.json              - required, parsed eagerly
//	animations/<id>.json        - lazily decompressed
//	themes/<id>.json             - lazily decompressed
//	state_machines/<id>.json    - lazily decompressed (legacy: states/<id>.json)
//	images/<filename>            - lazily decompressed, base64-encoded on read
//
// # Parsing strategy
//
// The reader does not use a general-purpose ZIP library: it walks the
// End-of-Central-Directory record, central directory, and local file
// headers directly, matching the exact byte layout the spec names. Only
// the DEFLATE payload itself goes through the standard library's
// compress/flate; every offset and length is read by hand with
// encoding/binary so failure modes (truncation, bad signatures) are
// reported precisely.
//
// # Concurrency
//
// A Container is read-only after construction except for its lazy
// decompression cache, which is guarded by a mutex so concurrent readers
// (e.g. a host driving the player on one goroutine while an inspector tool
// reads container metadata on another) do not race. The core otherwise
// assumes the single-threaded discipline documented in the player package.
package container
