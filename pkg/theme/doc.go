// Package theme parses dotLottie theme/slot-rule documents and lowers them
// into the JSON slot-override map a renderer.Renderer consumes via
// SetSlots.
//
// A theme document is a flat list of typed rules (Color, Scalar, Gradient,
// Image, Text, Vector, Position), each optionally scoped to a subset of
// animation ids. Lowering selects the rules applicable to the active
// animation and serializes their values into the slot wire format; applying
// the same rule set twice must be idempotent, so lowering is a pure
// function of the document and the active animation id.
package theme
