// Package corerr defines the typed error kinds the core reports to callers.
//
// The container reader, the schema/theme/state-machine parsers, the
// renderer, and Player.GetLayerBounds return these as error values. The
// Player's mutating operations report only a boolean success flag.
package corerr

import "fmt"

// InvalidParameter reports a null pointer, out-of-range frame, or malformed
// configuration value supplied by the caller.
type InvalidParameter struct {
	Reason string
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("invalid parameter: %s", e.Reason)
}

// NotLoaded reports an operation that requires a loaded animation.
type NotLoaded struct {
	Op string
}

func (e *NotLoaded) Error() string {
	return fmt.Sprintf("%s: no animation loaded", e.Op)
}

// ParsingError reports a malformed container, manifest, theme, or
// state-machine document.
type ParsingError struct {
	Reason string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing error: %s", e.Reason)
}

// AnimationNotFound reports a container lookup miss by animation id.
type AnimationNotFound struct {
	ID string
}

func (e *AnimationNotFound) Error() string {
	return fmt.Sprintf("animation not found: %q", e.ID)
}

// ThemeNotFound reports a container lookup miss by theme id.
type ThemeNotFound struct {
	ID string
}

func (e *ThemeNotFound) Error() string {
	return fmt.Sprintf("theme not found: %q", e.ID)
}

// StateMachineNotFound reports a container lookup miss by state-machine id.
type StateMachineNotFound struct {
	ID string
}

func (e *StateMachineNotFound) Error() string {
	return fmt.Sprintf("state machine not found: %q", e.ID)
}

// RendererError wraps a failure returned by the backend renderer.
type RendererError struct {
	Op  string
	Err error
}

func (e *RendererError) Error() string {
	return fmt.Sprintf("renderer error during %s: %v", e.Op, e.Err)
}

func (e *RendererError) Unwrap() error { return e.Err }

// SMErrorKind enumerates the StateMachineEngineError variants.
type SMErrorKind int

const (
	CreationError SMErrorKind = iota
	NotRunningError
	SetStateError
	InfiniteLoopError
	FireEventError
	MultipleGuardlessTransitions
	DuplicateStateName
)

func (k SMErrorKind) String() string {
	switch k {
	case CreationError:
		return "CreationError"
	case NotRunningError:
		return "NotRunningError"
	case SetStateError:
		return "SetStateError"
	case InfiniteLoopError:
		return "InfiniteLoopError"
	case FireEventError:
		return "FireEventError"
	case MultipleGuardlessTransitions:
		return "SecurityCheck::MultipleGuardlessTransitions"
	case DuplicateStateName:
		return "SecurityCheck::DuplicateStateName"
	default:
		return "UnknownStateMachineEngineError"
	}
}

// StateMachineEngineError reports a failure originating in the state
// machine engine.
type StateMachineEngineError struct {
	Kind   SMErrorKind
	Reason string
}

func (e *StateMachineEngineError) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Reason)
}

// IsSecurityCheck reports whether the error is one of the two document
// validation checks performed at parse time.
func (e *StateMachineEngineError) IsSecurityCheck() bool {
	return e.Kind == MultipleGuardlessTransitions || e.Kind == DuplicateStateName
}
