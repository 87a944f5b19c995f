package statemachine

// ListenerKind enumerates the pointer and lifecycle events a document's
// listener list can react to, including Click/OnComplete/OnLoopComplete
// and per-listener layer scoping.
type ListenerKind int

const (
	ListenerPointerDown ListenerKind = iota
	ListenerPointerUp
	ListenerPointerMove
	ListenerPointerEnter
	ListenerPointerExit
	ListenerClick
	ListenerOnComplete
	ListenerOnLoopComplete
)

// Listener binds a pointer/lifecycle event, optionally scoped to a layer
// and/or the current state, to a list of actions.
type Listener struct {
	Kind      ListenerKind
	StateName string
	LayerName string
	Actions   []Action
}

// firesOnHit reports whether this listener's kind fires when the pointer
// hit-check result is true (every pointer kind except PointerExit, which
// fires whenever the hit-check result is false).
func (l Listener) firesOnHit(hit bool) bool {
	if l.Kind == ListenerPointerExit {
		return !hit
	}
	return hit
}

func (l Listener) isPointerKind() bool {
	switch l.Kind {
	case ListenerPointerDown, ListenerPointerUp, ListenerPointerMove,
		ListenerPointerEnter, ListenerPointerExit, ListenerClick:
		return true
	default:
		return false
	}
}

// matchesState reports whether this listener applies to the engine's
// current state, given an empty StateName matches any state.
func (l Listener) matchesState(currentStateName string) bool {
	return l.StateName == "" || l.StateName == currentStateName
}
