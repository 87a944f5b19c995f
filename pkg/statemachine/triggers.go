package statemachine

// TriggerKind enumerates the typed trigger variants a state-machine
// document can declare.
type TriggerKind int

const (
	TriggerNumeric TriggerKind = iota
	TriggerString
	TriggerBoolean
	TriggerEvent
)

// Trigger is one named, typed value a document declares up front; its
// initial value seeds the engine's trigger set at creation time.
type Trigger struct {
	Kind          TriggerKind
	Name          string
	NumericValue  float64
	StringValue   string
	BooleanValue  bool
}

// triggerSet holds the engine's live trigger values, keyed by name and
// segregated by kind rather than a single `interface{}`-valued map.
type triggerSet struct {
	numeric map[string]float64
	str     map[string]string
	boolean map[string]bool
	event   map[string]string
}

func newTriggerSet() *triggerSet {
	return &triggerSet{
		numeric: make(map[string]float64),
		str:     make(map[string]string),
		boolean: make(map[string]bool),
		event:   make(map[string]string),
	}
}

func (s *triggerSet) numericValue(name string) (float64, bool) {
	v, ok := s.numeric[name]
	return v, ok
}

func (s *triggerSet) stringValue(name string) (string, bool) {
	v, ok := s.str[name]
	return v, ok
}

func (s *triggerSet) booleanValue(name string) (bool, bool) {
	v, ok := s.boolean[name]
	return v, ok
}

func (s *triggerSet) setNumeric(name string, v float64) { s.numeric[name] = v }
func (s *triggerSet) setString(name string, v string)    { s.str[name] = v }
func (s *triggerSet) setBoolean(name string, v bool)     { s.boolean[name] = v }

func (s *triggerSet) declareEvent(name string) { s.event[name] = "" }

func (s *triggerSet) isEventDeclared(name string) bool {
	_, ok := s.event[name]
	return ok
}
