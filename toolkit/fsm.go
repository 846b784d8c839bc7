package toolkit

// Transition is one row of a finite-state-machine table.
type Transition[S comparable, E comparable] struct {
	From  S
	Event E
	To    S
	// Act runs after the state switched to To. May be nil.
	Act func()
}

// Machine is a tiny table-driven state machine. It dispatches events
// against a fixed transition table; events with no matching row are
// reported as unhandled and leave the state untouched.
type Machine[S comparable, E comparable] struct {
	state S
	table []Transition[S, E]
}

// NewMachine creates a machine in the given initial state.
func NewMachine[S comparable, E comparable](initial S, table []Transition[S, E]) *Machine[S, E] {
	return &Machine[S, E]{state: initial, table: table}
}

// State returns the current state.
func (m *Machine[S, E]) State() S { return m.state }

// Handle dispatches event. Reports whether a transition matched.
func (m *Machine[S, E]) Handle(event E) bool {
	for _, t := range m.table {
		if t.From == m.state && t.Event == event {
			m.state = t.To
			if t.Act != nil {
				t.Act()
			}
			return true
		}
	}
	return false
}
