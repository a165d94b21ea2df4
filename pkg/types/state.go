package types

import "errors"

// Alignment states. A strategy progresses through these states as tracking
// input arrives and disappears.
const (
	StateUnresolved State = "unresolved"
	StateResolving  State = "resolving"
	StateResolved   State = "resolved"
	StateLost       State = "lost"
)

// State is the lifecycle state of an alignment strategy.
type State string

// State machine errors.
var (
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// validStates is the set of recognized state values.
var validStates = map[State]bool{
	StateUnresolved: true,
	StateResolving:  true,
	StateResolved:   true,
	StateLost:       true,
}

// legalTransitions enumerates the permitted state changes. Unresolved is the
// sole initial state and there is no terminal state; a lost strategy may
// re-acquire directly or via a new search.
var legalTransitions = map[State]map[State]bool{
	StateUnresolved: {StateResolving: true},
	StateResolving:  {StateResolved: true},
	StateResolved:   {StateLost: true},
	StateLost:       {StateResolving: true, StateResolved: true},
}

// Valid reports whether s is a recognized state value.
func (s State) Valid() bool {
	return validStates[s]
}

// StateFunc is a state-change observer callback. It receives the state the
// machine transitioned into.
type StateFunc func(State)

// Machine is the shared alignment state machine. Every strategy embeds one
// and drives it from its tracking input; consumers subscribe rather than
// poll. Machine is not internally synchronized: all transitions and
// notifications happen on the single goroutine that owns the graph.
type Machine struct {
	state     State
	observers []StateFunc
}

// NewMachine returns a machine in the unresolved state.
func NewMachine() *Machine {
	return &Machine{state: StateUnresolved}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Subscribe registers fn to be called after every transition and on every
// republish. Observers cannot be removed; they share the machine's lifetime.
func (m *Machine) Subscribe(fn StateFunc) {
	if fn != nil {
		m.observers = append(m.observers, fn)
	}
}

// Transition moves the machine to next and notifies observers.
// Transitioning to the current state is a no-op and does not notify.
// Returns ErrInvalidState for unrecognized values and ErrInvalidTransition
// for recognized values not reachable from the current state.
func (m *Machine) Transition(next State) error {
	if !next.Valid() {
		return ErrInvalidState
	}
	if next == m.state {
		return nil
	}
	if !legalTransitions[m.state][next] {
		return ErrInvalidTransition
	}
	m.state = next
	m.notify()
	return nil
}

// Republish notifies observers without changing state. Strategies call this
// when their accuracy or pose changes while the state stays the same, so
// consumers re-evaluate on data changes as well as state changes.
func (m *Machine) Republish() {
	m.notify()
}

func (m *Machine) notify() {
	for _, fn := range m.observers {
		fn(m.state)
	}
}
