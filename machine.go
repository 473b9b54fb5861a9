// Package hfsm provides a generic hierarchical finite state machine driven by
// periodic ticks. States may own nested machines, transitions are discovered
// either by polling guards on every update or by pushing events into an
// ActionStateMachine. It is built with types and utilities from the
// github.com/enetx/g library.
//
// Machines are single-owner and not safe for concurrent use. Mutating a
// machine from inside one of its guards or lifecycle hooks is undefined.
package hfsm

import (
	"log/slog"

	"github.com/enetx/g"
)

// StateMachine owns a namespace of states keyed by S, the outgoing
// transitions of each state, and a list of any-state transitions.
type StateMachine[S comparable] struct {
	name   string
	logger *slog.Logger

	bundles        g.Map[S, *bundle[S]]
	order          g.Slice[S]
	anyTransitions g.Slice[Transition[S]]
	onTransition   g.Slice[TransitionHook[S]]

	active     *bundle[S]
	activeID   g.Option[S]
	previousID g.Option[S]
	initialID  g.Option[S]

	parent Machine[S]

	// eventEdges is set by ActionStateMachine so ToDOT can render event transitions.
	eventEdges func() g.Slice[eventEdge[S]]
}

// NewStateMachine returns an empty machine.
func NewStateMachine[S comparable](opts ...Option) *StateMachine[S] {
	o := newOptions(opts)

	return &StateMachine[S]{
		name:       o.name,
		logger:     o.logger,
		bundles:    g.NewMap[S, *bundle[S]](),
		activeID:   g.None[S](),
		previousID: g.None[S](),
		initialID:  g.None[S](),
	}
}

// Init stores the machine this one is nested in. States and transitions
// registered afterwards are initialised with that parent instead of m.
func (m *StateMachine[S]) Init(parent Machine[S]) { m.parent = parent }

// Parent returns the machine passed to Init, or nil for a root machine.
func (m *StateMachine[S]) Parent() Machine[S] { return m.parent }

// Name returns the name set with WithName.
func (m *StateMachine[S]) Name() string { return m.name }

func (m *StateMachine[S]) owner() Machine[S] {
	if m.parent != nil {
		return m.parent
	}

	return m
}

func (m *StateMachine[S]) bundleFor(id S) *bundle[S] {
	if b := m.bundles.Get(id); b.IsSome() {
		return b.Some()
	}

	b := new(bundle[S])
	m.bundles[id] = b

	return b
}

// registered returns the bundle of id when it holds a state.
func (m *StateMachine[S]) registered(id S) *bundle[S] {
	b := m.bundles.Get(id)
	if b.IsNone() || b.Some().state == nil {
		return nil
	}

	return b.Some()
}

// AddState registers state under its id, replacing any state previously
// registered there while keeping that id's transitions. The first state ever
// registered becomes the initial state.
func (m *StateMachine[S]) AddState(state Node[S]) {
	id := state.ID()

	b := m.bundleFor(id)
	if b.state == nil {
		m.order.Push(id)
	}

	state.Init(m.owner())
	b.state = state

	if m.initialID.IsNone() {
		m.initialID = g.Some(id)
	}
}

// AddTransition appends t to the transitions of its source state.
func (m *StateMachine[S]) AddTransition(t Transition[S]) {
	b := m.bundleFor(t.From())
	t.Init(m.owner())
	b.transitions.Push(t)
}

// AddAnyTransition appends t to the transitions checked regardless of the
// active state. Its source id is ignored.
func (m *StateMachine[S]) AddAnyTransition(t Transition[S]) {
	t.Init(m.owner())
	m.anyTransitions.Push(t)
}

// RemoveTransition removes t from its source state's transitions. Transitions
// are compared by identity, so t must be of a comparable type such as *Edge.
func (m *StateMachine[S]) RemoveTransition(t Transition[S]) bool {
	b := m.bundles.Get(t.From())
	if b.IsNone() {
		return false
	}

	return removeTransition(&b.Some().transitions, t)
}

// RemoveAnyTransition removes t from the any-state transitions.
func (m *StateMachine[S]) RemoveAnyTransition(t Transition[S]) bool {
	return removeTransition(&m.anyTransitions, t)
}

func removeTransition[S comparable](list *g.Slice[Transition[S]], t Transition[S]) bool {
	before := len(*list)
	*list = list.Iter().Exclude(func(x Transition[S]) bool { return x == t }).Collect()

	return len(*list) != before
}

// OnTransition registers a hook fired on every switch between two states.
func (m *StateMachine[S]) OnTransition(hook TransitionHook[S]) *StateMachine[S] {
	m.onTransition.Push(hook)
	return m
}

// SetInitialState selects the state entered by EnterState.
func (m *StateMachine[S]) SetInitialState(id S) error {
	if m.registered(id) == nil {
		return &ErrStateNotRegistered{Machine: m.name, State: id}
	}

	m.initialID = g.Some(id)

	return nil
}

// EnterState switches to the initial state. On a running machine this leaves
// the active state first, like any other switch.
func (m *StateMachine[S]) EnterState() error {
	if m.initialID.IsNone() {
		return &ErrNoInitialState{Machine: m.name}
	}

	return m.SwitchState(m.initialID.Some())
}

// ExitState exits the active state and stops the machine. It is a no-op when
// nothing is active. PreviousStateID is left unchanged.
func (m *StateMachine[S]) ExitState() error {
	if m.active == nil {
		return nil
	}

	err := m.active.state.ExitState()
	m.active = nil
	m.activeID = g.None[S]()

	return err
}

// SwitchState exits the active state, if any, and enters next.
func (m *StateMachine[S]) SwitchState(next S) error {
	if m.active != nil && m.active.state.ID() == next {
		return &ErrSelfTransition{Machine: m.name, State: next}
	}

	nb := m.registered(next)
	if nb == nil {
		return &ErrStateNotRegistered{Machine: m.name, State: next}
	}

	from := m.activeID
	if m.active != nil {
		if err := m.active.state.ExitState(); err != nil {
			return err
		}

		m.previousID = from

		for hook := range m.onTransition.Iter() {
			hook(from.Some(), next)
		}
	}

	m.logger.Debug("hfsm: switch state", "machine", m.name, "from", from.UnwrapOrDefault(), "to", next)

	m.active = nb
	err := nb.state.EnterState()
	m.activeID = g.Some(next)

	return err
}

// UpdateState evaluates transitions, switching at most once, and then ticks
// the active state.
func (m *StateMachine[S]) UpdateState() error {
	if m.active == nil {
		return &ErrNotRunning{Machine: m.name, Op: "UpdateState"}
	}

	if err := m.evaluate(); err != nil {
		return err
	}

	return m.active.state.UpdateState()
}

// LateUpdateState ticks the active state. It is a no-op when nothing is active.
func (m *StateMachine[S]) LateUpdateState() error {
	if m.active == nil {
		return nil
	}

	return m.active.state.LateUpdateState()
}

// FixedUpdateState ticks the active state. It is a no-op when nothing is active.
func (m *StateMachine[S]) FixedUpdateState() error {
	if m.active == nil {
		return nil
	}

	return m.active.state.FixedUpdateState()
}

// evaluate runs one polling pass: any-state transitions first, then the
// active state's own transitions, first match wins.
func (m *StateMachine[S]) evaluate() error {
	t := m.firstEligible(m.anyTransitions)
	if t.IsNone() {
		t = m.firstEligible(m.active.transitions)
	}

	if t.IsNone() {
		return nil
	}

	return m.SwitchState(t.Some().To())
}

// firstEligible returns the first transition in ts whose guard passes,
// skipping transitions into the active state without consulting their guard.
func (m *StateMachine[S]) firstEligible(ts g.Slice[Transition[S]]) g.Option[Transition[S]] {
	for t := range ts.Iter() {
		if m.active != nil && m.active.state.ID() == t.To() {
			continue
		}

		if t.ShouldTransition() {
			return g.Some(t)
		}
	}

	return g.None[Transition[S]]()
}

// ActiveStateID returns the id of the active state, or the zero id when the
// machine is not running.
func (m *StateMachine[S]) ActiveStateID() S { return m.activeID.UnwrapOrDefault() }

// PreviousStateID returns the id of the state left by the last switch, or
// the zero id before the first switch.
func (m *StateMachine[S]) PreviousStateID() S { return m.previousID.UnwrapOrDefault() }

// Previous is PreviousStateID as an Option.
func (m *StateMachine[S]) Previous() g.Option[S] { return m.previousID }

// InitialStateID returns the state EnterState will switch to.
func (m *StateMachine[S]) InitialStateID() g.Option[S] { return m.initialID }

// Running reports whether a state is active.
func (m *StateMachine[S]) Running() bool { return m.active != nil }

// State returns the state registered under id.
func (m *StateMachine[S]) State(id S) g.Option[Node[S]] {
	if b := m.registered(id); b != nil {
		return g.Some(b.state)
	}

	return g.None[Node[S]]()
}

// ActiveState returns the active state.
func (m *StateMachine[S]) ActiveState() g.Option[Node[S]] {
	if m.active == nil {
		return g.None[Node[S]]()
	}

	return g.Some(m.active.state)
}

// States returns the ids of all registered states in registration order.
func (m *StateMachine[S]) States() g.Slice[S] { return m.order.Clone() }
