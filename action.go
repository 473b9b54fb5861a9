package hfsm

import (
	"github.com/enetx/g"

	"github.com/enetx/hfsm/event"
)

// ActionStateMachine is a StateMachine that can also switch in direct
// response to a pushed event, and owns an action storage for reactions that
// do not change state.
//
// Polled transitions keep working as usual on UpdateState; event transitions
// are only consulted by Trigger.
type ActionStateMachine[S, E comparable] struct {
	*StateMachine[S]

	eventTransitions    g.Map[S, g.Map[E, g.Slice[Transition[S]]]]
	anyEventTransitions g.Map[E, g.Slice[Transition[S]]]
	eventLog            g.Slice[eventEdge[S]]
	actions             *event.Storage[E]
}

// NewActionStateMachine returns an empty action machine.
func NewActionStateMachine[S, E comparable](opts ...Option) *ActionStateMachine[S, E] {
	m := &ActionStateMachine[S, E]{
		StateMachine:        NewStateMachine[S](opts...),
		eventTransitions:    g.NewMap[S, g.Map[E, g.Slice[Transition[S]]]](),
		anyEventTransitions: g.NewMap[E, g.Slice[Transition[S]]](),
		actions:             event.NewStorage[E](),
	}

	m.eventEdges = func() g.Slice[eventEdge[S]] { return m.eventLog }

	return m
}

// AddEventTransitions indexes t under its source state and id.
func (m *ActionStateMachine[S, E]) AddEventTransitions(id E, t Transition[S]) {
	byEvent, ok := m.eventTransitions[t.From()]
	if !ok {
		byEvent = g.NewMap[E, g.Slice[Transition[S]]]()
		m.eventTransitions[t.From()] = byEvent
	}

	t.Init(m.owner())

	list := byEvent[id]
	list.Push(t)
	byEvent[id] = list

	m.eventLog.Push(eventEdge[S]{event: id, transition: t})
}

// AddAnyEventTransitions indexes t under id regardless of the active state.
func (m *ActionStateMachine[S, E]) AddAnyEventTransitions(id E, t Transition[S]) {
	t.Init(m.owner())

	list := m.anyEventTransitions[id]
	list.Push(t)
	m.anyEventTransitions[id] = list

	m.eventLog.Push(eventEdge[S]{event: id, transition: t, wildcard: true})
}

// Trigger looks for a transition for id: any-event transitions first, then
// the active state's event transitions, first match wins and transitions into
// the active state are skipped. When nothing matches and the active state is
// itself Triggerable, the event and payload are forwarded to it. An event
// nobody consumes is dropped.
func (m *ActionStateMachine[S, E]) Trigger(id E, payload ...any) error {
	t := g.None[Transition[S]]()

	if list := m.anyEventTransitions.Get(id); list.IsSome() {
		t = m.firstEligible(list.Some())
	}

	if t.IsNone() && m.active != nil {
		if byEvent := m.eventTransitions.Get(m.active.state.ID()); byEvent.IsSome() {
			t = m.firstEligible(byEvent.Some()[id])
		}
	}

	if t.IsSome() {
		return m.SwitchState(t.Some().To())
	}

	if m.active == nil {
		return nil
	}

	if child, ok := m.active.state.(Triggerable[E]); ok {
		m.logger.Debug("hfsm: forward event", "machine", m.name, "state", m.active.state.ID(), "event", id)
		return child.Trigger(id, payload...)
	}

	return nil
}

func (m *ActionStateMachine[S, E]) Actions() *event.Storage[E] { return m.actions }

// AddAction registers a no-payload reaction to id.
func (m *ActionStateMachine[S, E]) AddAction(id E, fn func()) event.Handle {
	return m.actions.AddListener(id, fn)
}

func (m *ActionStateMachine[S, E]) RemoveAction(id E, h event.Handle) {
	m.actions.RemoveListener(id, h)
}

// OnAction raises the no-payload reactions to id.
func (m *ActionStateMachine[S, E]) OnAction(id E) { m.actions.Trigger(id) }

// AddActionOf registers a typed action under id on a.
func AddActionOf[T any, E comparable](a Actionable[E], id E, fn func(T)) event.Handle {
	return event.AddListener(a.Actions(), id, fn)
}

// RemoveActionOf removes a typed action registered with AddActionOf.
func RemoveActionOf[T any, E comparable](a Actionable[E], id E, h event.Handle) {
	event.RemoveListener[T](a.Actions(), id, h)
}

// OnActionOf invokes the actions registered under id for the payload type T.
func OnActionOf[T any, E comparable](a Actionable[E], id E, payload T) {
	event.Trigger(a.Actions(), id, payload)
}
