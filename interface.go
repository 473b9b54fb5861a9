package hfsm

import "github.com/enetx/hfsm/event"

// Lifecycle is the tick surface driven from outside. The driver decides when
// each method is called; the engine only defines what the calls do.
type Lifecycle interface {
	EnterState() error
	ExitState() error
	UpdateState() error
	LateUpdateState() error
	FixedUpdateState() error
}

// Node is anything that can be registered as a state of a StateMachine[S].
type Node[S comparable] interface {
	Lifecycle
	ID() S
	Init(parent Machine[S])
}

// Machine is the configuration and switching surface of a namespace of
// states. Both StateMachine and CompositeState implement it.
type Machine[S comparable] interface {
	ActiveStateID() S
	PreviousStateID() S
	AddState(state Node[S])
	AddTransition(t Transition[S])
	AddAnyTransition(t Transition[S])
	SwitchState(next S) error
	SetInitialState(id S) error
}

// Triggerable is implemented by machines and states that accept pushed events.
type Triggerable[E comparable] interface {
	Trigger(id E, payload ...any) error
}

// Actionable is implemented by machines and states that own an action storage.
// Typed actions go through the event package on the returned storage:
//
//	event.AddListener(m.Actions(), "hit", func(dmg int) { ... })
//	event.Trigger(m.Actions(), "hit", 10)
type Actionable[E comparable] interface {
	Actions() *event.Storage[E]
	AddAction(id E, fn func()) event.Handle
	OnAction(id E)
}

// Interface compliance checks.
var (
	_ Machine[string]     = (*StateMachine[string])(nil)
	_ Machine[string]     = (*CompositeState[int, string])(nil)
	_ Lifecycle           = (*StateMachine[string])(nil)
	_ Node[string]        = (*State[string])(nil)
	_ Node[string]        = (*ActionState[string, string])(nil)
	_ Node[int]           = (*CompositeState[int, string])(nil)
	_ Node[int]           = (*ActionCompositeState[int, string, string])(nil)
	_ Triggerable[string] = (*ActionStateMachine[int, string])(nil)
	_ Triggerable[string] = (*ActionCompositeState[int, int, string])(nil)
	_ Actionable[string]  = (*ActionStateMachine[int, string])(nil)
	_ Actionable[string]  = (*ActionState[int, string])(nil)
	_ Actionable[string]  = (*ActionCompositeState[int, int, string])(nil)
	_ Transition[string]  = (*Edge[string])(nil)
)
