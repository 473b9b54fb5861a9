package hfsm

import "github.com/enetx/hfsm/event"

// State is a leaf state. Each lifecycle hook is an ordered multicast list:
//
//	idle := hfsm.NewState("Idle")
//	idle.OnEnter.Add(func() { log.Println("idle") })
type State[S comparable] struct {
	id     S
	parent Machine[S]

	OnInit        event.Signal
	OnEnter       event.Signal
	OnExit        event.Signal
	OnUpdate      event.Signal
	OnLateUpdate  event.Signal
	OnFixedUpdate event.Signal
}

// NewState returns a leaf state with the given id.
func NewState[S comparable](id S) *State[S] {
	return &State[S]{id: id}
}

func (s *State[S]) ID() S { return s.id }

// Parent returns the machine the state was registered with, or nil.
func (s *State[S]) Parent() Machine[S] { return s.parent }

// Init stores the owning machine and fires OnInit.
func (s *State[S]) Init(parent Machine[S]) {
	s.parent = parent
	s.OnInit.Invoke()
}

func (s *State[S]) EnterState() error {
	s.OnEnter.Invoke()
	return nil
}

func (s *State[S]) ExitState() error {
	s.OnExit.Invoke()
	return nil
}

func (s *State[S]) UpdateState() error {
	s.OnUpdate.Invoke()
	return nil
}

func (s *State[S]) LateUpdateState() error {
	s.OnLateUpdate.Invoke()
	return nil
}

func (s *State[S]) FixedUpdateState() error {
	s.OnFixedUpdate.Invoke()
	return nil
}

// ActionState is a leaf state that also owns an action storage. Actions are
// side-effecting reactions and never cause a state change.
type ActionState[S, E comparable] struct {
	*State[S]
	actions *event.Storage[E]
}

// NewActionState returns a leaf state with its own action storage.
func NewActionState[S, E comparable](id S) *ActionState[S, E] {
	return &ActionState[S, E]{State: NewState(id), actions: event.NewStorage[E]()}
}

func (s *ActionState[S, E]) Actions() *event.Storage[E] { return s.actions }

func (s *ActionState[S, E]) AddAction(id E, fn func()) event.Handle {
	return s.actions.AddListener(id, fn)
}

func (s *ActionState[S, E]) RemoveAction(id E, h event.Handle) { s.actions.RemoveListener(id, h) }

func (s *ActionState[S, E]) OnAction(id E) { s.actions.Trigger(id) }
