package hfsm

import (
	"fmt"

	"github.com/enetx/hfsm/event"
)

// CompositeState is a state that owns a nested StateMachine[Sub]. The nested
// machine is created on the first AddState, AddTransition or AddAnyTransition
// and lives as long as the state.
//
// Every lifecycle call runs the state's own hooks first and then cascades
// into the nested machine. This holds for ExitState too, so a composite's
// OnExit fires before its active child's OnExit.
type CompositeState[S, Sub comparable] struct {
	*State[S]

	machine    *StateMachine[Sub]
	opts       []Option
	newMachine func() *StateMachine[Sub]
}

// NewCompositeState returns a composite state. The options configure the
// nested machine, which is always named after id.
func NewCompositeState[S, Sub comparable](id S, opts ...Option) *CompositeState[S, Sub] {
	return &CompositeState[S, Sub]{
		State: NewState(id),
		opts:  append(opts[:len(opts):len(opts)], WithName(fmt.Sprint(id))),
	}
}

func (c *CompositeState[S, Sub]) materialize() *StateMachine[Sub] {
	if c.machine == nil {
		if c.newMachine != nil {
			c.machine = c.newMachine()
		} else {
			c.machine = NewStateMachine[Sub](c.opts...)
		}

		c.machine.Init(c)
	}

	return c.machine
}

// Machine returns the nested machine, or nil when no child was registered yet.
func (c *CompositeState[S, Sub]) Machine() *StateMachine[Sub] { return c.machine }

func (c *CompositeState[S, Sub]) AddState(state Node[Sub]) { c.materialize().AddState(state) }

func (c *CompositeState[S, Sub]) AddTransition(t Transition[Sub]) {
	c.materialize().AddTransition(t)
}

func (c *CompositeState[S, Sub]) AddAnyTransition(t Transition[Sub]) {
	c.materialize().AddAnyTransition(t)
}

func (c *CompositeState[S, Sub]) RemoveTransition(t Transition[Sub]) bool {
	return c.machine != nil && c.machine.RemoveTransition(t)
}

func (c *CompositeState[S, Sub]) RemoveAnyTransition(t Transition[Sub]) bool {
	return c.machine != nil && c.machine.RemoveAnyTransition(t)
}

// SwitchState switches the nested machine. It is a no-op without one.
func (c *CompositeState[S, Sub]) SwitchState(next Sub) error {
	if c.machine == nil {
		return nil
	}

	return c.machine.SwitchState(next)
}

// SetInitialState sets the nested initial state. It is a no-op without a nested machine.
func (c *CompositeState[S, Sub]) SetInitialState(id Sub) error {
	if c.machine == nil {
		return nil
	}

	return c.machine.SetInitialState(id)
}

// ActiveStateID returns the nested active id, or the zero id.
func (c *CompositeState[S, Sub]) ActiveStateID() Sub {
	if c.machine == nil {
		var zero Sub
		return zero
	}

	return c.machine.ActiveStateID()
}

// PreviousStateID returns the nested previous id, or the zero id.
func (c *CompositeState[S, Sub]) PreviousStateID() Sub {
	if c.machine == nil {
		var zero Sub
		return zero
	}

	return c.machine.PreviousStateID()
}

func (c *CompositeState[S, Sub]) EnterState() error {
	if err := c.State.EnterState(); err != nil {
		return err
	}

	if c.machine == nil {
		return nil
	}

	return c.machine.EnterState()
}

func (c *CompositeState[S, Sub]) ExitState() error {
	if err := c.State.ExitState(); err != nil {
		return err
	}

	if c.machine == nil {
		return nil
	}

	return c.machine.ExitState()
}

func (c *CompositeState[S, Sub]) UpdateState() error {
	if err := c.State.UpdateState(); err != nil {
		return err
	}

	if c.machine == nil {
		return nil
	}

	return c.machine.UpdateState()
}

func (c *CompositeState[S, Sub]) LateUpdateState() error {
	if err := c.State.LateUpdateState(); err != nil {
		return err
	}

	if c.machine == nil {
		return nil
	}

	return c.machine.LateUpdateState()
}

func (c *CompositeState[S, Sub]) FixedUpdateState() error {
	if err := c.State.FixedUpdateState(); err != nil {
		return err
	}

	if c.machine == nil {
		return nil
	}

	return c.machine.FixedUpdateState()
}

func (c *CompositeState[S, Sub]) nestedDOT() dotWriter {
	if c.machine == nil {
		return nil
	}

	return c.machine
}

// ActionCompositeState is a composite whose nested machine is an
// ActionStateMachine. Events triggered on an outer action machine that no
// outer transition consumes are forwarded into it.
type ActionCompositeState[S, Sub, E comparable] struct {
	*CompositeState[S, Sub]

	actions *ActionStateMachine[Sub, E]
}

// NewActionCompositeState returns a composite state with a nested action machine.
func NewActionCompositeState[S, Sub, E comparable](id S, opts ...Option) *ActionCompositeState[S, Sub, E] {
	c := &ActionCompositeState[S, Sub, E]{CompositeState: NewCompositeState[S, Sub](id, opts...)}
	c.newMachine = func() *StateMachine[Sub] {
		c.actions = NewActionStateMachine[Sub, E](c.opts...)
		return c.actions.StateMachine
	}

	return c
}

func (c *ActionCompositeState[S, Sub, E]) materializeActions() *ActionStateMachine[Sub, E] {
	c.materialize()
	return c.actions
}

// ActionMachine returns the nested action machine, or nil when none exists yet.
func (c *ActionCompositeState[S, Sub, E]) ActionMachine() *ActionStateMachine[Sub, E] {
	return c.actions
}

func (c *ActionCompositeState[S, Sub, E]) AddEventTransitions(id E, t Transition[Sub]) {
	c.materializeActions().AddEventTransitions(id, t)
}

func (c *ActionCompositeState[S, Sub, E]) AddAnyEventTransitions(id E, t Transition[Sub]) {
	c.materializeActions().AddAnyEventTransitions(id, t)
}

// Trigger routes the event into the nested action machine. It is a no-op
// without one.
func (c *ActionCompositeState[S, Sub, E]) Trigger(id E, payload ...any) error {
	if c.actions == nil {
		return nil
	}

	return c.actions.Trigger(id, payload...)
}

// Actions returns the nested machine's action storage, creating the machine if needed.
func (c *ActionCompositeState[S, Sub, E]) Actions() *event.Storage[E] {
	return c.materializeActions().Actions()
}

func (c *ActionCompositeState[S, Sub, E]) AddAction(id E, fn func()) event.Handle {
	return c.materializeActions().AddAction(id, fn)
}

func (c *ActionCompositeState[S, Sub, E]) OnAction(id E) {
	if c.actions != nil {
		c.actions.OnAction(id)
	}
}
