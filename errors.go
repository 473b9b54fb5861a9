package hfsm

import "fmt"

func machineLabel(name string) string {
	if name == "" {
		return "state machine"
	}

	return fmt.Sprintf("state machine %q", name)
}

// ErrStateNotRegistered is returned when SwitchState or SetInitialState names
// an id that has no registered state. Transitions alone do not register a state.
type ErrStateNotRegistered struct {
	Machine string
	State   any
}

func (e *ErrStateNotRegistered) Error() string {
	return fmt.Sprintf("hfsm: state %v is not registered to %s", e.State, machineLabel(e.Machine))
}

// ErrSelfTransition is returned when SwitchState targets the state that is
// already active. The transition evaluators never select such a transition;
// only an explicit SwitchState call can hit this.
type ErrSelfTransition struct {
	Machine string
	State   any
}

func (e *ErrSelfTransition) Error() string {
	return fmt.Sprintf("hfsm: %s cannot switch from state %v into itself", machineLabel(e.Machine), e.State)
}

// ErrNoInitialState is returned by EnterState when no initial state was configured.
type ErrNoInitialState struct {
	Machine string
}

func (e *ErrNoInitialState) Error() string {
	return fmt.Sprintf("hfsm: %s has no initial state", machineLabel(e.Machine))
}

// ErrNotRunning is returned by UpdateState when no state is active, i.e.
// before the first EnterState or after ExitState.
type ErrNotRunning struct {
	Machine string
	Op      string
}

func (e *ErrNotRunning) Error() string {
	return fmt.Sprintf("hfsm: %s called on %s with no active state", e.Op, machineLabel(e.Machine))
}
