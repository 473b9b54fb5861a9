package hfsm_test

import (
	"testing"

	. "github.com/enetx/hfsm"
)

func groundedMachine(moving *bool) (*StateMachine[string], *CompositeState[string, string]) {
	grounded := NewCompositeState[string, string]("Grounded")
	grounded.AddState(NewState("Idle"))
	grounded.AddState(NewState("Walk"))
	grounded.AddTransition(NewTransition("Idle", "Walk", func() bool { return *moving }))
	grounded.AddTransition(NewTransition("Walk", "Idle", func() bool { return !*moving }))

	root := NewStateMachine[string]()
	root.AddState(grounded)
	root.AddState(NewState("Airborne"))

	return root, grounded
}

func TestCompositeState_EnterCascades(t *testing.T) {
	moving := false
	root, grounded := groundedMachine(&moving)

	assertNoError(t, root.EnterState())
	assertEqual(t, root.ActiveStateID(), "Grounded")
	assertEqual(t, grounded.ActiveStateID(), "Idle")
	assertTrue(t, grounded.Machine().Running())
	assertEqual(t, grounded.Machine().Name(), "Grounded")
}

func TestCompositeState_NestedSwitchWithinOuterTick(t *testing.T) {
	moving := false
	root, grounded := groundedMachine(&moving)

	assertNoError(t, root.EnterState())
	assertNoError(t, root.UpdateState())
	assertEqual(t, grounded.ActiveStateID(), "Idle")

	moving = true
	assertNoError(t, root.UpdateState())
	assertEqual(t, root.ActiveStateID(), "Grounded")
	assertEqual(t, grounded.ActiveStateID(), "Walk")
	assertEqual(t, grounded.PreviousStateID(), "Idle")
}

func TestCompositeState_OuterSwitchExitsNested(t *testing.T) {
	moving := false
	root, grounded := groundedMachine(&moving)

	var log []string
	grounded.OnExit.Add(func() { log = append(log, "Grounded") })
	grounded.Machine().State("Idle").Some().(*State[string]).OnExit.Add(func() { log = append(log, "Idle") })

	assertNoError(t, root.EnterState())
	assertNoError(t, root.SwitchState("Airborne"))

	assertEqual(t, len(log), 2)
	assertEqual(t, log[0], "Grounded")
	assertEqual(t, log[1], "Idle")
	assertFalse(t, grounded.Machine().Running())

	// Re-entering restarts the nested machine at its initial state.
	moving = true
	assertNoError(t, root.SwitchState("Grounded"))
	assertEqual(t, grounded.ActiveStateID(), "Idle")
}

func TestCompositeState_ChildrenSeeCompositeAsParent(t *testing.T) {
	moving := false
	root, grounded := groundedMachine(&moving)

	idle := grounded.Machine().State("Idle").Some().(*State[string])
	assertTrue(t, idle.Parent() == Machine[string](grounded))
	assertTrue(t, grounded.Parent() == Machine[string](root))
}

func TestCompositeState_TicksCascade(t *testing.T) {
	grounded := NewCompositeState[string, string]("Grounded")
	idle, c := counted("Idle")
	grounded.AddState(idle)

	root := NewStateMachine[string]()
	root.AddState(grounded)

	outer := 0
	grounded.OnUpdate.Add(func() { outer++ })

	assertNoError(t, root.EnterState())
	assertNoError(t, root.UpdateState())
	assertNoError(t, root.LateUpdateState())
	assertNoError(t, root.FixedUpdateState())

	assertEqual(t, outer, 1)
	assertEqual(t, c.enter, 1)
	assertEqual(t, c.update, 1)
	assertEqual(t, c.late, 1)
	assertEqual(t, c.fixed, 1)
}

func TestCompositeState_WithoutChildren(t *testing.T) {
	empty := NewCompositeState[string, int]("Empty")

	assertTrue(t, empty.Machine() == nil)
	assertNoError(t, empty.SwitchState(3))
	assertNoError(t, empty.SetInitialState(3))
	assertEqual(t, empty.ActiveStateID(), 0)
	assertEqual(t, empty.PreviousStateID(), 0)
	assertFalse(t, empty.RemoveTransition(NewTransition(1, 2, nil)))

	root := NewStateMachine[string]()
	root.AddState(empty)

	assertNoError(t, root.EnterState())
	assertNoError(t, root.UpdateState())
	assertNoError(t, root.ExitState())
	assertTrue(t, empty.Machine() == nil)
}

func TestCompositeState_NestedErrorsPropagate(t *testing.T) {
	grounded := NewCompositeState[string, string]("Grounded")
	grounded.AddState(NewState("Idle"))

	assertError(t, grounded.SetInitialState("Missing"))
	assertError(t, grounded.SwitchState("Missing"))
}

func TestCompositeState_ThreeLevels(t *testing.T) {
	inner := NewCompositeState[string, int]("Combat")
	inner.AddState(NewState(1))
	inner.AddState(NewState(2))
	inner.AddTransition(NewTransition(1, 2, always))

	mid := NewCompositeState[string, string]("Alive")
	mid.AddState(inner)

	root := NewStateMachine[string]()
	root.AddState(mid)

	assertNoError(t, root.EnterState())
	assertEqual(t, inner.ActiveStateID(), 1)

	assertNoError(t, root.UpdateState())
	assertEqual(t, inner.ActiveStateID(), 2)
}
