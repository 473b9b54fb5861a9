package config

import (
	"github.com/enetx/g"

	"github.com/enetx/hfsm"
)

// Guards maps guard names used in a layout to their functions.
type Guards map[string]hfsm.GuardFunc

// Result is a built machine together with every state it contains, indexed
// by dotted path ("Grounded.Idle").
type Result struct {
	Machine *hfsm.ActionStateMachine[string, string]
	States  g.Map[string, *hfsm.State[string]]
}

// State returns the state at path.
func (r *Result) State(path string) g.Option[*hfsm.State[string]] { return r.States.Get(path) }

// target is a machine level: the root machine or a composite state.
type target interface {
	AddState(state hfsm.Node[string])
	AddTransition(t hfsm.Transition[string])
	AddAnyTransition(t hfsm.Transition[string])
	AddEventTransitions(id string, t hfsm.Transition[string])
	AddAnyEventTransitions(id string, t hfsm.Transition[string])
	SetInitialState(id string) error
}

type builder struct {
	guards Guards
	opts   []hfsm.Option
	result *Result
}

// Build creates the machine described by d. The options are applied to the
// root machine and to every nested machine; the definition name, when set,
// names the root.
func (d *Definition) Build(guards Guards, opts ...hfsm.Option) (*Result, error) {
	rootOpts := opts
	if d.Name != "" {
		rootOpts = append([]hfsm.Option{hfsm.WithName(d.Name)}, opts...)
	}

	b := &builder{
		guards: guards,
		opts:   opts,
		result: &Result{
			Machine: hfsm.NewActionStateMachine[string, string](rootOpts...),
			States:  g.NewMap[string, *hfsm.State[string]](),
		},
	}

	if err := b.layout(d.Layout, b.result.Machine, ""); err != nil {
		return nil, err
	}

	return b.result, nil
}

func (b *builder) layout(l Layout, t target, path string) error {
	ids := g.NewMap[string, bool]()

	for _, sc := range l.States {
		p := join(path, sc.ID)
		if ids.Contains(sc.ID) {
			return &ErrDuplicateState{Path: p}
		}

		ids[sc.ID] = true

		if !sc.Composite() {
			s := hfsm.NewState(sc.ID)
			b.result.States[p] = s
			t.AddState(s)

			continue
		}

		c := hfsm.NewActionCompositeState[string, string, string](sc.ID, b.opts...)
		b.result.States[p] = c.State

		if err := b.layout(sc.Layout, c, p); err != nil {
			return err
		}

		t.AddState(c)
	}

	for _, tc := range l.Transitions {
		for _, id := range []string{tc.From, tc.To} {
			if !ids.Contains(id) {
				return &ErrUnknownState{Path: path, State: id}
			}
		}

		guard, err := b.guard(path, tc.Guard)
		if err != nil {
			return err
		}

		edge := hfsm.NewTransition(tc.From, tc.To, guard)
		if tc.Event != "" {
			t.AddEventTransitions(tc.Event, edge)
		} else {
			t.AddTransition(edge)
		}
	}

	for _, tc := range l.Any {
		if !ids.Contains(tc.To) {
			return &ErrUnknownState{Path: path, State: tc.To}
		}

		guard, err := b.guard(path, tc.Guard)
		if err != nil {
			return err
		}

		edge := hfsm.NewAnyTransition(tc.To, guard)
		if tc.Event != "" {
			t.AddAnyEventTransitions(tc.Event, edge)
		} else {
			t.AddAnyTransition(edge)
		}
	}

	if l.Initial == "" {
		return nil
	}

	if !ids.Contains(l.Initial) {
		return &ErrUnknownState{Path: path, State: l.Initial}
	}

	return t.SetInitialState(l.Initial)
}

func (b *builder) guard(path, name string) (hfsm.GuardFunc, error) {
	if name == "" {
		return nil, nil
	}

	fn, ok := b.guards[name]
	if !ok {
		return nil, &ErrUnknownGuard{Path: path, Guard: name}
	}

	return fn, nil
}

func join(path, id string) string {
	if path == "" {
		return id
	}

	return path + "." + id
}
