package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enetx/hfsm/config"
)

const characterLayout = `
name: character
initial: Grounded
states:
  - id: Grounded
    initial: Idle
    states:
      - id: Idle
      - id: Walk
    transitions:
      - {from: Idle, to: Walk, guard: moving}
      - {from: Walk, to: Idle, event: stop}
  - id: Airborne
transitions:
  - {from: Grounded, to: Airborne, event: jump}
any:
  - {to: Grounded, event: land}
`

func load(t *testing.T, layout string) *config.Definition {
	t.Helper()

	d, err := config.Load(strings.NewReader(layout))
	require.NoError(t, err)

	return d
}

func TestLoad_DecodesNestedLayout(t *testing.T) {
	t.Parallel()

	d := load(t, characterLayout)

	assert.Equal(t, "character", d.Name)
	assert.Equal(t, "Grounded", d.Initial)
	require.Len(t, d.States, 2)

	grounded := d.States[0]
	assert.True(t, grounded.Composite())
	assert.Equal(t, "Idle", grounded.Initial)
	require.Len(t, grounded.Transitions, 2)
	assert.Equal(t, config.TransitionConfig{From: "Idle", To: "Walk", Guard: "moving"}, grounded.Transitions[0])
	assert.False(t, d.States[1].Composite())

	require.Len(t, d.Any, 1)
	assert.Equal(t, "land", d.Any[0].Event)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := config.Load(strings.NewReader("states:\n  - id: A\n    color: red\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(characterLayout), 0o600))

	d, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "character", d.Name)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild_RunsLayout(t *testing.T) {
	t.Parallel()

	moving := false
	res, err := load(t, characterLayout).Build(config.Guards{"moving": func() bool { return moving }})
	require.NoError(t, err)

	m := res.Machine
	assert.Equal(t, "character", m.Name())
	require.NoError(t, m.EnterState())
	assert.Equal(t, "Grounded", m.ActiveStateID())

	grounded := res.State("Grounded")
	require.True(t, grounded.IsSome())

	idle := res.State("Grounded.Idle")
	require.True(t, idle.IsSome())

	walks := 0
	res.State("Grounded.Walk").Some().OnEnter.Add(func() { walks++ })

	require.NoError(t, m.UpdateState())
	assert.Equal(t, 0, walks)

	moving = true
	require.NoError(t, m.UpdateState())
	assert.Equal(t, 1, walks)
	assert.Equal(t, "Grounded", m.ActiveStateID())

	// "stop" is only known to the nested machine.
	require.NoError(t, m.Trigger("stop"))
	assert.Equal(t, "Grounded", m.ActiveStateID())

	require.NoError(t, m.Trigger("jump"))
	assert.Equal(t, "Airborne", m.ActiveStateID())
	assert.Equal(t, "Grounded", m.PreviousStateID())

	require.NoError(t, m.Trigger("land"))
	assert.Equal(t, "Grounded", m.ActiveStateID())
}

func TestBuild_NestedEventBubbles(t *testing.T) {
	t.Parallel()

	res, err := load(t, characterLayout).Build(config.Guards{"moving": func() bool { return true }})
	require.NoError(t, err)

	m := res.Machine
	require.NoError(t, m.EnterState())
	require.NoError(t, m.UpdateState())

	idles := 0
	res.State("Grounded.Idle").Some().OnEnter.Add(func() { idles++ })

	require.NoError(t, m.Trigger("stop"))
	assert.Equal(t, 1, idles)
	assert.Equal(t, "Grounded", m.ActiveStateID())
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unknown guard",
			layout: "states:\n  - id: A\n  - id: B\ntransitions:\n  - {from: A, to: B, guard: ready}\n",
			check: func(t *testing.T, err error) {
				var target *config.ErrUnknownGuard
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "ready", target.Guard)
			},
		},
		{
			name:   "duplicate state",
			layout: "states:\n  - id: A\n    states:\n      - id: X\n      - id: X\n",
			check: func(t *testing.T, err error) {
				var target *config.ErrDuplicateState
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "A.X", target.Path)
			},
		},
		{
			name:   "unknown transition target",
			layout: "states:\n  - id: A\ntransitions:\n  - {from: A, to: B}\n",
			check: func(t *testing.T, err error) {
				var target *config.ErrUnknownState
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "B", target.State)
			},
		},
		{
			name:   "unknown any target",
			layout: "states:\n  - id: A\nany:\n  - {to: C, event: go}\n",
			check: func(t *testing.T, err error) {
				var target *config.ErrUnknownState
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "C", target.State)
			},
		},
		{
			name:   "unknown initial",
			layout: "initial: Z\nstates:\n  - id: A\n",
			check: func(t *testing.T, err error) {
				var target *config.ErrUnknownState
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "Z", target.State)
				assert.Contains(t, err.Error(), "root")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := load(t, tt.layout).Build(nil)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestBuild_ToDOT(t *testing.T) {
	t.Parallel()

	res, err := load(t, characterLayout).Build(config.Guards{"moving": func() bool { return false }})
	require.NoError(t, err)
	require.NoError(t, res.Machine.EnterState())

	dot := res.Machine.ToDOT().Std()

	assert.Contains(t, dot, `subgraph "cluster_Grounded"`)
	assert.Contains(t, dot, `"Grounded/Idle" -> "Grounded/Walk"`)
	assert.Contains(t, dot, `"Grounded" -> "Airborne" [label=" jump "];`)
	assert.Contains(t, dot, `"__any" -> "Grounded" [label=" land "];`)
}
