// Package config builds hierarchical state machines from YAML layouts.
//
// A layout lists states, polled transitions, any-state transitions and event
// transitions. A state with nested states becomes a composite whose nested
// machine is described by the same structure:
//
//	name: character
//	initial: Grounded
//	states:
//	  - id: Grounded
//	    initial: Idle
//	    states:
//	      - id: Idle
//	      - id: Walk
//	    transitions:
//	      - {from: Idle, to: Walk, guard: moving}
//	      - {from: Walk, to: Idle, event: stop}
//	  - id: Airborne
//	transitions:
//	  - {from: Grounded, to: Airborne, event: jump}
//	any:
//	  - {to: Grounded, event: land}
//
// Guards are referenced by name and resolved against a Guards table at build
// time.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the root of a layout file.
type Definition struct {
	Name   string `yaml:"name,omitempty"`
	Layout `yaml:",inline"`
}

// Layout describes one machine level.
type Layout struct {
	Initial     string             `yaml:"initial,omitempty"`
	States      []StateConfig      `yaml:"states"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
	Any         []TransitionConfig `yaml:"any,omitempty"`
}

// StateConfig is a state. It is a composite when it lists states of its own.
type StateConfig struct {
	ID     string `yaml:"id"`
	Layout `yaml:",inline"`
}

// Composite reports whether the state owns a nested machine.
func (s StateConfig) Composite() bool { return len(s.States) > 0 }

// TransitionConfig is one edge. An empty Event makes it a polled transition,
// an empty Guard makes it unconditional. From is ignored for any-state
// transitions.
type TransitionConfig struct {
	From  string `yaml:"from,omitempty"`
	To    string `yaml:"to"`
	Event string `yaml:"event,omitempty"`
	Guard string `yaml:"guard,omitempty"`
}

// Load decodes a layout. Unknown fields are rejected.
func Load(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Definition
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("config: decode layout: %w", err)
	}

	return &d, nil
}

// LoadFile decodes the layout stored at path.
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Load(f)
}
