package config

import "fmt"

// ErrUnknownGuard is returned when a transition names a guard missing from
// the Guards table.
type ErrUnknownGuard struct {
	Path  string
	Guard string
}

func (e *ErrUnknownGuard) Error() string {
	return fmt.Sprintf("config: %s: unknown guard %q", where(e.Path), e.Guard)
}

// ErrDuplicateState is returned when two states of one level share an id.
type ErrDuplicateState struct {
	Path string
}

func (e *ErrDuplicateState) Error() string {
	return fmt.Sprintf("config: duplicate state %q", e.Path)
}

// ErrUnknownState is returned when a transition or an initial state names an
// id not declared on the same level.
type ErrUnknownState struct {
	Path  string
	State string
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("config: %s: unknown state %q", where(e.Path), e.State)
}

func where(path string) string {
	if path == "" {
		return "root"
	}

	return path
}
