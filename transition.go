package hfsm

// Transition is a guarded edge between two state ids of one machine.
type Transition[S comparable] interface {
	From() S
	To() S
	// Init is called once when the transition is registered with a machine.
	Init(parent Machine[S])
	ShouldTransition() bool
}

// Edge is the stock Transition implementation.
type Edge[S comparable] struct {
	from   S
	to     S
	guard  GuardFunc
	parent Machine[S]
}

// NewTransition returns an edge from -> to taken when guard passes.
func NewTransition[S comparable](from, to S, guard GuardFunc) *Edge[S] {
	return &Edge[S]{from: from, to: to, guard: guard}
}

// NewAnyTransition returns an edge to `to` for use with AddAnyTransition and
// AddAnyEventTransitions. Its source is the zero id and is never consulted.
func NewAnyTransition[S comparable](to S, guard GuardFunc) *Edge[S] {
	return &Edge[S]{to: to, guard: guard}
}

func (e *Edge[S]) From() S { return e.from }

func (e *Edge[S]) To() S { return e.to }

// Init records the machine the edge was registered with.
func (e *Edge[S]) Init(parent Machine[S]) { e.parent = parent }

// Parent returns the machine passed to Init, or nil.
func (e *Edge[S]) Parent() Machine[S] { return e.parent }

// Guarded reports whether the edge carries a guard.
func (e *Edge[S]) Guarded() bool { return e.guard != nil }

func (e *Edge[S]) ShouldTransition() bool { return e.guard == nil || e.guard() }
