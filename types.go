package hfsm

import (
	"log/slog"

	"github.com/enetx/g"
)

type (
	// GuardFunc decides whether a transition may fire. A nil guard always passes.
	// Guards must not mutate the machine they are attached to.
	GuardFunc func() bool

	// TransitionHook is called when a machine leaves one state for another.
	// It runs after the old state's exit and before the new state's enter.
	TransitionHook[S comparable] func(from, to S)

	// bundle pairs a registered state with its outgoing transitions. A bundle
	// without a state exists when transitions were added before the state.
	bundle[S comparable] struct {
		state       Node[S]
		transitions g.Slice[Transition[S]]
	}

	// eventEdge records one event transition for rendering.
	eventEdge[S comparable] struct {
		event      any
		transition Transition[S]
		wildcard   bool
	}
)

// Logger is the logger used by machines constructed without WithLogger.
var Logger = slog.Default()

// Option configures a StateMachine.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithName names the machine in log records, errors and DOT output.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger for the machine. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: Logger}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
