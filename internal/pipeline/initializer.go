package pipeline

import (
	"context"
	"sync"

	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/registry"
)

// State is the lifecycle state of an Initializer.
type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Initializer runs steps in order, once. The first failing step aborts the
// run; registry entries made by earlier steps are kept.
type Initializer struct {
	steps []Step
	host  HostPredicate

	mu    sync.Mutex
	state State
	err   error
}

// NewInitializer creates an Initializer. A nil host means NoHost.
func NewInitializer(host HostPredicate, steps ...Step) *Initializer {
	if host == nil {
		host = NoHost
	}
	return &Initializer{steps: steps, host: host}
}

// Steps returns the steps in run order.
func (i *Initializer) Steps() []Step {
	return append([]Step(nil), i.steps...)
}

// State returns the current state.
func (i *Initializer) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Err returns the error of a failed run, or nil.
func (i *Initializer) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// Init runs every step against reg. It returns ErrAlreadyRun when called
// after the first run has started.
func (i *Initializer) Init(ctx context.Context, reg *registry.Registry) error {
	i.mu.Lock()
	if i.state != StatePending {
		i.mu.Unlock()
		return ErrAlreadyRun
	}
	i.state = StateRunning
	i.mu.Unlock()

	err := i.run(ctx, reg)

	i.mu.Lock()
	defer i.mu.Unlock()
	if err != nil {
		i.state = StateFailed
		i.err = err
		return err
	}
	i.state = StateCompleted
	return nil
}

func (i *Initializer) run(ctx context.Context, reg *registry.Registry) error {
	for idx, step := range i.steps {
		name := StepName(step)
		host := i.host()

		log := output.StepLogger(name)
		log.Debug("running step", "host", host)

		if err := Dispatch(ctx, step, host, reg); err != nil {
			log.Debug("step failed", "error", err)
			return &StepError{Index: idx, Step: name, Err: err}
		}
	}

	output.Debug("initialization completed", "steps", len(i.steps), "projects", reg.Len())
	return nil
}
