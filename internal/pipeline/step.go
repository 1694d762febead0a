// Package pipeline runs the ordered initialization steps that populate a
// registry outside of a host environment.
//
// Every step has two code paths. The host-absent path does the real
// discovery and registration work. The host-present path is a no-op for
// all built-in steps except ProfileStep. Dispatch selects the path from a
// HostPredicate evaluated per step.
package pipeline

import (
	"context"
	"fmt"

	"github.com/mdsdtools/standalone/internal/registry"
)

// Step is one unit of initialization work.
type Step interface {
	// WithoutHost performs the step when no host environment is present.
	WithoutHost(ctx context.Context, reg *registry.Registry) error

	// WithHost performs the step inside a host environment.
	WithHost(ctx context.Context, reg *registry.Registry) error
}

// Named is implemented by steps that report a name for logging.
type Named interface {
	Name() string
}

// HostPredicate reports whether a host environment is present.
type HostPredicate func() bool

// NoHost is the HostPredicate of a standalone process.
func NoHost() bool { return false }

// Dispatch runs the code path of step selected by hostPresent.
func Dispatch(ctx context.Context, step Step, hostPresent bool, reg *registry.Registry) error {
	if hostPresent {
		return step.WithHost(ctx, reg)
	}
	return step.WithoutHost(ctx, reg)
}

// StepName returns the name of step, falling back to its type.
func StepName(step Step) string {
	if n, ok := step.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", step)
}

// FuncStep adapts functions to a Step. A nil function is a no-op.
type FuncStep struct {
	StepName string
	Absent   func(ctx context.Context, reg *registry.Registry) error
	Present  func(ctx context.Context, reg *registry.Registry) error
}

// Name implements Named.
func (f FuncStep) Name() string {
	if f.StepName == "" {
		return "func"
	}
	return f.StepName
}

// WithoutHost implements Step.
func (f FuncStep) WithoutHost(ctx context.Context, reg *registry.Registry) error {
	if f.Absent == nil {
		return nil
	}
	return f.Absent(ctx, reg)
}

// WithHost implements Step.
func (f FuncStep) WithHost(ctx context.Context, reg *registry.Registry) error {
	if f.Present == nil {
		return nil
	}
	return f.Present(ctx, reg)
}
