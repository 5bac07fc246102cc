package sanitize

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrIntrospection matches every IntrospectionError.
var ErrIntrospection = errors.New("tool parameters cannot be determined")

// IntrospectionError reports a tool whose parameter names could not be derived.
type IntrospectionError struct {
	// Tool is the registration name.
	Tool string
	// Err is the descriptor failure.
	Err error
}

func (e *IntrospectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("tool %s: %s", e.Tool, ErrIntrospection)
	}
	return fmt.Sprintf("tool %s: %s: %v", e.Tool, ErrIntrospection, e.Err)
}

// Unwrap returns the descriptor failure.
func (e *IntrospectionError) Unwrap() error {
	return e.Err
}

// Is matches ErrIntrospection.
func (e *IntrospectionError) Is(target error) bool {
	return target == ErrIntrospection
}

// Registration binds a tool name to its parameter descriptor and caches the resolved allowlist.
type Registration struct {
	name       string
	descriptor Descriptor
	resolved   atomic.Pointer[resolution]
}

type resolution struct {
	allowlist *Allowlist
	err       error
}

// NewRegistration returns a registration for the named tool.
func NewRegistration(name string, descriptor Descriptor) *Registration {
	return &Registration{name: name, descriptor: descriptor}
}

// Name returns the tool name.
func (r *Registration) Name() string {
	return r.name
}

// Resolve returns the allowlist, introspecting the descriptor on first use.
// The outcome, failure included, is published once and never recomputed afterwards.
// Concurrent first calls may both introspect; all callers observe the first published result.
func (r *Registration) Resolve() (*Allowlist, error) {
	if cached := r.resolved.Load(); cached != nil {
		return cached.allowlist, cached.err
	}

	computed := r.introspect()
	if r.resolved.CompareAndSwap(nil, computed) {
		return computed.allowlist, computed.err
	}
	cached := r.resolved.Load()
	return cached.allowlist, cached.err
}

// Resolved reports whether the allowlist has been computed.
func (r *Registration) Resolved() bool {
	return r.resolved.Load() != nil
}

func (r *Registration) introspect() *resolution {
	if r.descriptor == nil {
		return &resolution{err: &IntrospectionError{Tool: r.name, Err: errors.New("no parameter descriptor")}}
	}
	names, err := r.descriptor.Parameters()
	if err != nil {
		return &resolution{err: &IntrospectionError{Tool: r.name, Err: err}}
	}
	return &resolution{allowlist: NewAllowlist(names...)}
}
