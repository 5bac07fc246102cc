package sanitize

// Allowlist is the ordered set of parameter names a tool accepts.
// It is immutable once built.
type Allowlist struct {
	names []string
	index map[string]struct{}
}

// NewAllowlist builds an allowlist in the given order. Repeated names keep their first position.
func NewAllowlist(names ...string) *Allowlist {
	a := &Allowlist{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		if _, seen := a.index[name]; seen {
			continue
		}
		a.index[name] = struct{}{}
		a.names = append(a.names, name)
	}
	return a
}

// Contains reports whether name is an accepted parameter.
func (a *Allowlist) Contains(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.index[name]
	return ok
}

// Names returns a copy of the parameter names in declaration order.
func (a *Allowlist) Names() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Len returns the number of accepted parameters.
func (a *Allowlist) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}
