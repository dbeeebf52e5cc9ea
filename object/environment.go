package object

// Environment is a name-to-value frame with a parent link, forming the
// lexical scope chain. It plays the role of the teacher's scope.Scope, with
// one deliberate difference: closures capture the *Environment pointer
// itself rather than a snapshot copy, so a later mutation of a captured
// frame (via Set) is visible through any closure that captured it.
type Environment struct {
	label     string
	variables map[string]*Value
	parent    *Environment
}

// NewEnvironment creates a frame labelled label, chained to parent (nil for
// the root environment).
func NewEnvironment(label string, parent *Environment) *Environment {
	return &Environment{
		label:     label,
		variables: make(map[string]*Value),
		parent:    parent,
	}
}

// Label returns the frame's diagnostic label (e.g. "<block>", "<call f>").
func (e *Environment) Label() string {
	return e.label
}

// Lookup walks the parent chain and returns the first binding found.
func (e *Environment) Lookup(name string) (*Value, bool) {
	if v, ok := e.variables[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Lookup(name)
	}
	return nil, false
}

// Set binds name in the current frame only. There is no search-and-update:
// assigning a name already bound in an outer frame shadows it here rather
// than mutating the outer binding (spec.md §3, Environment).
func (e *Environment) Set(name string, v *Value) {
	e.variables[name] = v
}

// Names returns the names bound directly in this frame, in no particular
// order. Used for REPL scope inspection; not part of the lookup path.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}
	return names
}
