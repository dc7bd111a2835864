package cppmodel

// Parameter is one formal parameter of a C++ function.
// A non-empty Default marks the parameter as optional in emitted bindings.
type Parameter struct {
	Type    string
	Name    string
	Default string
}

// Signature renders the parameter as it appears in a canonical function
// signature, e.g. "int const & count=0".
func (p Parameter) Signature() string {
	s := p.Type + " " + p.Name
	if p.Default != "" {
		s += "=" + p.Default
	}
	return s
}
