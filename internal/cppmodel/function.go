package cppmodel

import "strings"

// Owner is the declared-in scope of a function: a Class or a Namespace.
type Owner interface {
	QualifiedName() string
}

// Function is a C++ member function or free function.
// TemplateParams is nil for non-template functions; a non-nil (even empty)
// slice marks the function as a template, which switches emission to the
// header-only form.
type Function struct {
	Name           string
	ReturnType     string
	Parent         Owner
	TemplateParams []string

	Protection string
	Static     bool
	Const      bool
	Virtual    bool

	Params []Parameter

	Brief    string
	Detailed string

	Location string
}

func (f *Function) IsTemplate() bool {
	return f.TemplateParams != nil
}

// QualifiedName returns the fully qualified name, e.g. "::demo::tree::Tree::name".
func (f *Function) QualifiedName() string {
	return f.Parent.QualifiedName() + "::" + f.Name
}

// Signature renders the canonical signature used as the identity key for
// overload deduplication and docstring lookup. With qualified set, the name
// is fully qualified.
func (f *Function) Signature(qualified bool) string {
	var b strings.Builder
	if f.Static {
		b.WriteString("static ")
	}
	if f.ReturnType != "" {
		b.WriteString(f.ReturnType + " ")
	}
	if qualified {
		b.WriteString(f.Parent.QualifiedName() + "::")
	}
	b.WriteString(f.Name)
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Signature()
	}
	b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	if f.Const {
		b.WriteString(" const")
	}
	return b.String()
}

// MemberRole is the classification of a member function within its class,
// decided once at construction time.
type MemberRole int

const (
	RoleMethod MemberRole = iota
	RoleConstructor
	RoleDestructor
	RoleOperator
	// RoleAmbiguous marks a name that matches more than one classification
	// rule. There is no disambiguation for such names; callers must surface
	// them instead of guessing.
	RoleAmbiguous
)

func (r MemberRole) String() string {
	switch r {
	case RoleMethod:
		return "method"
	case RoleConstructor:
		return "constructor"
	case RoleDestructor:
		return "destructor"
	case RoleOperator:
		return "operator"
	}
	return "ambiguous"
}

// ClassifyMember decides the role of a member function by name.
func ClassifyMember(className, name string) MemberRole {
	matches := 0
	role := RoleMethod
	if name == className {
		matches++
		role = RoleConstructor
	}
	if name == "~"+className {
		matches++
		role = RoleDestructor
	}
	if strings.HasPrefix(name, "operator") {
		matches++
		role = RoleOperator
	}
	if matches > 1 {
		return RoleAmbiguous
	}
	return role
}
