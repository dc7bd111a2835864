package cppmodel

import (
	"strings"
	"unicode"

	"github.com/doxybind/doxybind/pkg/diag"
)

// Class is a C++ class or struct with its public member functions
// partitioned by role.
type Class struct {
	Name           string
	Parent         *Namespace
	TemplateParams []string

	Constructors []*Function
	Destructors  []*Function
	Methods      []*Function
	Operators    []*Function
	Iterators    []*Iterator

	Brief    string
	Detailed string

	Location string
}

func (c *Class) IsTemplate() bool {
	return c.TemplateParams != nil
}

func (c *Class) QualifiedName() string {
	return c.Parent.QualifiedName() + "::" + c.Name
}

// AddFunction files fn into the role bucket decided by ClassifyMember.
// An ambiguous name is reported and the function is dropped rather than
// silently filed as a method.
func (c *Class) AddFunction(fn *Function, diags *diag.Collector) {
	if fn == nil {
		return
	}
	switch ClassifyMember(c.Name, fn.Name) {
	case RoleConstructor:
		c.Constructors = append(c.Constructors, fn)
	case RoleDestructor:
		c.Destructors = append(c.Destructors, fn)
	case RoleOperator:
		c.Operators = append(c.Operators, fn)
	case RoleMethod:
		c.Methods = append(c.Methods, fn)
	case RoleAmbiguous:
		diags.Warnf("class %s: member %q matches more than one role, skipping", c.Name, fn.Name)
	}
}

// AddNamedIterator records a synthesized begin/end pair under the given name.
func (c *Class) AddNamedIterator(name, begin, end string) {
	c.Iterators = append(c.Iterators, &Iterator{
		Parent: c,
		Name:   name,
		Begin:  begin,
		End:    end,
	})
}

// AddIterator records the default iteration protocol iterator.
func (c *Class) AddIterator() {
	c.AddNamedIterator(DefaultIteratorName, "begin", "end")
}

// ExtractIterators turns begin/end method pairs into Iterator entities and
// removes the source methods. A class with methods literally named "begin"
// and "end" gets one default iterator. With named mode enabled, every
// "begin<Suffix>"/"end<Suffix>" pair (and the Begin/End capitalized variant)
// is extracted as a named iterator, each distinct suffix at most once.
func (c *Class) ExtractIterators(named bool, diags *diag.Collector) {
	names := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		names[i] = m.Name
	}

	if containsString(names, "begin") && containsString(names, "end") {
		c.AddIterator()
		c.removeMethods("begin", "end")
	}

	if !named {
		return
	}

	extracted := map[string]bool{}
	for _, mn := range names {
		if !strings.HasPrefix(strings.ToLower(mn), "begin") || mn == "begin" {
			continue
		}

		var endName string
		switch {
		case strings.HasPrefix(mn, "begin"):
			endName = "end" + mn[len("begin"):]
		case strings.HasPrefix(mn, "Begin"):
			endName = "End" + mn[len("Begin"):]
		default:
			continue
		}
		if !containsString(names, endName) {
			continue
		}

		itName := iteratorName(mn[len("begin"):])
		if itName == "" {
			diags.Debugf("class %s: pair %s/%s normalizes to an empty iterator name, keeping as methods", c.Name, mn, endName)
			continue
		}
		if extracted[itName] {
			continue
		}
		extracted[itName] = true

		c.AddNamedIterator(itName, mn, endName)
		c.removeMethods(mn, endName)
	}
}

// ShortenLocationPrefix strips prefix from the locations of all member
// functions. A location that does not carry the prefix is reported and left
// unmodified.
func (c *Class) ShortenLocationPrefix(prefix string, diags *diag.Collector) {
	if prefix == "" {
		return
	}
	for _, bucket := range [][]*Function{c.Constructors, c.Destructors, c.Methods, c.Operators} {
		for _, fn := range bucket {
			if !strings.HasPrefix(fn.Location, prefix) {
				diags.Warnf("location of function %s does not start with prefix %s", fn.Signature(true), prefix)
				continue
			}
			fn.Location = fn.Location[len(prefix):]
		}
	}
}

func (c *Class) removeMethods(names ...string) {
	kept := c.Methods[:0]
	for _, m := range c.Methods {
		if containsString(names, m.Name) {
			continue
		}
		kept = append(kept, m)
	}
	c.Methods = kept
}

// iteratorName normalizes a begin/end suffix into an iterator name:
// separators are trimmed and the first rune is lower-cased, so both
// "beginBranches" and "begin_branches" yield "branches".
func iteratorName(suffix string) string {
	s := strings.Trim(suffix, "_")
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
