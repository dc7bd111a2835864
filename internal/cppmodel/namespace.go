package cppmodel

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/doxybind/doxybind/pkg/diag"
)

// Namespace is a node of the C++ namespace tree. Children, classes and
// functions are kept in ordered maps so that every walk over the tree is
// sorted by key; emission depends on that for byte-identical re-runs.
type Namespace struct {
	Name   string
	Parent *Namespace

	namespaces *treemap.Map // name → *Namespace
	classes    *treemap.Map // qualified name → *Class
	functions  *treemap.Map // signature → *Function

	Brief    string
	Detailed string
}

// NewNamespace creates a namespace node. The root has the empty name and no
// parent.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:       name,
		namespaces: treemap.NewWithStringComparator(),
		classes:    treemap.NewWithStringComparator(),
		functions:  treemap.NewWithStringComparator(),
	}
}

// QualifiedName returns "" for the root and "::a::b" style names otherwise.
func (ns *Namespace) QualifiedName() string {
	if ns.Parent == nil {
		return ""
	}
	return ns.Parent.QualifiedName() + "::" + ns.Name
}

// EnsureNamespace returns the child namespace with the given name, creating
// it when missing. Re-requesting an existing name is a no-op.
func (ns *Namespace) EnsureNamespace(name string) *Namespace {
	if v, ok := ns.namespaces.Get(name); ok {
		return v.(*Namespace)
	}
	child := NewNamespace(name)
	child.Parent = ns
	ns.namespaces.Put(name, child)
	return child
}

// AddClass registers a class under its qualified name. A duplicate
// registration is reported and the first-seen class wins.
func (ns *Namespace) AddClass(c *Class, diags *diag.Collector) {
	if c == nil {
		return
	}
	key := c.QualifiedName()
	if _, ok := ns.classes.Get(key); ok {
		diags.Warnf("namespace %s already contains a class named %s", ns.Name, key)
		return
	}
	ns.classes.Put(key, c)
}

// AddFunction registers a free function under its signature. A duplicate
// registration is reported and the first-seen function wins.
func (ns *Namespace) AddFunction(f *Function, diags *diag.Collector) {
	if f == nil {
		return
	}
	key := f.Signature(true)
	if _, ok := ns.functions.Get(key); ok {
		diags.Warnf("namespace %s already contains a function named %s", ns.Name, key)
		return
	}
	ns.functions.Put(key, f)
}

// NamespaceNames returns the names of the direct child namespaces, sorted.
func (ns *Namespace) NamespaceNames() []string {
	keys := ns.namespaces.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// EachNamespace visits the direct children in name order.
func (ns *Namespace) EachNamespace(fn func(*Namespace)) {
	ns.namespaces.Each(func(_, v interface{}) { fn(v.(*Namespace)) })
}

// EachClass visits this namespace's classes in qualified-name order.
func (ns *Namespace) EachClass(fn func(*Class)) {
	ns.classes.Each(func(_, v interface{}) { fn(v.(*Class)) })
}

// EachFunction visits this namespace's free functions in signature order.
func (ns *Namespace) EachFunction(fn func(*Function)) {
	ns.functions.Each(func(_, v interface{}) { fn(v.(*Function)) })
}

// AllClasses returns this namespace's classes followed by those of all
// descendants, each level sorted.
func (ns *Namespace) AllClasses() []*Class {
	var out []*Class
	ns.EachClass(func(c *Class) { out = append(out, c) })
	ns.EachNamespace(func(child *Namespace) { out = append(out, child.AllClasses()...) })
	return out
}

// AllFunctions returns this namespace's free functions followed by those of
// all descendants, each level sorted by signature.
func (ns *Namespace) AllFunctions() []*Function {
	var out []*Function
	ns.EachFunction(func(f *Function) { out = append(out, f) })
	ns.EachNamespace(func(child *Namespace) { out = append(out, child.AllFunctions()...) })
	return out
}

// FileLocations collects the location of every class in the tree. A class
// without a location is reported.
func (ns *Namespace) FileLocations(diags *diag.Collector) []string {
	var out []string
	ns.EachClass(func(c *Class) {
		if c.Location == "" {
			diags.Warnf("class without location: %s", c.Name)
			return
		}
		out = append(out, c.Location)
	})
	ns.EachNamespace(func(child *Namespace) { out = append(out, child.FileLocations(diags)...) })
	return out
}

// LocationPrefix computes the longest common prefix of all class locations.
func (ns *Namespace) LocationPrefix(diags *diag.Collector) string {
	return commonPrefix(ns.FileLocations(diags))
}

// ShortenLocationPrefix strips prefix from every class and function location
// in the tree. With an empty prefix, the common prefix of all class locations
// is used. A location not carrying the prefix is reported and left unchanged.
func (ns *Namespace) ShortenLocationPrefix(prefix string, diags *diag.Collector) {
	if prefix == "" {
		prefix = ns.LocationPrefix(diags)
	}
	if prefix == "" {
		return
	}
	ns.shortenLocations(prefix, diags)
}

func (ns *Namespace) shortenLocations(prefix string, diags *diag.Collector) {
	ns.EachClass(func(c *Class) {
		if !strings.HasPrefix(c.Location, prefix) {
			diags.Warnf("location of class %s does not start with prefix %s", c.QualifiedName(), prefix)
			return
		}
		c.Location = c.Location[len(prefix):]
		c.ShortenLocationPrefix(prefix, diags)
	})
	ns.EachFunction(func(f *Function) {
		if !strings.HasPrefix(f.Location, prefix) {
			diags.Warnf("location of function %s does not start with prefix %s", f.Signature(true), prefix)
			return
		}
		f.Location = f.Location[len(prefix):]
	})
	ns.EachNamespace(func(child *Namespace) { child.shortenLocations(prefix, diags) })
}

// ExtractIterators runs the iterator transform over every class in the tree.
func (ns *Namespace) ExtractIterators(named bool, diags *diag.Collector) {
	ns.EachClass(func(c *Class) { c.ExtractIterators(named, diags) })
	ns.EachNamespace(func(child *Namespace) { child.ExtractIterators(named, diags) })
}

func commonPrefix(list []string) string {
	if len(list) == 0 {
		return ""
	}
	prefix := list[0]
	for _, s := range list[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
