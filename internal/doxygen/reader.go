// Package doxygen reads a Doxygen XML export into the C++ entity model.
//
// The input directory holds one index.xml enumerating all compounds plus one
// detail file per compound at <refid>.xml. Only the index is load-bearing: a
// malformed compound or member is skipped with a diagnostic, a missing index
// is fatal.
package doxygen

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doxybind/doxybind/internal/cppmodel"
	"github.com/doxybind/doxybind/pkg/diag"
)

// Read parses the XML directory and returns the populated namespace tree.
func Read(dir string, diags *diag.Collector) (*cppmodel.Namespace, error) {
	data, err := os.ReadFile(filepath.Join(dir, "index.xml"))
	if err != nil {
		return nil, fmt.Errorf("read doxygen index: %w", err)
	}
	var idx indexDoc
	if err := xml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse doxygen index: %w", err)
	}

	root := cppmodel.NewNamespace("")
	for _, comp := range idx.Compounds {
		switch comp.Kind {
		case "class", "struct", "namespace":
		default:
			continue
		}

		// The namespace path of a class excludes its own name; a namespace
		// compound is itself part of the path.
		parts := strings.Split(comp.Name, "::")
		if comp.Kind != "namespace" {
			parts = parts[:len(parts)-1]
		}
		ns := root
		for _, p := range parts {
			ns = ns.EnsureNamespace(p)
		}

		detail := filepath.Join(dir, comp.RefID+".xml")
		if comp.Kind == "namespace" {
			funcs, err := parseNamespaceFile(detail, diags)
			if err != nil {
				diags.Warnf("skipping namespace compound %s: %v", comp.Name, err)
				continue
			}
			for _, f := range funcs {
				f.Parent = ns
				ns.AddFunction(f, diags)
			}
			continue
		}

		classes, err := parseClassFile(detail, diags)
		if err != nil {
			diags.Warnf("skipping class compound %s: %v", comp.Name, err)
			continue
		}
		for _, c := range classes {
			c.Parent = ns
			ns.AddClass(c, diags)
		}
	}
	return root, nil
}

// parseClassFile extracts every class/struct compound from one detail file.
// Only members inside public (instance or static) function sections are
// consumed.
func parseClassFile(path string, diags *diag.Collector) ([]*cppmodel.Class, error) {
	doc, err := loadCompoundDoc(path)
	if err != nil {
		return nil, err
	}

	var classes []*cppmodel.Class
	for _, compound := range doc.Compounds {
		if compound.Kind != "class" && compound.Kind != "struct" {
			continue
		}

		name := compound.Name
		if i := strings.LastIndex(name, "::"); i >= 0 {
			name = name[i+2:]
		}
		c := &cppmodel.Class{
			Name:           name,
			TemplateParams: parseTemplateParams(compound.Templates),
			Brief:          compound.Brief.trimmed(),
			Detailed:       compound.Detailed.trimmed(),
		}

		// Doxygen pins the compound location to the file of first use, which
		// is often a forward declaration. The member locations are
		// authoritative; the compound attribute is only the fallback.
		var locations []string
		seen := map[string]bool{}

		for _, section := range compound.Sections {
			if section.Kind != "public-func" && section.Kind != "public-static-func" {
				continue
			}
			for _, member := range section.Members {
				if member.Kind != "function" {
					diags.Warnf("member %q in section %q of %s is not a function", member.Name, section.Kind, compound.Name)
					continue
				}
				fn, err := parseFunction(member)
				if err != nil {
					diags.Warnf("skipping member of %s: %v", compound.Name, err)
					continue
				}
				fn.Parent = c
				if !seen[fn.Location] {
					seen[fn.Location] = true
					locations = append(locations, fn.Location)
				}
				c.AddFunction(fn, diags)
			}
		}

		switch {
		case len(locations) == 0:
			if compound.Location != nil {
				c.Location = compound.Location.File
			}
		default:
			if len(locations) > 1 {
				diags.Warnf("multiple locations for class %s: %v", name, locations)
			}
			c.Location = locations[0]
		}

		classes = append(classes, c)
	}

	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

// parseNamespaceFile extracts the free functions of a namespace compound.
// Namespace compounds contribute no classes.
func parseNamespaceFile(path string, diags *diag.Collector) ([]*cppmodel.Function, error) {
	doc, err := loadCompoundDoc(path)
	if err != nil {
		return nil, err
	}

	var funcs []*cppmodel.Function
	for _, compound := range doc.Compounds {
		if compound.Kind != "namespace" {
			continue
		}
		for _, section := range compound.Sections {
			if section.Kind != "func" {
				continue
			}
			for _, member := range section.Members {
				if member.Kind != "function" {
					diags.Warnf("member %q in section %q of %s is not a function", member.Name, section.Kind, compound.Name)
					continue
				}
				fn, err := parseFunction(member)
				if err != nil {
					diags.Warnf("skipping member of %s: %v", compound.Name, err)
					continue
				}
				funcs = append(funcs, fn)
			}
		}
	}

	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Name < funcs[j].Name })
	return funcs, nil
}

func parseFunction(member memberDef) (*cppmodel.Function, error) {
	if member.Name == "" {
		return nil, fmt.Errorf("function member without a name")
	}

	fn := &cppmodel.Function{
		Name:           member.Name,
		ReturnType:     string(member.Type),
		TemplateParams: parseTemplateParams(member.Templates),
		Protection:     member.Prot,
		Static:         member.Static == "yes",
		Const:          member.Const == "yes",
		Virtual:        member.Virt == "virtual",
		Brief:          member.Brief.trimmed(),
		Detailed:       member.Detailed.trimmed(),
	}
	if member.Location != nil {
		fn.Location = member.Location.File
	}

	for _, p := range member.Params {
		fn.Params = append(fn.Params, cppmodel.Parameter{
			Type:    p.Type.trimmed(),
			Name:    p.DeclName,
			Default: p.DefVal.trimmed(),
		})
	}
	return fn, nil
}

// parseTemplateParams returns nil when no template parameter list is present;
// presence, even empty, marks the entity as a template.
func parseTemplateParams(list *templateParamList) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list.Params))
	for _, p := range list.Params {
		s := p.Type.trimmed()
		if p.DeclName != "" {
			s += " " + p.DeclName
		}
		out = append(out, s)
	}
	return out
}

func loadCompoundDoc(path string) (*compoundDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc compoundDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &doc, nil
}
