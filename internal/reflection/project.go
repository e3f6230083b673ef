package reflection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jcdickinson/seedoc/internal/see"
)

// Project is an immutable, in-memory class index. It is safe for concurrent
// reads once built.
type Project struct {
	classes     map[string]*Class
	byNamespace map[string]map[string]see.Class
}

// Class is a reflected class.
type Class struct {
	name        string
	parent      string
	aliases     map[string]string
	description string
	methods     map[string]*Method
	order       []string
	project     *Project
}

// Method is a method declared on a Class.
type Method struct {
	name        string
	description string
	class       *Class
}

// New builds a Project from a dump. Class names must be unique.
func New(dump *Dump) (*Project, error) {
	p := &Project{
		classes:     make(map[string]*Class, len(dump.Classes)),
		byNamespace: make(map[string]map[string]see.Class),
	}

	for _, cd := range dump.Classes {
		name := normalize(cd.Name)
		if name == "" {
			return nil, fmt.Errorf("class with empty name")
		}
		if _, dup := p.classes[name]; dup {
			return nil, fmt.Errorf("duplicate class %s", name)
		}

		c := &Class{
			name:        name,
			parent:      normalize(cd.Parent),
			aliases:     make(map[string]string, len(cd.Aliases)),
			description: cd.Description,
			methods:     make(map[string]*Method, len(cd.Methods)),
			project:     p,
		}
		for alias, target := range cd.Aliases {
			c.aliases[alias] = normalize(target)
		}
		for _, md := range cd.Methods {
			if md.Name == "" {
				return nil, fmt.Errorf("class %s: method with empty name", name)
			}
			if _, dup := c.methods[md.Name]; dup {
				return nil, fmt.Errorf("class %s: duplicate method %s", name, md.Name)
			}
			c.methods[md.Name] = &Method{name: md.Name, description: md.Description, class: c}
			c.order = append(c.order, md.Name)
		}
		p.classes[name] = c

		// index under the class's namespace and every enclosing one
		ns := c.Namespace()
		for {
			set, ok := p.byNamespace[ns]
			if !ok {
				set = make(map[string]see.Class)
				p.byNamespace[ns] = set
			}
			set[name] = c
			if ns == "" {
				break
			}
			ns = parentNamespace(ns)
		}
	}

	return p, nil
}

func normalize(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), see.NamespaceSeparator)
}

func parentNamespace(ns string) string {
	if i := strings.LastIndex(ns, see.NamespaceSeparator); i >= 0 {
		return ns[:i]
	}
	return ""
}

// NamespaceAllClasses returns the classes in ns and its sub-namespaces. The
// empty namespace holds every class. The returned map must not be modified.
func (p *Project) NamespaceAllClasses(ns string) map[string]see.Class {
	return p.byNamespace[normalize(ns)]
}

// Class returns the named class, or nil.
func (p *Project) Class(name string) see.Class {
	if c, ok := p.classes[normalize(name)]; ok {
		return c
	}
	return nil
}

// Lookup returns the concrete class for name.
func (p *Project) Lookup(name string) (*Class, bool) {
	c, ok := p.classes[normalize(name)]
	return c, ok
}

// Classes returns every class sorted by name.
func (p *Project) Classes() []*Class {
	out := make([]*Class, 0, len(p.classes))
	for _, c := range p.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Dump converts the project back to its on-disk form.
func (p *Project) Dump() *Dump {
	d := &Dump{}
	for _, c := range p.Classes() {
		cd := ClassDump{
			Name:        c.name,
			Parent:      c.parent,
			Description: c.description,
		}
		if len(c.aliases) > 0 {
			cd.Aliases = make(map[string]string, len(c.aliases))
			for k, v := range c.aliases {
				cd.Aliases[k] = v
			}
		}
		for _, m := range c.Methods() {
			cd.Methods = append(cd.Methods, MethodDump{Name: m.name, Description: m.description})
		}
		d.Classes = append(d.Classes, cd)
	}
	return d
}

func (c *Class) Name() string { return c.name }

func (c *Class) ShortName() string {
	if i := strings.LastIndex(c.name, see.NamespaceSeparator); i >= 0 {
		return c.name[i+1:]
	}
	return c.name
}

func (c *Class) Namespace() string {
	return parentNamespace(c.name)
}

func (c *Class) Aliases() map[string]string { return c.aliases }

func (c *Class) Description() string { return c.description }

func (c *Class) Project() see.Project { return c.project }

// ParentName returns the declared parent class name, which may lie outside
// the project.
func (c *Class) ParentName() string { return c.parent }

// Parent returns the parent class if it is part of the project.
func (c *Class) Parent() (*Class, bool) {
	if c.parent == "" {
		return nil, false
	}
	p, ok := c.project.classes[c.parent]
	return p, ok
}

// Method returns a method declared directly on c, or nil.
func (c *Class) Method(name string) see.Method {
	if m, ok := c.methods[name]; ok {
		return m
	}
	return nil
}

// ParentMethod returns the method from the nearest ancestor declaring name,
// or nil. Inheritance cycles in malformed dumps end the walk.
func (c *Class) ParentMethod(name string) see.Method {
	seen := map[string]bool{c.name: true}
	for p, ok := c.Parent(); ok && !seen[p.name]; p, ok = p.Parent() {
		if m, found := p.methods[name]; found {
			return m
		}
		seen[p.name] = true
	}
	return nil
}

// Methods returns the declared methods in declaration order.
func (c *Class) Methods() []*Method {
	out := make([]*Method, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.methods[name])
	}
	return out
}

func (c *Class) String() string { return c.name }

func (m *Method) Name() string { return m.name }

func (m *Method) Class() see.Class { return m.class }

func (m *Method) Description() string { return m.description }

func (m *Method) String() string { return m.class.name + "::" + m.name }
