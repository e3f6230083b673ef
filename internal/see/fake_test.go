package see

import "strings"

// fakeProject is a minimal in-memory Project for resolver tests.
type fakeProject struct {
	classes map[string]*fakeClass
}

type fakeClass struct {
	name    string
	parent  string
	aliases map[string]string
	methods map[string]*fakeMethod
	project *fakeProject
}

type fakeMethod struct {
	name  string
	class *fakeClass
}

func newFakeProject() *fakeProject {
	return &fakeProject{classes: make(map[string]*fakeClass)}
}

func (p *fakeProject) add(name, parent string, methods ...string) *fakeClass {
	c := &fakeClass{
		name:    name,
		parent:  parent,
		aliases: make(map[string]string),
		methods: make(map[string]*fakeMethod),
		project: p,
	}
	for _, m := range methods {
		c.methods[m] = &fakeMethod{name: m, class: c}
	}
	p.classes[name] = c
	return c
}

func (p *fakeProject) NamespaceAllClasses(ns string) map[string]Class {
	out := make(map[string]Class)
	for name, c := range p.classes {
		if ns == "" || c.Namespace() == ns || strings.HasPrefix(c.Namespace(), ns+`\`) {
			out[name] = c
		}
	}
	return out
}

func (p *fakeProject) Class(name string) Class {
	if c, ok := p.classes[name]; ok {
		return c
	}
	return nil
}

func (c *fakeClass) Name() string { return c.name }

func (c *fakeClass) ShortName() string {
	if i := strings.LastIndex(c.name, `\`); i >= 0 {
		return c.name[i+1:]
	}
	return c.name
}

func (c *fakeClass) Namespace() string {
	if i := strings.LastIndex(c.name, `\`); i >= 0 {
		return c.name[:i]
	}
	return ""
}

func (c *fakeClass) Aliases() map[string]string { return c.aliases }

func (c *fakeClass) Method(name string) Method {
	if m, ok := c.methods[name]; ok {
		return m
	}
	return nil
}

func (c *fakeClass) ParentMethod(name string) Method {
	for p := c.project.classes[c.parent]; p != nil; p = c.project.classes[p.parent] {
		if m, ok := p.methods[name]; ok {
			return m
		}
	}
	return nil
}

func (c *fakeClass) Project() Project { return c.project }

func (m *fakeMethod) Name() string { return m.name }
func (m *fakeMethod) Class() Class { return m.class }

type fakeFunctions map[string]bool

func (f fakeFunctions) Exists(name string) bool { return f[name] }

// fakePaths renders /path/to/<Short> and /path/to/<Short>#<method>.
type fakePaths struct{}

func (fakePaths) PathForClass(_ RenderContext, c Class) string {
	return "/path/to/" + c.ShortName()
}

func (fakePaths) PathForMethod(_ RenderContext, m Method) string {
	return "/path/to/" + m.Class().ShortName() + "#" + m.Name()
}

// sampleProject builds the fixture shared by the resolver and rewriter tests.
func sampleProject() (*fakeProject, *fakeClass) {
	p := newFakeProject()
	p.add(`App\Base`, "", "bar", "boot")
	p.add(`App\Middle`, `App\Base`, "boot")
	child := p.add(`App\Child`, `App\Middle`, "own")
	p.add(`App\Foo`, "", "bar")
	p.add(`App\Sub\Deep`, "", "dig")
	p.add(`App\Models\Foo`, "", "save")
	p.add(`Vendor\Lib\Client`, "", "send")
	p.add(`Globals`, "")
	child.aliases["Model"] = `App\Models\Foo`
	child.aliases["Client"] = `\Vendor\Lib\Client`
	child.aliases["Gone"] = `Vendor\Missing`
	return p, child
}
