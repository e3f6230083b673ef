package paths

import (
	"strings"

	"github.com/jcdickinson/seedoc/internal/see"
)

// PageKey is the RenderContext key holding the path of the page being
// rendered, relative to the documentation root (e.g. "App/Models/User.html").
const PageKey = "page"

// Generator builds links to class pages laid out one file per class, with
// namespaces mapped to directories.
type Generator struct {
	// BaseURL, when set, makes every link absolute instead of relative to
	// the current page.
	BaseURL string
}

func New(baseURL string) *Generator {
	return &Generator{BaseURL: baseURL}
}

// ClassPage returns the root-relative page path for a class name.
func ClassPage(name string) string {
	name = strings.TrimPrefix(name, see.NamespaceSeparator)
	return strings.ReplaceAll(name, see.NamespaceSeparator, "/") + ".html"
}

// MethodAnchor returns the fragment identifying a method on its class page.
func MethodAnchor(name string) string {
	return "method_" + name
}

func (g *Generator) PathForClass(ctx see.RenderContext, c see.Class) string {
	return g.prefix(ctx) + ClassPage(c.Name())
}

func (g *Generator) PathForMethod(ctx see.RenderContext, m see.Method) string {
	return g.PathForClass(ctx, m.Class()) + "#" + MethodAnchor(m.Name())
}

func (g *Generator) prefix(ctx see.RenderContext) string {
	if g.BaseURL != "" {
		return strings.TrimSuffix(g.BaseURL, "/") + "/"
	}
	page, _ := ctx[PageKey].(string)
	return strings.Repeat("../", Depth(page))
}

// Depth is the number of directories between page and the documentation
// root.
func Depth(page string) int {
	page = strings.TrimPrefix(page, "/")
	return strings.Count(page, "/")
}
