package see

// Project is the read-only symbol index a class belongs to.
type Project interface {
	// NamespaceAllClasses returns the classes of ns and its sub-namespaces,
	// keyed by fully-qualified name.
	NamespaceAllClasses(ns string) map[string]Class
	// Class returns the class with the given fully-qualified name, or nil.
	Class(name string) Class
}

// Class is a reflected class. Name is the fully-qualified name without a
// leading separator, e.g. `App\Models\User`.
type Class interface {
	Name() string
	ShortName() string
	Namespace() string
	Aliases() map[string]string
	Method(name string) Method
	ParentMethod(name string) Method
	Project() Project
}

// Method is a method declared on a class.
type Method interface {
	Name() string
	Class() Class
}

// RenderContext is passed through untouched to the PathGenerator.
type RenderContext map[string]any

// PathGenerator builds link targets for class and method pages.
type PathGenerator interface {
	PathForClass(ctx RenderContext, c Class) string
	PathForMethod(ctx RenderContext, m Method) string
}

// FunctionRegistry reports whether a global function exists in the host
// environment.
type FunctionRegistry interface {
	Exists(name string) bool
}

// NamespaceSeparator separates namespace segments in fully-qualified names.
const NamespaceSeparator = `\`
