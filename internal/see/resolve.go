package see

import "strings"

// DefaultFunctionDocsBase is where global functions are linked when the
// resolver has no other base configured.
const DefaultFunctionDocsBase = "//php.net/"

// Resolver maps reference tokens to classes, methods or external URLs.
type Resolver struct {
	Functions        FunctionRegistry // may be nil
	FunctionDocsBase string
}

// NewResolver returns a Resolver that links known global functions under
// docsBase. An empty docsBase falls back to DefaultFunctionDocsBase.
func NewResolver(functions FunctionRegistry, docsBase string) *Resolver {
	if docsBase == "" {
		docsBase = DefaultFunctionDocsBase
	}
	return &Resolver{Functions: functions, FunctionDocsBase: docsBase}
}

// Resolve resolves token in the scope of current. The first matching rule
// wins: URL, Class::method, method or function, then class.
func (r *Resolver) Resolve(token string, current Class) Reference {
	if strings.HasPrefix(token, "http:") || strings.HasPrefix(token, "https:") {
		return externalRef(token, token)
	}
	if current == nil || token == "" {
		return unresolved(token)
	}

	if strings.Contains(token, "::") {
		// Only Class::method is meaningful; segments after a second "::" are dropped.
		parts := strings.Split(token, "::")
		clsName, methodName := parts[0], trimCallParens(parts[1])
		if clsName == "" || methodName == "" {
			return unresolved(token)
		}
		cls := r.resolveClass(clsName, current)
		if cls == nil {
			return unresolved(token)
		}
		return methodRef(token, cls.Method(methodName))
	}

	if ref, ok := r.resolveFunction(token, current); ok {
		return ref
	}

	return classRef(token, r.resolveClass(token, current))
}

// resolveFunction probes the current class, its ancestors and finally the
// host's global functions.
func (r *Resolver) resolveFunction(token string, current Class) (Reference, bool) {
	name := trimCallParens(token)
	if name == "" {
		return Reference{}, false
	}

	if m := current.Method(name); m != nil {
		return methodRef(token, m), true
	}
	if m := current.ParentMethod(name); m != nil {
		return methodRef(token, m), true
	}
	// \strlen names the same global function as strlen
	if fn := strings.TrimPrefix(name, NamespaceSeparator); r.Functions != nil && fn != "" && r.Functions.Exists(fn) {
		return externalRef(token, r.FunctionDocsBase+fn), true
	}
	return Reference{}, false
}

// resolveClass looks name up as a fully-qualified name, an import alias and
// a class in the current namespace, in that order. Returns nil on a miss.
func (r *Resolver) resolveClass(name string, current Class) Class {
	project := current.Project()
	if project == nil {
		return nil
	}

	if strings.HasPrefix(name, NamespaceSeparator) {
		pos := strings.LastIndex(name, NamespaceSeparator)
		var ns string
		if pos > 0 {
			ns = name[1:pos]
		}
		fqn := qualify(ns, name[pos+1:])
		if c, ok := project.NamespaceAllClasses(ns)[fqn]; ok && c != nil {
			return c
		}
	}

	if target, ok := current.Aliases()[name]; ok {
		return project.Class(strings.TrimPrefix(target, NamespaceSeparator))
	}

	ns := current.Namespace()
	if c, ok := project.NamespaceAllClasses(ns)[qualify(ns, name)]; ok && c != nil {
		return c
	}
	return nil
}

func qualify(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + NamespaceSeparator + name
}

func trimCallParens(name string) string {
	return strings.TrimSuffix(name, "()")
}
