package see

// Kind identifies what a reference token resolved to.
type Kind int

const (
	Unresolved Kind = iota
	ClassRef
	MethodRef
	ExternalRef
)

func (k Kind) String() string {
	switch k {
	case ClassRef:
		return "class"
	case MethodRef:
		return "method"
	case ExternalRef:
		return "external"
	default:
		return "unresolved"
	}
}

// Reference is the outcome of resolving one reference token. Exactly one of
// Class, Method or URL is set, matching Kind.
type Reference struct {
	Kind   Kind
	Token  string // the reference as written
	Class  Class
	Method Method
	URL    string
}

func classRef(token string, c Class) Reference {
	if c == nil {
		return unresolved(token)
	}
	return Reference{Kind: ClassRef, Token: token, Class: c}
}

func methodRef(token string, m Method) Reference {
	if m == nil {
		return unresolved(token)
	}
	return Reference{Kind: MethodRef, Token: token, Method: m}
}

func externalRef(token, url string) Reference {
	return Reference{Kind: ExternalRef, Token: token, URL: url}
}

func unresolved(token string) Reference {
	return Reference{Kind: Unresolved, Token: token}
}
