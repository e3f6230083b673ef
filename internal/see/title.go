package see

// FormatTitle returns the link text for ref. An explicit title always wins;
// otherwise names are shortened relative to current.
func FormatTitle(ref Reference, current Class, explicit string) string {
	if explicit != "" {
		return explicit
	}

	switch ref.Kind {
	case ClassRef:
		if current != nil && ref.Class.Namespace() == current.Namespace() {
			return ref.Class.ShortName()
		}
		return ref.Class.Name()
	case MethodRef:
		owner := ref.Method.Class()
		switch {
		case current != nil && owner.Name() == current.Name():
			// method
			return ref.Method.Name()
		case current != nil && owner.Namespace() == current.Namespace():
			// Bar::method
			return owner.ShortName() + "::" + ref.Method.Name()
		default:
			// \Foo\Bar::method
			return NamespaceSeparator + owner.Name() + "::" + ref.Method.Name()
		}
	default:
		return ref.Token
	}
}
