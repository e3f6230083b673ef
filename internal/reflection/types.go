package reflection

// Dump is the on-disk form of a reflected project, as produced by the
// documentation generator's parsing stage.
type Dump struct {
	Classes []ClassDump `json:"classes" yaml:"classes"`
}

// ClassDump describes one class. Name is fully-qualified; a leading
// backslash is accepted and dropped.
type ClassDump struct {
	Name        string            `json:"name" yaml:"name"`
	Parent      string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Aliases     map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"` // local alias → fully-qualified name
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Methods     []MethodDump      `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// MethodDump describes a method declared directly on a class.
type MethodDump struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
