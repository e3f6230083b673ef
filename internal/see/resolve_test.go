package see

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	_, child := sampleProject()
	r := NewResolver(fakeFunctions{"strlen": true}, "")

	tests := []struct {
		token string
		kind  Kind
		want  string // class name, Class::method or URL
	}{
		// URLs are returned verbatim
		{"http://example.com/x", ExternalRef, "http://example.com/x"},
		{"https://example.com/Foo::bar", ExternalRef, "https://example.com/Foo::bar"},

		// Class::method
		{"Foo::bar", MethodRef, `App\Foo::bar`},
		{"Foo::bar()", MethodRef, `App\Foo::bar`},
		{"Foo::bar::baz", MethodRef, `App\Foo::bar`},
		{`\App\Models\Foo::save`, MethodRef, `App\Models\Foo::save`},
		{"Model::save", MethodRef, `App\Models\Foo::save`},
		{"Foo::missing", Unresolved, ""},
		{"Nope::bar", Unresolved, ""},
		{"::bar", Unresolved, ""},
		{"Foo::", Unresolved, ""},

		// methods on the class and its ancestors
		{"own", MethodRef, `App\Child::own`},
		{"own()", MethodRef, `App\Child::own`},
		{"boot", MethodRef, `App\Middle::boot`},
		{"bar", MethodRef, `App\Base::bar`},

		// global functions
		{"strlen", ExternalRef, "//php.net/strlen"},
		{"strlen()", ExternalRef, "//php.net/strlen"},
		{`\strlen`, ExternalRef, "//php.net/strlen"},
		{`\strlen()`, ExternalRef, "//php.net/strlen"},

		// classes
		{`\App\Models\Foo`, ClassRef, `App\Models\Foo`},
		{`\Globals`, ClassRef, "Globals"},
		{"Model", ClassRef, `App\Models\Foo`},
		{"Client", ClassRef, `Vendor\Lib\Client`},
		{"Foo", ClassRef, `App\Foo`},
		{`Sub\Deep`, ClassRef, `App\Sub\Deep`},
		{"Gone", Unresolved, ""},
		{"Unknown", Unresolved, ""},
		{`\App\Nope`, Unresolved, ""},
		{`\`, Unresolved, ""},
	}

	for _, tt := range tests {
		got := r.Resolve(tt.token, child)
		if got.Kind != tt.kind {
			t.Errorf("Resolve(%q).Kind = %s, want %s", tt.token, got.Kind, tt.kind)
			continue
		}
		if got.Token != tt.token {
			t.Errorf("Resolve(%q).Token = %q", tt.token, got.Token)
		}
		if name := describe(got); name != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.token, name, tt.want)
		}
	}
}

func describe(ref Reference) string {
	switch ref.Kind {
	case ClassRef:
		return ref.Class.Name()
	case MethodRef:
		return ref.Method.Class().Name() + "::" + ref.Method.Name()
	case ExternalRef:
		return ref.URL
	default:
		return ""
	}
}

func TestResolve_MethodBeatsClass(t *testing.T) {
	t.Parallel()

	p := newFakeProject()
	p.add(`App\Thing`, "")
	cur := p.add(`App\Current`, "", "Thing")

	got := NewResolver(nil, "").Resolve("Thing", cur)
	if got.Kind != MethodRef {
		t.Fatalf("expected method, got %s", got.Kind)
	}
}

func TestResolve_FunctionBeatsClass(t *testing.T) {
	t.Parallel()

	p := newFakeProject()
	p.add(`App\count`, "")
	cur := p.add(`App\Current`, "")

	got := NewResolver(fakeFunctions{"count": true}, "https://docs.example/fn/").Resolve("count", cur)
	if got.Kind != ExternalRef || got.URL != "https://docs.example/fn/count" {
		t.Fatalf("got %s %q", got.Kind, got.URL)
	}
}

func TestResolve_URLWithoutClass(t *testing.T) {
	t.Parallel()

	got := NewResolver(nil, "").Resolve("https://example.com", nil)
	if got.Kind != ExternalRef || got.URL != "https://example.com" {
		t.Fatalf("got %s %q", got.Kind, got.URL)
	}

	got = NewResolver(nil, "").Resolve("Foo", nil)
	if got.Kind != Unresolved {
		t.Fatalf("expected unresolved without a class, got %s", got.Kind)
	}
}

func TestResolve_NilFunctions(t *testing.T) {
	t.Parallel()

	_, child := sampleProject()
	got := NewResolver(nil, "").Resolve("strlen", child)
	if got.Kind != Unresolved {
		t.Errorf("expected unresolved, got %s", got.Kind)
	}
}
