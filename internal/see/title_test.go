package see

import "testing"

func TestFormatTitle(t *testing.T) {
	t.Parallel()

	_, child := sampleProject()
	r := NewResolver(fakeFunctions{"strlen": true}, "")

	tests := []struct {
		name     string
		token    string
		explicit string
		want     string
	}{
		{"explicit wins", "Foo", "the foo", "the foo"},
		{"class same namespace", "Foo", "", "Foo"},
		{"class other namespace", "Model", "", `App\Models\Foo`},
		{"class nested namespace", `Sub\Deep`, "", `App\Sub\Deep`},
		{"method same class", "own", "", "own"},
		{"method same namespace", "Foo::bar", "", "Foo::bar"},
		{"inherited method same namespace", "bar", "", "Base::bar"},
		{"method other namespace", "Model::save", "", `\App\Models\Foo::save`},
		{"external keeps token", "https://example.com", "", "https://example.com"},
		{"function keeps token", "strlen()", "", "strlen()"},
		{"unresolved keeps token", "Nope::x", "", "Nope::x"},
		{"unresolved explicit", "Nope::x", "nope", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTitle(r.Resolve(tt.token, child), child, tt.explicit)
			if got != tt.want {
				t.Errorf("FormatTitle(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}
