package functions

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed php_functions.txt
var builtinList string

// Registry is a set of global function names known to the host language.
// Lookups are case-insensitive, as PHP function names are.
type Registry struct {
	names map[string]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Builtin returns a registry seeded with the bundled PHP function list.
func Builtin() *Registry {
	r := New()
	// the embedded list is always well-formed
	_ = r.Read(strings.NewReader(builtinList))
	return r
}

// Add registers names.
func (r *Registry) Add(names ...string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		r.names[strings.ToLower(n)] = struct{}{}
	}
}

// Read adds one name per line from rd. Blank lines and lines starting with
// '#' are skipped.
func (r *Registry) Read(rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.Add(line)
	}
	return sc.Err()
}

// ReadFile adds the names listed in path.
func (r *Registry) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening function list: %w", err)
	}
	defer f.Close()

	if err := r.Read(f); err != nil {
		return fmt.Errorf("reading function list %s: %w", path, err)
	}
	return nil
}

// Exists reports whether name is a known function. A leading namespace
// separator is ignored.
func (r *Registry) Exists(name string) bool {
	name = strings.TrimPrefix(name, `\`)
	_, ok := r.names[strings.ToLower(name)]
	return ok
}


// Names returns the registered names, lower-cased and sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
