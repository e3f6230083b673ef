package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jcdickinson/seedoc/internal/batch"
	"github.com/jcdickinson/seedoc/internal/config"
	"github.com/jcdickinson/seedoc/internal/functions"
)

func TestWriteResults(t *testing.T) {
	t.Parallel()

	results := []batch.Result{
		{Key: `App\Foo`, HTML: `<a href="App/Bar.html">Bar</a>`},
		{Key: `App\Foo::run`, HTML: "Runs."},
	}

	var js bytes.Buffer
	if err := writeResults(&js, results, "out.json"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"App\\Foo": "<a href=\"App/Bar.html\">Bar</a>"`) {
		t.Errorf("json output = %s", js.String())
	}

	var yml bytes.Buffer
	if err := writeResults(&yml, results, "out.yaml"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(yml.String(), `App\Foo::run`) || !strings.Contains(yml.String(), "Runs.") {
		t.Errorf("yaml output = %s", yml.String())
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	base := &config.Config{}
	base.Markdown.CodeLanguage = "php"

	changed := *base
	changed.Links.BaseURL = "https://docs.example.com"

	registry := functions.New()
	registry.Add("strlen", "my_helper")

	if fingerprint(base, registry) == fingerprint(&changed, registry) {
		t.Error("base url should change the fingerprint")
	}
	if fingerprint(base, registry) != fingerprint(base, registry) {
		t.Error("fingerprint should be stable")
	}

	same := functions.New()
	same.Add("MY_HELPER", "strlen")
	if fingerprint(base, registry) != fingerprint(base, same) {
		t.Error("registry order and case should not matter")
	}

	swapped := functions.New()
	swapped.Add("strlen", "other_helper")
	if len(swapped.Names()) != len(registry.Names()) {
		t.Fatal("registries should be the same size")
	}
	if fingerprint(base, registry) == fingerprint(base, swapped) {
		t.Error("swapping a function name should change the fingerprint")
	}
}
