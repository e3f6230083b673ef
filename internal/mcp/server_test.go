package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jcdickinson/seedoc/internal/batch"
	"github.com/jcdickinson/seedoc/internal/functions"
	"github.com/jcdickinson/seedoc/internal/markdown"
	"github.com/jcdickinson/seedoc/internal/paths"
	"github.com/jcdickinson/seedoc/internal/reflection"
	"github.com/jcdickinson/seedoc/internal/see"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	project, err := reflection.New(&reflection.Dump{Classes: []reflection.ClassDump{
		{
			Name:        `App\Models\User`,
			Description: "A user.",
			Aliases:     map[string]string{"Http": `Vendor\Http\Client`},
			Methods:     []reflection.MethodDump{{Name: "save", Description: "See @see Post"}},
		},
		{Name: `App\Models\Post`, Methods: []reflection.MethodDump{{Name: "publish"}}},
		{Name: `Vendor\Http\Client`, Methods: []reflection.MethodDump{{Name: "send"}}},
	}})
	if err != nil {
		t.Fatal(err)
	}

	rewriter := see.NewRewriter(see.NewResolver(functions.Builtin(), ""), paths.New(""))
	renderer := batch.New(markdown.NewRenderer(rewriter, markdown.Options{}), batch.Options{})
	return NewServer(project, rewriter, renderer)
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	var parts []string
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "")
}

func TestRenderDescription(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			"class page",
			map[string]any{"class": `App\Models\User`, "description": "Uses {@see Post::publish}"},
			`Uses <a href="../../App/Models/Post.html#method_publish">Post::publish</a>`,
		},
		{
			"explicit page",
			map[string]any{"class": `App\Models\User`, "description": "@see Http", "page": "index.html"},
			`<a href="Vendor/Http/Client.html">Vendor\Http\Client</a>`,
		},
		{
			"empty description",
			map[string]any{"class": `App\Models\User`, "description": ""},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleRenderDescription(context.Background(), call(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if res.IsError {
				t.Fatalf("unexpected tool error: %s", resultText(t, res))
			}
			if got := resultText(t, res); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDescription_Errors(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	for _, args := range []map[string]any{
		{"description": "x"},
		{"class": `App\Missing`, "description": "x"},
		{"class": `App\Models\User`},
	} {
		res, err := s.handleRenderDescription(context.Background(), call(args))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError {
			t.Errorf("expected tool error for %v", args)
		}
	}
}

func TestResolveReference(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	tests := []struct {
		ref  string
		want Resolution
	}{
		{"Post", Resolution{Reference: "Post", Kind: "class", Target: `App\Models\Post`, Title: "Post", Href: "../../App/Models/Post.html"}},
		{"save()", Resolution{Reference: "save()", Kind: "method", Target: `App\Models\User::save`, Title: "save", Href: "../../App/Models/User.html#method_save"}},
		{"Http::send", Resolution{Reference: "Http::send", Kind: "method", Target: `Vendor\Http\Client::send`, Title: `\Vendor\Http\Client::send`, Href: "../../Vendor/Http/Client.html#method_send"}},
		{"array_map", Resolution{Reference: "array_map", Kind: "external", Target: "//php.net/array_map", Title: "array_map", Href: "//php.net/array_map"}},
		{"Nowhere", Resolution{Reference: "Nowhere", Kind: "unresolved", Title: "Nowhere"}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			res, err := s.handleResolveReference(context.Background(), call(map[string]any{
				"class":     `App\Models\User`,
				"reference": tt.ref,
			}))
			if err != nil {
				t.Fatal(err)
			}
			var got Resolution
			if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
				t.Fatalf("decoding %q: %v", resultText(t, res), err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderClass(t *testing.T) {
	t.Parallel()
	s := testServer(t)

	res, err := s.handleRenderClass(context.Background(), call(map[string]any{"class": `App\Models\User`}))
	if err != nil {
		t.Fatal(err)
	}
	var results []batch.Result
	if err := json.Unmarshal([]byte(resultText(t, res)), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[1].Key != `App\Models\User::save` || results[1].HTML != `See <a href="../../App/Models/Post.html">Post</a>` {
		t.Errorf("method result = %+v", results[1])
	}
}
