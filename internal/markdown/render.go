package markdown

import (
	"html/template"
	"strings"
	"sync"

	"github.com/jcdickinson/seedoc/internal/highlight"
	"github.com/jcdickinson/seedoc/internal/see"
)

// Options configures how descriptions are turned into HTML.
type Options struct {
	CodeLanguage   string // language class for unlabelled code blocks
	Highlight      bool   // highlight code blocks server-side
	HighlightStyle string
}

// Renderer turns docblock descriptions into HTML: @see tags become links,
// Markdown becomes HTML and a lone paragraph is unwrapped so short
// descriptions render inline. A Renderer is safe for concurrent use.
type Renderer struct {
	rewriter *see.Rewriter
	opts     Options

	once sync.Once
	md   *Transformer
}

func NewRenderer(rewriter *see.Rewriter, opts Options) *Renderer {
	return &Renderer{rewriter: rewriter, opts: opts}
}

// transformer builds the Markdown transformer on first use.
func (r *Renderer) transformer() *Transformer {
	r.once.Do(func() {
		r.md = NewTransformer(highlight.New(r.opts.CodeLanguage, r.opts.Highlight, r.opts.HighlightStyle))
	})
	return r.md
}

// Render converts desc to HTML in the scope of class. ctx is handed to the
// link path generator. Empty input is returned unchanged.
func (r *Renderer) Render(desc string, class see.Class, ctx see.RenderContext) string {
	if desc == "" {
		return desc
	}

	md := r.transformer()
	text, links := r.rewriter.RewriteDeferred(desc, class, ctx)

	out, single := md.transform(text)
	if single {
		out = unwrapParagraph(out)
	}
	return links.Splice(out)
}

func unwrapParagraph(out string) string {
	trimmed := strings.TrimSpace(out)
	if !strings.HasPrefix(trimmed, "<p>") || !strings.HasSuffix(trimmed, "</p>") {
		return out
	}
	trimmed = strings.TrimPrefix(trimmed, "<p>")
	trimmed = strings.TrimSuffix(trimmed, "</p>")
	return strings.TrimSpace(trimmed)
}

// FuncMap exposes Render to html/template as "desc":
//
//	{{ desc .Context .Description .Class }}
//
// The result is marked safe and is not escaped again.
func (r *Renderer) FuncMap() template.FuncMap {
	return template.FuncMap{
		"desc": func(ctx see.RenderContext, desc string, class see.Class) template.HTML {
			return template.HTML(r.Render(desc, class, ctx))
		},
	}
}
