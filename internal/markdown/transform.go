package markdown

import (
	"io"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	gmparser "github.com/gomarkdown/markdown/parser"

	"github.com/jcdickinson/seedoc/internal/highlight"
)

// extensions is the Markdown dialect accepted in descriptions. MathJax and
// Autolink stay off: "$var" is common in docblocks and @see links already
// carry their URLs as anchor text.
const extensions = gmparser.NoIntraEmphasis |
	gmparser.Tables |
	gmparser.FencedCode |
	gmparser.Strikethrough |
	gmparser.SpaceHeadings |
	gmparser.HeadingIDs |
	gmparser.DefinitionLists |
	gmparser.Footnotes

// Transformer converts Markdown to HTML. gomarkdown parsers are single-use,
// so a fresh parser and renderer are built for every call; the Transformer
// itself holds no per-call state and is safe for concurrent use.
type Transformer struct {
	code *highlight.Highlighter
}

// NewTransformer returns a Transformer that writes code blocks through code.
func NewTransformer(code *highlight.Highlighter) *Transformer {
	return &Transformer{code: code}
}

// transform converts text to HTML and reports whether the document is a
// single paragraph.
func (t *Transformer) transform(text string) (string, bool) {
	src := gm.NormalizeNewlines([]byte(text))
	doc := gm.Parse(src, gmparser.NewWithExtensions(extensions))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          html.FlagsNone,
		RenderNodeHook: t.renderNode,
	})
	out := string(gm.Render(doc, renderer))

	children := doc.GetChildren()
	if len(children) != 1 {
		return out, false
	}
	_, single := children[0].(*ast.Paragraph)
	return out, single
}

// renderNode takes over code blocks so every block carries a language class.
func (t *Transformer) renderNode(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	block, ok := node.(*ast.CodeBlock)
	if !ok || t.code == nil {
		return ast.GoToNext, false
	}
	if entering {
		t.code.WriteBlock(w, block.Literal, string(block.Info))
	}
	return ast.GoToNext, true
}
