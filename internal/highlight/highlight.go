// Package highlight writes code blocks for rendered descriptions, either
// tagged with a language class for client-side highlighting or highlighted
// server-side with chroma.
package highlight

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	mdhtml "github.com/gomarkdown/markdown/html"
)

// DefaultLanguage is applied to code blocks that do not name a language.
const DefaultLanguage = "php"

// Highlighter writes <pre><code> blocks.
type Highlighter struct {
	language  string
	enabled   bool
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a Highlighter tagging unlabelled blocks with language. When
// enabled, blocks are tokenised with chroma and emitted with CSS classes
// from the named style.
func New(language string, enabled bool, style string) *Highlighter {
	if language == "" {
		language = DefaultLanguage
	}
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &Highlighter{
		language: Canonical(language),
		enabled:  enabled,
		style:    s,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Canonical maps a language name or alias to chroma's primary alias, e.g.
// "PHP" and "php5" both become "php". Unknown names are lower-cased.
func Canonical(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	lexer := lexers.Get(language)
	if lexer == nil {
		return language
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// WriteBlock writes code as a <pre><code> element. info is the fenced block
// info string; its first word names the language and may be empty.
func (h *Highlighter) WriteBlock(w io.Writer, code []byte, info string) {
	lang := h.language
	if fields := strings.Fields(info); len(fields) > 0 {
		lang = Canonical(fields[0])
	}

	io.WriteString(w, "<pre><code class=\"language-"+html.EscapeString(lang))
	if h.enabled {
		io.WriteString(w, " chroma\">")
		var buf bytes.Buffer
		if err := h.highlight(&buf, string(code), lang); err != nil {
			mdhtml.EscapeHTML(w, code)
		} else {
			w.Write(buf.Bytes())
		}
	} else {
		io.WriteString(w, "\">")
		mdhtml.EscapeHTML(w, code)
	}
	io.WriteString(w, "</code></pre>\n")
}

func (h *Highlighter) highlight(w io.Writer, code, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenising %s code: %w", lang, err)
	}
	return h.formatter.Format(w, h.style, it)
}

// WriteCSS writes the stylesheet for the classes emitted when highlighting.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}
