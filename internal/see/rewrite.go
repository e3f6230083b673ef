package see

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// inlineTagRe matches {@see ref optional title}.
var inlineTagRe = regexp.MustCompile(`\{@see[ \t]+([^\s}]+)[ \t]*([^}]*)\}`)

// blockTagRe matches a bare @see ref.
var blockTagRe = regexp.MustCompile(`@see[ \t]+(\S+)`)

// Span is one @see occurrence in a description, as byte offsets into it.
type Span struct {
	Start, End int
	Ref        string
	Title      string // only inline tags carry a title
	Inline     bool
}

// Scan returns every @see occurrence in desc, in order and non-overlapping.
// Inline tags are found first; bare tags are only looked for in the text
// between them.
func Scan(desc string) []Span {
	var spans []Span
	prev := 0
	for _, m := range inlineTagRe.FindAllStringSubmatchIndex(desc, -1) {
		spans = append(spans, scanBlock(desc[prev:m[0]], prev)...)
		spans = append(spans, Span{
			Start:  m[0],
			End:    m[1],
			Ref:    desc[m[2]:m[3]],
			Title:  strings.TrimSpace(desc[m[4]:m[5]]),
			Inline: true,
		})
		prev = m[1]
	}
	return append(spans, scanBlock(desc[prev:], prev)...)
}

func scanBlock(text string, offset int) []Span {
	var spans []Span
	for _, m := range blockTagRe.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, Span{
			Start: offset + m[0],
			End:   offset + m[1],
			Ref:   text[m[2]:m[3]],
		})
	}
	return spans
}

// Rewriter replaces @see tags in descriptions with links.
type Rewriter struct {
	resolver *Resolver
	paths    PathGenerator
}

func NewRewriter(resolver *Resolver, paths PathGenerator) *Rewriter {
	return &Rewriter{resolver: resolver, paths: paths}
}

// Rewrite returns desc with every @see tag replaced by an anchor, or by
// plain text when the reference cannot be resolved.
func (rw *Rewriter) Rewrite(desc string, current Class, ctx RenderContext) string {
	return rewriteSpans(desc, func(s Span) string {
		frag, _ := rw.replace(s, current, ctx)
		return frag
	})
}

// Markers around placeholder indexes. Private-use code points pass through
// Markdown untouched.
const (
	linkOpen  = "\ue000"
	linkClose = "\ue001"
)

// Links holds the fragments cut out of a description by RewriteDeferred,
// indexed by placeholder number.
type Links []string

// RewriteDeferred is Rewrite for text that still goes through Markdown. Each
// tag becomes an opaque placeholder so emphasis markers in names such as
// __get cannot reach into the generated markup; Splice restores the
// fragments afterwards. Unresolved titles are HTML-escaped.
func (rw *Rewriter) RewriteDeferred(desc string, current Class, ctx RenderContext) (string, Links) {
	var links Links
	out := rewriteSpans(desc, func(s Span) string {
		frag, resolved := rw.replace(s, current, ctx)
		if !resolved {
			frag = html.EscapeString(frag)
		}
		links = append(links, frag)
		return placeholder(len(links) - 1)
	})
	return out, links
}

func placeholder(i int) string {
	return linkOpen + strconv.Itoa(i) + linkClose
}

// Splice replaces the placeholders in s with their fragments.
func (l Links) Splice(s string) string {
	if len(l) == 0 {
		return s
	}
	pairs := make([]string, 0, 2*len(l))
	for i, frag := range l {
		pairs = append(pairs, placeholder(i), frag)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func rewriteSpans(desc string, replace func(Span) string) string {
	spans := Scan(desc)
	if len(spans) == 0 {
		return desc
	}

	var b strings.Builder
	b.Grow(len(desc))
	prev := 0
	for _, s := range spans {
		b.WriteString(desc[prev:s.Start])
		b.WriteString(replace(s))
		prev = s.End
	}
	b.WriteString(desc[prev:])
	return b.String()
}

// Resolver returns the resolver used for references.
func (rw *Rewriter) Resolver() *Resolver {
	return rw.resolver
}

// Href returns the link target for a resolved reference, or "" when ref is
// unresolved.
func (rw *Rewriter) Href(ref Reference, ctx RenderContext) string {
	switch ref.Kind {
	case ClassRef:
		return rw.paths.PathForClass(ctx, ref.Class)
	case MethodRef:
		return rw.paths.PathForMethod(ctx, ref.Method)
	case ExternalRef:
		return ref.URL
	}
	return ""
}

// replace returns the markup for one tag and whether it resolved.
func (rw *Rewriter) replace(s Span, current Class, ctx RenderContext) (string, bool) {
	ref := rw.resolver.Resolve(s.Ref, current)
	title := FormatTitle(ref, current, s.Title)
	if ref.Kind == Unresolved {
		// strip the tag, keep the text
		return title, false
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(rw.Href(ref, ctx)), title), true
}
