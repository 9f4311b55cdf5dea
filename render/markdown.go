package render

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
)

// renderMarkdown turns a markdown body into HTML honoring the site's
// markdown configuration. Shortcodes must already be expanded.
func renderMarkdown(body string, md config.Markdown) (string, error) {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.Footnotes
	p := parser.NewWithExtensions(extensions)

	opts := html.RendererOptions{Flags: html.CommonFlags}
	var hook *codeHook
	if md.HighlightCode {
		hook = &codeHook{}
		opts.RenderNodeHook = hook.render
	}
	renderer := html.NewRenderer(opts)

	doc := p.Parse([]byte(body))
	out := string(markdown.Render(doc, renderer))
	if hook != nil && hook.err != nil {
		return "", hook.err
	}

	if md.FootnotePosition == config.FootnotesInline {
		out = inlineFootnotes(out)
	}

	return out, nil
}

// codeHook replaces the default code block rendering with chroma's
// class-based output so the emitted theme stylesheets can style it.
type codeHook struct {
	err error
}

func (h *codeHook) render(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	block, ok := node.(*ast.CodeBlock)
	if !ok {
		return ast.GoToNext, false
	}
	if err := highlightBlock(w, string(block.Literal), string(block.Info)); err != nil && h.err == nil {
		h.err = err
	}
	return ast.GoToNext, true
}

func highlightBlock(w io.Writer, source, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return errors.Wrap(err, "tokenising code block")
	}

	// Classes only; the actual colors come from the theme stylesheets
	// written at build time.
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(w, styles.Fallback, iterator); err != nil {
		return errors.Wrap(err, "formatting code block")
	}
	return nil
}
