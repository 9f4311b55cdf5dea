// Package render turns scanned content into HTML through plush templates.
// Each page is rendered into a base layout via a yield value; taxonomy and
// term listings get their own templates.
package render

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
	"github.com/quillsite/quill/taxonomy"
)

type Engine struct {
	site        *config.Site
	templateDir string
}

func New(site *config.Site, templateDir string) *Engine {
	return &Engine{site: site, templateDir: templateDir}
}

// Page renders one content item: shortcodes are expanded, the body rendered
// to HTML, the page (or section) template applied, and the result wrapped in
// the base layout.
func (e *Engine) Page(item *content.Item) (string, error) {
	expanded, err := e.expandShortcodes(item.Body)
	if err != nil {
		return "", errors.Wrapf(err, "content %s", item.Path)
	}

	body, err := renderMarkdown(expanded, e.site.Markdown)
	if err != nil {
		return "", errors.Wrapf(err, "content %s", item.Path)
	}

	name := "page"
	if item.Kind == content.KindSection {
		name = "section"
	}

	ctx := e.baseContext()
	ctx.Set("page", e.pageValue(item))
	ctx.Set("content", template.HTML(body))

	return e.execInLayout(name, ctx)
}

// Index renders the front page listing the given items, newest first.
func (e *Engine) Index(items []*content.Item) (string, error) {
	ctx := e.baseContext()
	ctx.Set("pages", e.pageValues(taxonomy.SortByRecency(items)))
	return e.execInLayout("index", ctx)
}

// TaxonomyList renders the term listing page for one taxonomy.
func (e *Engine) TaxonomyList(idx *taxonomy.Index, name string) (string, error) {
	terms := make([]map[string]interface{}, 0)
	for _, term := range idx.Terms(name) {
		terms = append(terms, map[string]interface{}{
			"name":      term,
			"permalink": e.site.Permalink(name, term),
			"count":     len(idx.Items(name, term)),
		})
	}

	ctx := e.baseContext()
	ctx.Set("taxonomy", name)
	ctx.Set("terms", terms)
	return e.execInLayout("taxonomy", ctx)
}

// Term renders the page listing every item carrying one taxonomy term.
func (e *Engine) Term(name, term string, items []*content.Item) (string, error) {
	ctx := e.baseContext()
	ctx.Set("taxonomy", name)
	ctx.Set("term", term)
	ctx.Set("pages", e.pageValues(items))
	return e.execInLayout("term", ctx)
}

// NotFound renders templates/404.plush.html when present. The empty string
// with no error means the site has no 404 template.
func (e *Engine) NotFound() (string, error) {
	if _, err := os.Stat(filepath.Join(e.templateDir, "404.plush.html")); os.IsNotExist(err) {
		return "", nil
	}
	return e.execInLayout("404", e.baseContext())
}

func (e *Engine) execInLayout(name string, ctx *plush.Context) (string, error) {
	inner, err := e.execTemplate(name+".plush.html", ctx)
	if err != nil {
		return "", err
	}

	ctx.Set("yield", template.HTML(inner))
	return e.execTemplate(filepath.Join("layouts", "base.plush.html"), ctx)
}

func (e *Engine) execTemplate(rel string, ctx *plush.Context) (string, error) {
	src, err := os.ReadFile(filepath.Join(e.templateDir, rel))
	if err != nil {
		return "", errors.Wrapf(err, "reading template %s", rel)
	}

	tpl, err := plush.Parse(string(src))
	if err != nil {
		return "", errors.Wrapf(err, "parsing template %s", rel)
	}

	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "executing template %s", rel)
	}
	return out, nil
}

func (e *Engine) baseContext() *plush.Context {
	ctx := plush.NewContext()
	ctx.Set("site", map[string]interface{}{
		"title":       e.site.Title,
		"description": e.site.Description,
		"base_url":    strings.TrimRight(e.site.BaseURL, "/"),
	})
	ctx.Set("extra", e.site.Extra)

	ctx.Set("startsWith", func(s string, prefix string) bool {
		return strings.HasPrefix(s, prefix)
	})
	ctx.Set("replaceAll", func(s string, old string, n string) string {
		return strings.ReplaceAll(s, old, n)
	})
	ctx.Set("upper", strings.ToUpper)
	ctx.Set("lower", strings.ToLower)

	return ctx
}

func (e *Engine) pageValue(item *content.Item) map[string]interface{} {
	date := ""
	if item.Dated() {
		date = item.Date.Format("2006-01-02")
	}
	return map[string]interface{}{
		"title":       item.Title,
		"description": item.Description,
		"slug":        item.Slug,
		"path":        item.Path,
		"permalink":   e.site.Permalink(item.Slug),
		"date":        date,
		"draft":       item.Draft,
		"taxonomies":  item.Taxonomies,
		"extra":       item.Extra,
	}
}

func (e *Engine) pageValues(items []*content.Item) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, e.pageValue(item))
	}
	return out
}
