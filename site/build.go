// Package site runs the whole build: configuration, scanning, indexing,
// rendering, and the independent emitters. Every build starts cold and
// produces a complete output directory; nothing persists between runs.
package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/quillsite/quill/assets"
	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
	"github.com/quillsite/quill/feed"
	"github.com/quillsite/quill/render"
	"github.com/quillsite/quill/search"
	"github.com/quillsite/quill/taxonomy"
)

// Project directory conventions under the root.
const (
	ConfigFilename = "config.yaml"
	ContentDir     = "content"
	TemplateDir    = "templates"
	StaticDir      = "static"
	StyleDir       = "styles"
	OutputDir      = "public"
)

type Options struct {
	// RootDir is the project root holding config.yaml and the content,
	// template, static, and style directories. Defaults to ".".
	RootDir string
	// OutDir overrides the output directory. Defaults to RootDir/public.
	OutDir string
	// IncludeDrafts publishes draft items too, for local preview.
	IncludeDrafts bool
}

type Result struct {
	Config *config.Site
	Items  []*content.Item
	OutDir string
}

// Build runs one full build. The scanner and indexer complete first; the
// emitters then run concurrently over the immutable item set, each writing
// disjoint output paths.
func Build(opts Options) (*Result, error) {
	root := opts.RootDir
	if root == "" {
		root = "."
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(root, OutputDir)
	}

	site, err := config.Load(filepath.Join(root, ConfigFilename))
	if err != nil {
		return nil, err
	}

	items, err := content.Scan(filepath.Join(root, ContentDir))
	if err != nil {
		return nil, err
	}
	if opts.IncludeDrafts {
		// Local preview: drafts become ordinary items for this build.
		for _, item := range items {
			item.Draft = false
		}
	} else {
		published := items[:0:0]
		for _, item := range items {
			if !item.Draft {
				published = append(published, item)
			}
		}
		items = published
	}

	idx, err := taxonomy.Build(site.Taxonomies, items)
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(outDir); err != nil {
		return nil, errors.Wrapf(err, "cleaning output directory %s", outDir)
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", outDir)
	}

	if err := copyStatic(filepath.Join(root, StaticDir), outDir); err != nil {
		return nil, err
	}

	engine := render.New(site, filepath.Join(root, TemplateDir))
	if err := renderAll(engine, site, items, idx, outDir); err != nil {
		return nil, err
	}

	var g errgroup.Group
	if site.BuildSearchIndex {
		g.Go(func() error {
			return search.Write(outDir, site.Search, items)
		})
	}
	if site.GenerateFeeds {
		g.Go(func() error {
			return feed.WriteFeeds(outDir, site, items, idx)
		})
	}
	if site.GenerateSitemap {
		g.Go(func() error {
			return feed.WriteSitemap(outDir, site, items, idx)
		})
	}
	if site.GenerateRobotsTxt {
		g.Go(func() error {
			return feed.WriteRobots(outDir, site)
		})
	}
	if site.CompileCSS {
		g.Go(func() error {
			_, err := assets.CompileCSS(filepath.Join(root, StyleDir), outDir)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Config: site, Items: items, OutDir: outDir}, nil
}

func renderAll(engine *render.Engine, site *config.Site, items []*content.Item, idx *taxonomy.Index, outDir string) error {
	var pages []*content.Item
	for _, item := range items {
		if item.Kind == content.KindPage {
			pages = append(pages, item)
		}
	}

	// The front page is always the index listing; a root _index.md
	// contributes metadata to the scan but is not rendered standalone.
	html, err := engine.Index(pages)
	if err != nil {
		return err
	}
	if err := writePage(outDir, "", html); err != nil {
		return err
	}

	for _, item := range items {
		if item.Slug == "" {
			continue
		}
		html, err := engine.Page(item)
		if err != nil {
			return err
		}
		if err := writePage(outDir, item.Slug, html); err != nil {
			return err
		}
	}

	for _, name := range idx.Names() {
		html, err := engine.TaxonomyList(idx, name)
		if err != nil {
			return err
		}
		if err := writePage(outDir, name, html); err != nil {
			return err
		}

		for _, term := range idx.Terms(name) {
			html, err := engine.Term(name, term, idx.Items(name, term))
			if err != nil {
				return err
			}
			if err := writePage(outDir, filepath.Join(name, term), html); err != nil {
				return err
			}
		}
	}

	if html, err := engine.NotFound(); err != nil {
		return err
	} else if html != "" {
		if err := os.WriteFile(filepath.Join(outDir, "404.html"), []byte(html), 0644); err != nil {
			return errors.Wrap(err, "writing 404 page")
		}
	}

	if _, err := render.WriteThemeCSS(outDir, site.Markdown); err != nil {
		return err
	}

	return nil
}

func writePage(outDir, slug, html string) error {
	path := filepath.Join(outDir, filepath.FromSlash(slug), "index.html")
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	fmt.Printf("Generated %s\n", path)
	return nil
}

func copyStatic(staticDir, outDir string) error {
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return errors.WithStack(err)
		}
		destPath := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
			return errors.WithStack(err)
		}
		input, err := os.ReadFile(path)
		if err != nil {
			return errors.WithStack(err)
		}
		return errors.Wrapf(os.WriteFile(destPath, input, 0644), "copying %s", rel)
	})
}
