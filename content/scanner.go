package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Scan walks the content root and builds one Item per markdown file. Files
// named _index.md become section indexes; everything else is a page. Any
// malformed document aborts the scan with the offending path so an
// incomplete site is never built silently.
func Scan(root string) ([]*Item, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking content root %s", root)
	}
	sort.Strings(paths)

	items := make([]*Item, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		rel = filepath.ToSlash(rel)

		item, err := load(path, rel)
		if err != nil {
			return nil, errors.Wrapf(err, "content %s", rel)
		}
		items = append(items, item)
	}

	return items, nil
}

func load(path, rel string) (*Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	meta, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	fm, date, err := parseFrontMatter(meta)
	if err != nil {
		return nil, err
	}

	taxonomies := fm.Taxonomies
	if taxonomies == nil {
		taxonomies = map[string][]string{}
	}

	return &Item{
		Path:        rel,
		Slug:        slugFor(rel),
		Kind:        kindFor(rel),
		Title:       fm.Title,
		Description: fm.Description,
		Date:        date,
		Draft:       fm.Draft,
		Taxonomies:  taxonomies,
		Extra:       fm.Extra,
		Body:        string(body),
	}, nil
}

func kindFor(rel string) string {
	if filepath.Base(rel) == "_index.md" {
		return KindSection
	}
	return KindPage
}

// slugFor derives the URL path from the source path: posts/hello.md becomes
// posts/hello, posts/_index.md becomes posts, and the root _index.md becomes
// the empty slug.
func slugFor(rel string) string {
	slug := strings.TrimSuffix(rel, ".md")
	if base := filepath.Base(slug); base == "_index" {
		slug = filepath.Dir(slug)
		if slug == "." {
			return ""
		}
	}
	return filepath.ToSlash(slug)
}
