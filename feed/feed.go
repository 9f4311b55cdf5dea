// Package feed emits the syndication feeds, the sitemap, and robots.txt.
// Every writer in here owns a distinct output path, so they can run
// alongside the other emitters without coordination.
package feed

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
	"github.com/quillsite/quill/taxonomy"
)

// WriteFeeds emits the site feed plus one feed per term of every taxonomy
// declared with feed: true. Filenames containing "rss" are written as RSS,
// everything else as Atom.
func WriteFeeds(outDir string, site *config.Site, items []*content.Item, idx *taxonomy.Index) error {
	pages := feedPages(items)

	if err := writeFeed(filepath.Join(outDir, site.FeedFilename), site, site.Title, site.Permalink(), pages); err != nil {
		return err
	}

	for _, tax := range site.Taxonomies {
		if !tax.Feed {
			continue
		}
		for _, term := range idx.Terms(tax.Name) {
			path := filepath.Join(outDir, tax.Name, term, site.FeedFilename)
			title := site.Title + " - " + term
			if err := writeFeed(path, site, title, site.Permalink(tax.Name, term), idx.Items(tax.Name, term)); err != nil {
				return err
			}
		}
	}

	return nil
}

func feedPages(items []*content.Item) []*content.Item {
	var pages []*content.Item
	for _, item := range items {
		if item.Draft || item.Kind != content.KindPage {
			continue
		}
		pages = append(pages, item)
	}
	return taxonomy.SortByRecency(pages)
}

func writeFeed(path string, site *config.Site, title, link string, items []*content.Item) error {
	f := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: site.Description,
	}
	if len(items) > 0 {
		// Newest item, not build time, so rebuilds are byte-identical.
		f.Updated = items[0].Date
	}

	for _, item := range items {
		permalink := site.Permalink(item.Slug)
		f.Items = append(f.Items, &feeds.Item{
			Id:          permalink,
			Title:       item.Title,
			Link:        &feeds.Link{Href: permalink},
			Description: item.Description,
			Created:     item.Date,
		})
	}

	var out string
	var err error
	if strings.Contains(filepath.Base(path), "rss") {
		out, err = f.ToRss()
	} else {
		out, err = f.ToAtom()
	}
	if err != nil {
		return errors.Wrapf(err, "building feed %s", filepath.Base(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(os.WriteFile(path, []byte(out), 0644), "writing feed %s", path)
}
