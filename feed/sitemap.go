package feed

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
	"github.com/quillsite/quill/taxonomy"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap emits sitemap.xml covering the front page, every non-draft
// item, and every taxonomy and term page.
func WriteSitemap(outDir string, site *config.Site, items []*content.Item, idx *taxonomy.Index) error {
	xmlOutput, err := GenerateSitemapContent(site, items, idx)
	if err != nil {
		return err
	}

	xmlFile, err := os.Create(filepath.Join(outDir, "sitemap.xml"))
	if err != nil {
		return errors.Wrap(err, "creating sitemap")
	}
	defer xmlFile.Close()

	if _, err := xmlFile.Write([]byte(xml.Header)); err != nil {
		return errors.WithStack(err)
	}
	if _, err := xmlFile.Write([]byte(xmlOutput)); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// GenerateSitemapContent builds the urlset document. lastmod comes from the
// item date, never from build time, to keep repeated builds identical.
func GenerateSitemapContent(site *config.Site, items []*content.Item, idx *taxonomy.Index) (string, error) {
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	sitemap.Urls = append(sitemap.Urls, Url{Loc: site.Permalink()})

	for _, item := range items {
		if item.Draft || item.Slug == "" {
			continue
		}
		url := Url{Loc: site.Permalink(item.Slug)}
		if item.Dated() {
			url.LastMod = item.Date.Format("2006-01-02")
		}
		sitemap.Urls = append(sitemap.Urls, url)
	}

	for _, name := range idx.Names() {
		terms := idx.Terms(name)
		if len(terms) == 0 {
			continue
		}
		sitemap.Urls = append(sitemap.Urls, Url{Loc: site.Permalink(name)})
		for _, term := range terms {
			sitemap.Urls = append(sitemap.Urls, Url{Loc: site.Permalink(name, term)})
		}
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling sitemap")
	}

	return string(xmlOutput), nil
}
