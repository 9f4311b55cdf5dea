package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
base_url: https://blog.example.com
title: Field Notes
description: Notes on things
generate_sitemap: true
generate_robots_txt: true
generate_feeds: true
build_search_index: true
compile_css: true
taxonomies:
  - name: tags
    feed: true
markdown:
  highlight_code: true
  highlight_theme: monokai
  footnote_position: end
search:
  include_title: true
  include_content: true
  index_format: elasticlunr_json
extra:
  menu:
    - name: Home
      url: /
      weight: 1
    - name: About
      url: /about/
      newtab: true
  social:
    - name: mastodon
      url: https://example.social/@me
      icon: mastodon
`)

	site, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Field Notes", site.Title)
	require.True(t, site.GenerateFeeds)
	require.Equal(t, "atom.xml", site.FeedFilename)
	require.Equal(t, []Taxonomy{{Name: "tags", Feed: true}}, site.Taxonomies)
	require.Equal(t, "monokai", site.Markdown.HighlightTheme)
	require.True(t, site.HasTaxonomy("tags"))
	require.False(t, site.HasTaxonomy("categories"))

	menu, ok := site.Extra["menu"].([]interface{})
	require.True(t, ok)
	require.Len(t, menu, 2)
	first, ok := menu[0].(map[string]interface{})
	require.True(t, ok, "nested extra values should be string-keyed maps")
	require.Equal(t, "Home", first["name"])
}

func TestLoad_Defaults(t *testing.T) {
	site, err := Load(writeConfig(t, "base_url: https://example.com\ntitle: T\n"))
	require.NoError(t, err)
	require.Equal(t, FootnotesEnd, site.Markdown.FootnotePosition)
	require.Equal(t, IndexFormatElasticlunr, site.Search.IndexFormat)
	require.Equal(t, "atom.xml", site.FeedFilename)
	require.NotNil(t, site.Extra)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	_, err := Load(writeConfig(t, "title: T\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "base_url")
}

func TestLoad_RelativeBaseURL(t *testing.T) {
	_, err := Load(writeConfig(t, "base_url: /blog\ntitle: T\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "absolute")
}

func TestLoad_MissingTitle(t *testing.T) {
	_, err := Load(writeConfig(t, "base_url: https://example.com\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "title")
}

func TestLoad_DuplicateTaxonomy(t *testing.T) {
	_, err := Load(writeConfig(t, `
base_url: https://example.com
title: T
taxonomies:
  - name: tags
  - name: tags
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate taxonomy "tags"`)
}

func TestLoad_BadFootnotePosition(t *testing.T) {
	_, err := Load(writeConfig(t, `
base_url: https://example.com
title: T
markdown:
  footnote_position: sideways
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "footnote_position")
}

func TestLoad_ThemeAndThemesExclusive(t *testing.T) {
	_, err := Load(writeConfig(t, `
base_url: https://example.com
title: T
markdown:
  highlight_theme: monokai
  highlight_themes:
    - theme: github
      filename: syntax-light.css
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoad_ThemePairNeedsFilename(t *testing.T) {
	_, err := Load(writeConfig(t, `
base_url: https://example.com
title: T
markdown:
  highlight_themes:
    - theme: github
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "theme and filename")
}

func TestLoad_UnknownIndexFormat(t *testing.T) {
	_, err := Load(writeConfig(t, `
base_url: https://example.com
title: T
search:
  index_format: lucene
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "index_format")
}

func TestPermalink(t *testing.T) {
	site := &Site{BaseURL: "https://example.com/"}
	require.Equal(t, "https://example.com/", site.Permalink())
	require.Equal(t, "https://example.com/posts/hello/", site.Permalink("posts/hello"))
	require.Equal(t, "https://example.com/tags/go/", site.Permalink("tags", "go"))
}
