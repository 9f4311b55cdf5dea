package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Footnote placement values accepted in the markdown block.
const (
	FootnotesEnd    = "end"
	FootnotesInline = "inline"
)

// Search index formats accepted in the search block.
const (
	IndexFormatElasticlunr = "elasticlunr_json"
	IndexFormatFuse        = "fuse_json"
)

type Taxonomy struct {
	Name string `yaml:"name"`
	Feed bool   `yaml:"feed"`
}

// HighlightTheme names one entry of a light/dark theme pair and the
// stylesheet filename it is emitted under.
type HighlightTheme struct {
	Theme    string `yaml:"theme"`
	Filename string `yaml:"filename"`
}

type Markdown struct {
	HighlightCode    bool             `yaml:"highlight_code"`
	HighlightTheme   string           `yaml:"highlight_theme"`
	HighlightThemes  []HighlightTheme `yaml:"highlight_themes"`
	FootnotePosition string           `yaml:"footnote_position"`
}

type Search struct {
	IncludeTitle       bool   `yaml:"include_title"`
	IncludeDescription bool   `yaml:"include_description"`
	IncludePath        bool   `yaml:"include_path"`
	IncludeContent     bool   `yaml:"include_content"`
	IndexFormat        string `yaml:"index_format"`
}

type Site struct {
	BaseURL           string                 `yaml:"base_url"`
	Title             string                 `yaml:"title"`
	Description       string                 `yaml:"description"`
	GenerateSitemap   bool                   `yaml:"generate_sitemap"`
	GenerateRobotsTxt bool                   `yaml:"generate_robots_txt"`
	GenerateFeeds     bool                   `yaml:"generate_feeds"`
	FeedFilename      string                 `yaml:"feed_filename"`
	BuildSearchIndex  bool                   `yaml:"build_search_index"`
	CompileCSS        bool                   `yaml:"compile_css"`
	Taxonomies        []Taxonomy             `yaml:"taxonomies"`
	Markdown          Markdown               `yaml:"markdown"`
	Search            Search                 `yaml:"search"`
	Extra             map[string]interface{} `yaml:"extra"`
}

// Load reads and validates the site configuration document.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading site config")
	}

	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, errors.Wrapf(err, "parsing site config %s", path)
	}

	site.applyDefaults()
	if err := site.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid site config %s", path)
	}

	site.Extra = normalizeMap(site.Extra)

	return &site, nil
}

func (s *Site) applyDefaults() {
	if s.FeedFilename == "" {
		s.FeedFilename = "atom.xml"
	}
	if s.Markdown.FootnotePosition == "" {
		s.Markdown.FootnotePosition = FootnotesEnd
	}
	if s.Search.IndexFormat == "" {
		s.Search.IndexFormat = IndexFormatElasticlunr
	}
	if s.Extra == nil {
		s.Extra = map[string]interface{}{}
	}
}

func (s *Site) validate() error {
	if s.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "base_url %q", s.BaseURL)
	}
	if !u.IsAbs() || u.Host == "" {
		return errors.Errorf("base_url %q must be an absolute URL", s.BaseURL)
	}

	if s.Title == "" {
		return errors.New("title is required")
	}

	seen := make(map[string]bool, len(s.Taxonomies))
	for _, tax := range s.Taxonomies {
		if tax.Name == "" {
			return errors.New("taxonomy with empty name")
		}
		if seen[tax.Name] {
			return errors.Errorf("duplicate taxonomy %q", tax.Name)
		}
		seen[tax.Name] = true
	}

	switch s.Markdown.FootnotePosition {
	case FootnotesEnd, FootnotesInline:
	default:
		return errors.Errorf("markdown.footnote_position %q must be %q or %q",
			s.Markdown.FootnotePosition, FootnotesInline, FootnotesEnd)
	}

	if s.Markdown.HighlightTheme != "" && len(s.Markdown.HighlightThemes) > 0 {
		return errors.New("markdown.highlight_theme and markdown.highlight_themes are mutually exclusive")
	}
	for _, t := range s.Markdown.HighlightThemes {
		if t.Theme == "" || t.Filename == "" {
			return errors.New("markdown.highlight_themes entries need both theme and filename")
		}
	}

	switch s.Search.IndexFormat {
	case IndexFormatElasticlunr, IndexFormatFuse:
	default:
		return errors.Errorf("search.index_format %q must be %q or %q",
			s.Search.IndexFormat, IndexFormatElasticlunr, IndexFormatFuse)
	}

	return nil
}

// HasTaxonomy reports whether name is a declared taxonomy.
func (s *Site) HasTaxonomy(name string) bool {
	for _, tax := range s.Taxonomies {
		if tax.Name == name {
			return true
		}
	}
	return false
}

// Permalink joins a slash-separated URL path onto the base URL.
func (s *Site) Permalink(parts ...string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	path := strings.Trim(strings.Join(parts, "/"), "/")
	if path == "" {
		return base + "/"
	}
	return fmt.Sprintf("%s/%s/", base, path)
}

// normalizeMap rewrites yaml.v2's map[interface{}]interface{} values into
// map[string]interface{} so the extra block can be handed to templates.
func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
