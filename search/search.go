// Package search builds the serialized client-side search index. The output
// is either a flat document array (fuse_json) or documents plus an inverted
// term index (elasticlunr_json).
package search

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
)

// IndexFilename is the index file written into the output directory.
const IndexFilename = "search_index.json"

// Posting records one document's occurrence count for a term.
type Posting struct {
	Ref       string `json:"ref"`
	Frequency int    `json:"freq"`
}

type elasticlunrIndex struct {
	Fields        []string                     `json:"fields"`
	DocumentStore map[string]map[string]string `json:"documentStore"`
	Index         map[string][]Posting         `json:"index"`
}

// Build serializes the index over every non-draft item, including only the
// fields the search config asks for.
func Build(cfg config.Search, items []*content.Item) ([]byte, error) {
	docs := make([]map[string]string, 0, len(items))
	refs := make([]string, 0, len(items))
	for _, item := range items {
		if item.Draft {
			continue
		}
		ref := "/" + item.Slug + "/"
		if item.Slug == "" {
			ref = "/"
		}
		docs = append(docs, document(cfg, item, ref))
		refs = append(refs, ref)
	}

	switch cfg.IndexFormat {
	case config.IndexFormatFuse:
		return json.MarshalIndent(docs, "", "  ")
	case config.IndexFormatElasticlunr:
		idx := elasticlunrIndex{
			Fields:        fields(cfg),
			DocumentStore: make(map[string]map[string]string, len(docs)),
			Index:         map[string][]Posting{},
		}
		for i, doc := range docs {
			idx.DocumentStore[refs[i]] = doc
			for term, freq := range termFrequencies(cfg, doc) {
				idx.Index[term] = append(idx.Index[term], Posting{Ref: refs[i], Frequency: freq})
			}
		}
		for _, postings := range idx.Index {
			sort.Slice(postings, func(i, j int) bool { return postings[i].Ref < postings[j].Ref })
		}
		return json.MarshalIndent(idx, "", "  ")
	default:
		return nil, errors.Errorf("unknown search index format %q", cfg.IndexFormat)
	}
}

// Write builds the index and writes it into outDir.
func Write(outDir string, cfg config.Search, items []*content.Item) error {
	data, err := Build(cfg, items)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(filepath.Join(outDir, IndexFilename), data, 0644), "writing search index")
}

func fields(cfg config.Search) []string {
	var out []string
	if cfg.IncludeTitle {
		out = append(out, "title")
	}
	if cfg.IncludeDescription {
		out = append(out, "description")
	}
	if cfg.IncludePath {
		out = append(out, "path")
	}
	if cfg.IncludeContent {
		out = append(out, "content")
	}
	return out
}

func document(cfg config.Search, item *content.Item, ref string) map[string]string {
	doc := map[string]string{}
	if cfg.IncludeTitle {
		doc["title"] = item.Title
	}
	if cfg.IncludeDescription {
		doc["description"] = item.Description
	}
	if cfg.IncludePath {
		doc["path"] = ref
	}
	if cfg.IncludeContent {
		doc["content"] = PlainText(item.Body)
	}
	return doc
}

func termFrequencies(cfg config.Search, doc map[string]string) map[string]int {
	freqs := map[string]int{}
	for _, field := range fields(cfg) {
		if field == "path" {
			continue
		}
		for _, token := range tokenize(doc[field]) {
			freqs[token]++
		}
	}
	return freqs
}

var nonWordRe = regexp.MustCompile(`[^a-z0-9]+`)

func tokenize(text string) []string {
	var out []string
	for _, token := range nonWordRe.Split(strings.ToLower(text), -1) {
		if len(token) >= 2 {
			out = append(out, token)
		}
	}
	return out
}

var (
	fencedCodeRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`[^`]*`")
	shortcodeRe   = regexp.MustCompile(`\{\{[^}]*\}\}`)
	htmlTagRe     = regexp.MustCompile(`<[^>]+>`)
	linkRe        = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	markupRe      = regexp.MustCompile(`[#*_>~]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	footnoteDefRe = regexp.MustCompile(`(?m)^\[\^[^\]]+\]:`)
	footnoteRefRe = regexp.MustCompile(`\[\^[^\]]+\]`)
)

// PlainText strips markdown syntax down to indexable text.
func PlainText(body string) string {
	text := fencedCodeRe.ReplaceAllString(body, " ")
	text = inlineCodeRe.ReplaceAllString(text, " ")
	text = shortcodeRe.ReplaceAllString(text, " ")
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = linkRe.ReplaceAllString(text, "$1")
	text = footnoteDefRe.ReplaceAllString(text, " ")
	text = footnoteRefRe.ReplaceAllString(text, " ")
	text = markupRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
