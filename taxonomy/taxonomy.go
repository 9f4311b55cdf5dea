// Package taxonomy builds the derived term index over scanned content. The
// index is rebuilt from scratch every build and only references items, it
// never owns them.
package taxonomy

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
)

// Index maps taxonomy name -> term -> items carrying that term. Term item
// lists are ordered by date descending with source path as the tiebreak so
// repeated builds produce identical output.
type Index struct {
	names []string
	terms map[string]map[string][]*content.Item
}

// Build indexes every non-draft item under the declared taxonomies. An item
// assigning terms under an undeclared taxonomy is an error carrying the
// item's path: dropping the assignment would publish an incomplete site.
func Build(declared []config.Taxonomy, items []*content.Item) (*Index, error) {
	idx := &Index{
		names: make([]string, 0, len(declared)),
		terms: make(map[string]map[string][]*content.Item, len(declared)),
	}
	for _, tax := range declared {
		idx.names = append(idx.names, tax.Name)
		idx.terms[tax.Name] = map[string][]*content.Item{}
	}

	for _, item := range items {
		for name, terms := range item.Taxonomies {
			byTerm, ok := idx.terms[name]
			if !ok {
				return nil, errors.Errorf("content %s: taxonomy %q is not declared in the site config", item.Path, name)
			}
			if item.Draft {
				continue
			}
			for _, term := range terms {
				byTerm[term] = append(byTerm[term], item)
			}
		}
	}

	for _, byTerm := range idx.terms {
		for _, list := range byTerm {
			sortItems(list)
		}
	}

	return idx, nil
}

// Names returns the declared taxonomy names in declaration order.
func (idx *Index) Names() []string {
	return idx.names
}

// Terms returns the sorted terms of one taxonomy.
func (idx *Index) Terms(taxonomy string) []string {
	byTerm := idx.terms[taxonomy]
	terms := make([]string, 0, len(byTerm))
	for term := range byTerm {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Items returns the items carrying term, newest first.
func (idx *Index) Items(taxonomy, term string) []*content.Item {
	return idx.terms[taxonomy][term]
}

func sortItems(items []*content.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].Path < items[j].Path
	})
}

// SortByRecency orders items newest first with source path as the tiebreak.
// Undated items sort after dated ones.
func SortByRecency(items []*content.Item) []*content.Item {
	out := make([]*content.Item, len(items))
	copy(out, items)
	sortItems(out)
	return out
}
