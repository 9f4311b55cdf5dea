package taxonomy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_GroupsAndOrders(t *testing.T) {
	older := &content.Item{Path: "a.md", Title: "A", Date: day(1), Taxonomies: map[string][]string{"tags": {"go"}}}
	newer := &content.Item{Path: "b.md", Title: "B", Date: day(5), Taxonomies: map[string][]string{"tags": {"go", "web"}}}
	undated := &content.Item{Path: "c.md", Title: "C", Taxonomies: map[string][]string{"tags": {"go"}}}

	idx, err := Build([]config.Taxonomy{{Name: "tags"}}, []*content.Item{older, newer, undated})
	require.NoError(t, err)

	require.Equal(t, []string{"tags"}, idx.Names())
	require.Equal(t, []string{"go", "web"}, idx.Terms("tags"))
	require.Equal(t, []*content.Item{newer, older, undated}, idx.Items("tags", "go"))
	require.Equal(t, []*content.Item{newer}, idx.Items("tags", "web"))
}

func TestBuild_DraftsExcluded(t *testing.T) {
	draft := &content.Item{Path: "d.md", Draft: true, Taxonomies: map[string][]string{"tags": {"go"}}}

	idx, err := Build([]config.Taxonomy{{Name: "tags"}}, []*content.Item{draft})
	require.NoError(t, err)
	require.Empty(t, idx.Terms("tags"))
	require.Empty(t, idx.Items("tags", "go"))
}

func TestBuild_UnassignedItemAbsent(t *testing.T) {
	plain := &content.Item{Path: "p.md", Taxonomies: map[string][]string{}}
	tagged := &content.Item{Path: "t.md", Taxonomies: map[string][]string{"tags": {"go"}}}

	idx, err := Build([]config.Taxonomy{{Name: "tags"}}, []*content.Item{plain, tagged})
	require.NoError(t, err)
	require.Equal(t, []*content.Item{tagged}, idx.Items("tags", "go"))
	for _, term := range idx.Terms("tags") {
		require.NotContains(t, idx.Items("tags", term), plain)
	}
}

func TestBuild_UndeclaredTaxonomyFails(t *testing.T) {
	item := &content.Item{Path: "posts/x.md", Taxonomies: map[string][]string{"categories": {"misc"}}}

	_, err := Build([]config.Taxonomy{{Name: "tags"}}, []*content.Item{item})
	require.Error(t, err)
	require.Contains(t, err.Error(), "posts/x.md")
	require.Contains(t, err.Error(), `"categories"`)
}

func TestSortByRecency(t *testing.T) {
	a := &content.Item{Path: "a.md", Date: day(2)}
	b := &content.Item{Path: "b.md", Date: day(9)}
	c := &content.Item{Path: "c.md", Date: day(2)}

	sorted := SortByRecency([]*content.Item{a, b, c})
	require.Equal(t, []*content.Item{b, a, c}, sorted)
}
