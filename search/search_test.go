package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillsite/quill/config"
	"github.com/quillsite/quill/content"
)

func searchConfig(format string) config.Search {
	return config.Search{
		IncludeTitle:   true,
		IncludePath:    true,
		IncludeContent: true,
		IndexFormat:    format,
	}
}

func TestBuild_FuseIncludesOnlyConfiguredFields(t *testing.T) {
	item := &content.Item{
		Slug:        "posts/hello",
		Title:       "Hello World",
		Description: "should be absent",
		Body:        "Some body text.",
	}

	data, err := Build(searchConfig(config.IndexFormatFuse), []*content.Item{item})
	require.NoError(t, err)

	var docs []map[string]string
	require.NoError(t, json.Unmarshal(data, &docs))
	require.Len(t, docs, 1)
	require.Equal(t, "Hello World", docs[0]["title"])
	require.Equal(t, "/posts/hello/", docs[0]["path"])
	require.Equal(t, "Some body text.", docs[0]["content"])
	_, present := docs[0]["description"]
	require.False(t, present)
}

func TestBuild_ElasticlunrPostings(t *testing.T) {
	a := &content.Item{Slug: "a", Title: "Go notes", Body: "go go go"}
	b := &content.Item{Slug: "b", Title: "Other", Body: "nothing shared"}

	data, err := Build(searchConfig(config.IndexFormatElasticlunr), []*content.Item{a, b})
	require.NoError(t, err)

	var idx struct {
		Fields        []string                     `json:"fields"`
		DocumentStore map[string]map[string]string `json:"documentStore"`
		Index         map[string][]Posting         `json:"index"`
	}
	require.NoError(t, json.Unmarshal(data, &idx))

	require.Equal(t, []string{"title", "path", "content"}, idx.Fields)
	require.Len(t, idx.DocumentStore, 2)
	require.Contains(t, idx.DocumentStore, "/a/")

	postings := idx.Index["go"]
	require.Len(t, postings, 1)
	require.Equal(t, "/a/", postings[0].Ref)
	require.Equal(t, 4, postings[0].Frequency, "three in the body plus one in the title")
}

func TestBuild_DraftsExcluded(t *testing.T) {
	draft := &content.Item{Slug: "d", Title: "Draft", Draft: true}

	data, err := Build(searchConfig(config.IndexFormatFuse), []*content.Item{draft})
	require.NoError(t, err)

	var docs []map[string]string
	require.NoError(t, json.Unmarshal(data, &docs))
	require.Empty(t, docs)
}

func TestBuild_Deterministic(t *testing.T) {
	items := []*content.Item{
		{Slug: "a", Title: "Alpha beta", Body: "gamma delta gamma"},
		{Slug: "b", Title: "Beta", Body: "delta"},
	}

	first, err := Build(searchConfig(config.IndexFormatElasticlunr), items)
	require.NoError(t, err)
	second, err := Build(searchConfig(config.IndexFormatElasticlunr), items)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPlainText(t *testing.T) {
	body := "# Title\n\nSome *emphasized* [linked](https://example.com) text.\n\n```go\ncode here\n```\n\n`inline` and {{ callout(a=\"b\") }} done.\n"
	text := PlainText(body)
	require.Contains(t, text, "Some emphasized linked text.")
	require.NotContains(t, text, "code here")
	require.NotContains(t, text, "callout")
	require.NotContains(t, text, "https://example.com")
}
