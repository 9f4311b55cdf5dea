package content

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var errMissingClosingDelimiter = errors.New("front-matter opened with --- but never closed")

// splitFrontMatter separates the leading `---` delimited YAML block from the
// markdown body. Every content document must carry front-matter; a document
// without one is malformed.
func splitFrontMatter(data []byte) (meta []byte, body []byte, err error) {
	open := []byte("---\n")
	if !bytes.HasPrefix(data, open) {
		return nil, nil, errors.New("missing front-matter block")
	}

	rest := data[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}

	closing := []byte("\n---\n")
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A final block with no trailing body is still well formed.
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")+1], nil, nil
		}
		return nil, nil, errMissingClosingDelimiter
	}

	return rest[:idx+1], rest[idx+len(closing):], nil
}

type frontMatter struct {
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Date        string                 `yaml:"date"`
	Draft       bool                   `yaml:"draft"`
	Taxonomies  map[string][]string    `yaml:"taxonomies"`
	Extra       map[string]interface{} `yaml:"extra"`
}

// dateFormats accepted in front-matter, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseFrontMatter(meta []byte) (*frontMatter, time.Time, error) {
	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "parsing front-matter")
	}

	if fm.Title == "" {
		return nil, time.Time{}, errors.New("front-matter is missing title")
	}

	var date time.Time
	if fm.Date != "" {
		var err error
		for _, format := range dateFormats {
			date, err = time.Parse(format, fm.Date)
			if err == nil {
				break
			}
		}
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("unrecognized date %q", fm.Date)
		}
	}

	return &fm, date, nil
}
