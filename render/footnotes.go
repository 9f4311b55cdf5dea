package render

import (
	"regexp"
	"strings"
)

var (
	footnoteBlockRe = regexp.MustCompile(`(?s)\n?<div class="footnotes">.*?</div>\n?`)
	footnoteItemRe  = regexp.MustCompile(`(?s)<li id="fn:([^"]+)">(.*?)</li>`)
	paragraphTagRe  = regexp.MustCompile(`</?p>`)
)

// inlineFootnotes rewrites the collected end-of-document footnote list into
// inline spans at each reference site and drops the list.
func inlineFootnotes(doc string) string {
	block := footnoteBlockRe.FindString(doc)
	if block == "" {
		return doc
	}

	notes := map[string]string{}
	for _, m := range footnoteItemRe.FindAllStringSubmatch(block, -1) {
		text := paragraphTagRe.ReplaceAllString(m[2], "")
		notes[m[1]] = strings.TrimSpace(text)
	}

	doc = footnoteBlockRe.ReplaceAllString(doc, "\n")

	for key, text := range notes {
		refRe := regexp.MustCompile(
			`<sup class="footnote-ref" id="fnref:` + regexp.QuoteMeta(key) + `"><a href="#fn:` +
				regexp.QuoteMeta(key) + `">\d+</a></sup>`)
		doc = refRe.ReplaceAllLiteralString(doc, `<span class="footnote-inline">`+text+`</span>`)
	}

	return doc
}
