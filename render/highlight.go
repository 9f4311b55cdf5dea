package render

import (
	"os"
	"path/filepath"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
)

// SingleThemeFilename is where the stylesheet lands when the config names
// one highlight theme instead of a light/dark pair.
const SingleThemeFilename = "syntax-theme.css"

// WriteThemeCSS emits the highlight theme stylesheet(s) into outDir: one
// file for a single configured theme, one per entry for a theme pair so the
// client can switch between them. Returns the emitted filenames.
func WriteThemeCSS(outDir string, md config.Markdown) ([]string, error) {
	if !md.HighlightCode {
		return nil, nil
	}

	entries := md.HighlightThemes
	if len(entries) == 0 {
		entries = []config.HighlightTheme{{Theme: md.HighlightTheme, Filename: SingleThemeFilename}}
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))

	emitted := make([]string, 0, len(entries))
	for _, entry := range entries {
		style := styles.Get(entry.Theme)

		f, err := os.Create(filepath.Join(outDir, entry.Filename))
		if err != nil {
			return nil, errors.Wrapf(err, "creating theme stylesheet %s", entry.Filename)
		}
		if err := formatter.WriteCSS(f, style); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "writing theme stylesheet %s", entry.Filename)
		}
		if err := f.Close(); err != nil {
			return nil, errors.WithStack(err)
		}
		emitted = append(emitted, entry.Filename)
	}

	return emitted, nil
}
