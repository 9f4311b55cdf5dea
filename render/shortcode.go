package render

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
)

var (
	shortcodeRe    = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\(([^)]*)\)\s*\}\}`)
	shortcodeArgRe = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*"([^"]*)"`)
)

// expandShortcodes replaces every {{ name(key="value", ...) }} directive in
// body with the output of templates/shortcodes/<name>.plush.html. A
// directive naming a missing template fails the expansion.
func (e *Engine) expandShortcodes(body string) (string, error) {
	var expandErr error

	out := shortcodeRe.ReplaceAllStringFunc(body, func(directive string) string {
		if expandErr != nil {
			return directive
		}

		sub := shortcodeRe.FindStringSubmatch(directive)
		name := sub[1]

		src, err := os.ReadFile(filepath.Join(e.templateDir, "shortcodes", name+".plush.html"))
		if err != nil {
			expandErr = errors.Errorf("unresolvable shortcode %q", name)
			return directive
		}

		ctx := plush.NewContext()
		args := map[string]string{}
		for _, kv := range shortcodeArgRe.FindAllStringSubmatch(sub[2], -1) {
			args[kv[1]] = kv[2]
			ctx.Set(kv[1], kv[2])
		}
		ctx.Set("args", args)

		tpl, err := plush.Parse(string(src))
		if err != nil {
			expandErr = errors.Wrapf(err, "parsing shortcode %q", name)
			return directive
		}

		html, err := tpl.Exec(ctx)
		if err != nil {
			expandErr = errors.Wrapf(err, "executing shortcode %q", name)
			return directive
		}
		return html
	})

	return out, expandErr
}
