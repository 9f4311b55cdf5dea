// Package assets compiles the style sources into the output directory using
// esbuild. Entry points are the non-underscore .css files at the top of the
// style directory; underscore-prefixed files are partials pulled in through
// @import and never emitted on their own.
package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
)

// CompileCSS bundles and minifies every stylesheet entry point from styleDir
// into outDir. Returns the public paths of the emitted files.
func CompileCSS(styleDir, outDir string) ([]string, error) {
	entries, err := entryPoints(styleDir)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:      entries,
		Bundle:           true,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		Write:            false,
		Outdir:           outDir,
	})

	if len(result.Errors) > 0 {
		first := result.Errors[0]
		location := ""
		if first.Location != nil {
			location = first.Location.File + ": "
		}
		return nil, errors.Errorf("stylesheet compilation failed: %s%s", location, first.Text)
	}

	emitted := make([]string, 0, len(result.OutputFiles))
	for _, out := range result.OutputFiles {
		if err := os.MkdirAll(filepath.Dir(out.Path), os.ModePerm); err != nil {
			return nil, errors.WithStack(err)
		}
		if err := os.WriteFile(out.Path, out.Contents, 0644); err != nil {
			return nil, errors.Wrapf(err, "writing stylesheet %s", out.Path)
		}
		emitted = append(emitted, "/"+filepath.Base(out.Path))
	}
	sort.Strings(emitted)

	return emitted, nil
}

func entryPoints(styleDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(styleDir, "*.css"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var entries []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), "_") {
			continue
		}
		entries = append(entries, match)
	}
	sort.Strings(entries)
	return entries, nil
}
