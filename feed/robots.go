package feed

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/quillsite/quill/config"
)

// WriteRobots emits a permissive robots.txt, pointing at the sitemap when
// one is generated.
func WriteRobots(outDir string, site *config.Site) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow:\n")
	if site.GenerateSitemap {
		b.WriteString("Sitemap: " + strings.TrimRight(site.BaseURL, "/") + "/sitemap.xml\n")
	}

	path := filepath.Join(outDir, "robots.txt")
	return errors.Wrap(os.WriteFile(path, []byte(b.String()), 0644), "writing robots.txt")
}
