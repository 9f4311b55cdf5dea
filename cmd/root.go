package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - static blog generator",
	Long:  `Quill builds a static blog from a config.yaml, a tree of markdown content, and plush templates, emitting HTML, feeds, a sitemap, a search index, and compiled stylesheets into a single output directory.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
