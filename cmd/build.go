package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillsite/quill/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site into the output directory",
	Run: func(cmd *cobra.Command, args []string) {
		root, _ := cmd.Flags().GetString("root")
		drafts, _ := cmd.Flags().GetBool("drafts")

		fmt.Println("Building site...")

		result, err := site.Build(site.Options{RootDir: root, IncludeDrafts: drafts})
		if err != nil {
			fmt.Printf("Build failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Site generated successfully in %s\n", result.OutDir)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("root", "r", ".", "Project root directory")
	buildCmd.Flags().Bool("drafts", false, "Include draft content")
}
