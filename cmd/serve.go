package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/quillsite/quill/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site, serve it locally, and rebuild on change",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		root, _ := cmd.Flags().GetString("root")
		drafts, _ := cmd.Flags().GetBool("drafts")

		opts := site.Options{RootDir: root, IncludeDrafts: drafts}

		result, err := site.Build(opts)
		if err != nil {
			fmt.Printf("Build failed: %v\n", err)
			os.Exit(1)
		}

		go watchAndRebuild(root, opts)

		router := mux.NewRouter()
		router.PathPrefix("/").Handler(siteHandler(result.OutDir))

		fmt.Printf("Serving %s on port %s\n", result.OutDir, port)
		log.Fatal(http.ListenAndServe(":"+port, router))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "9010", "Port to run the server on")
	serveCmd.Flags().StringP("root", "r", ".", "Project root directory")
	serveCmd.Flags().Bool("drafts", false, "Include draft content")
}

// siteHandler serves the output directory, falling back to the built
// 404.html for unknown paths.
func siteHandler(outDir string) http.Handler {
	fileServer := http.FileServer(http.Dir(outDir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(outDir, filepath.Clean(r.URL.Path))

		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			_, err = os.Stat(filepath.Join(path, "index.html"))
		}
		if os.IsNotExist(err) {
			w.WriteHeader(http.StatusNotFound)
			body, readErr := os.ReadFile(filepath.Join(outDir, "404.html"))
			if readErr != nil {
				fmt.Fprintln(w, "404 page not found")
				return
			}
			w.Write(body)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

// watchAndRebuild rebuilds the site whenever a source file changes. Rebuild
// failures are reported and the previous output keeps being served.
func watchAndRebuild(root string, opts site.Options) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Printf("Watch disabled: %v\n", err)
		return
	}
	defer watcher.Close()

	if root == "" {
		root = "."
	}
	for _, dir := range []string{site.ContentDir, site.TemplateDir, site.StaticDir, site.StyleDir} {
		filepath.Walk(filepath.Join(root, dir), func(path string, info os.FileInfo, err error) error {
			if err == nil && info.IsDir() {
				watcher.Add(path)
			}
			return nil
		})
	}
	watcher.Add(filepath.Join(root, site.ConfigFilename))

	var rebuild *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watcher.Add(event.Name)
				}
			}
			if rebuild != nil {
				rebuild.Stop()
			}
			rebuild = time.AfterFunc(200*time.Millisecond, func() {
				fmt.Printf("Change detected in %s, rebuilding...\n", event.Name)
				if _, err := site.Build(opts); err != nil {
					fmt.Printf("Rebuild failed: %v\n", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Watch error: %v\n", err)
		}
	}
}
