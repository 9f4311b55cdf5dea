package main

import "github.com/quillsite/quill/cmd"

func main() {
	cmd.Execute()
}
