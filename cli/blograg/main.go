package main

import (
	"os"

	blogragcmder "github.com/kodesword/blograg/cmd/blograg"
)

func main() {
	if err := blogragcmder.NewBlogragCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
