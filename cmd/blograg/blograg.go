// Package blogragcmder
package blogragcmder

import (
	"github.com/spf13/cobra"

	servecmder "github.com/kodesword/blograg/cmd/blograg/serve"
	workcmder "github.com/kodesword/blograg/cmd/blograg/work"
)

const blogragLongDesc string = `Blograg indexes blog posts into a vector store and answers questions grounded in their content.

Run services using:
  blograg serve    Run the API server
  blograg work     Run the indexing worker`

const blogragShortDesc string = "Blograg - Blog RAG service"

func NewBlogragCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blograg",
		Short: blogragShortDesc,
		Long:  blogragLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Directory containing config.toml")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(workcmder.NewWorkCmd())

	return cmd
}
