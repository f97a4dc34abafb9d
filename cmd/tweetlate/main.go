// Command tweetlate runs the translated-tweet cache: an HTTP server, a
// one-shot refresh, and a cache reader.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tweetlate",
		Short: "Translated-tweet cache",
		Long: `tweetlate fetches a user's tweets, translates them while preserving
handles, hashtags, and links, and serves the translations from a
Redis-backed cache.

Configuration is read from tweetlate.yaml (or --config) with
TWEETLATE_* environment overrides.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to config file")
	root.PersistentFlags().Bool("memory", false, "use an in-memory store instead of Redis")

	root.AddCommand(newServeCmd())
	root.AddCommand(newRefreshCmd())
	root.AddCommand(newTweetsCmd())

	return root
}
