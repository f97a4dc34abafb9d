package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/tweetlate"
)

func newTweetsCmd() *cobra.Command {
	var sourceLang, targetLang string
	var count int64

	cmd := &cobra.Command{
		Use:   "tweets <username>",
		Short: "Print cached translated tweets, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			refresher, err := newRefresher(cmd, cfg, logger)
			if err != nil {
				return err
			}

			sub := tweetlate.Subscription{
				Username:   args[0],
				SourceLang: sourceLang,
				TargetLang: targetLang,
			}

			tweets, err := refresher.Tweets(cmd.Context(), sub, 0, count)
			if err != nil {
				return err
			}
			if len(tweets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no cached tweets")
				return nil
			}

			for _, tw := range tweets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", tw.ID, tw.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceLang, "from", "en", "source language code")
	cmd.Flags().StringVar(&targetLang, "to", "es", "target language code")
	cmd.Flags().Int64Var(&count, "count", 20, "maximum tweets to print")

	return cmd
}
