package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/tweetlate"
)

func newRefreshCmd() *cobra.Command {
	var sourceLang, targetLang string

	cmd := &cobra.Command{
		Use:   "refresh <username>",
		Short: "Run one refresh for a subscription and wait for it",
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

			task, err := refresher.Refresh(cmd.Context(), sub)
			if err != nil {
				return err
			}
			if task.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "cache still fresh, nothing to do")
				return nil
			}

			<-task.Done()
			if err := task.Err(); err != nil {
				return err
			}

			n, err := refresher.CachedCount(cmd.Context(), sub)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "refresh complete, %d tweets cached\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceLang, "from", "en", "source language code")
	cmd.Flags().StringVar(&targetLang, "to", "es", "target language code")

	return cmd
}
