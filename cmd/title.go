package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"revoice/internal/assemble"
	"revoice/internal/picker"
)

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Render title-card videos from PNG images",
	Long: `Title converts still PNG images into short silent video clips used as
title cards. --assets renders cards for asset IDs into the pieces
directory; --articles takes the article ID first, then its asset IDs.`,
	RunE: runTitle,
}

var (
	titleAssets   string
	titleArticles string
)

func init() {
	titleCmd.Flags().StringVar(&titleAssets, "assets", "", "comma-separated asset IDs")
	titleCmd.Flags().StringVar(&titleArticles, "articles", "", "article ID followed by its asset IDs, comma-separated")

	rootCmd.AddCommand(titleCmd)
}

func newAssembler() *assemble.Assembler {
	return assemble.New(cfg, picker.NewTerminal(os.Stdin, os.Stdout))
}

func runTitle(cmd *cobra.Command, args []string) error {
	if titleAssets == "" && titleArticles == "" {
		return cmd.Help()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newAssembler()

	if titleAssets != "" {
		ids, err := assemble.ParseIDs(titleAssets)
		if err != nil {
			return err
		}
		if err := a.AssetTitleCards(ctx, ids); err != nil {
			return err
		}
	}

	if titleArticles != "" {
		ids, err := assemble.ParseIDs(titleArticles)
		if err != nil {
			return err
		}
		if err := a.ArticleTitleCard(ctx, ids[0]); err != nil {
			return err
		}
		if len(ids) > 1 {
			if err := a.AssetTitleCards(ctx, ids[1:]); err != nil {
				return err
			}
		}
	}

	return nil
}
