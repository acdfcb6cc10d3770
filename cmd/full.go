package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"revoice/internal/assemble"
)

var fullCmd = &cobra.Command{
	Use:   "full",
	Short: "Run title, merge, and background music for one article",
	Long: `Full runs the whole assembly pipeline for an article: title cards for
the article and its assets, asset merging, article concatenation, and
background music.`,
	RunE: runFull,
}

var (
	fullArticles string
	fullTrack    int
)

func init() {
	fullCmd.Flags().StringVar(&fullArticles, "articles", "", "article ID followed by its asset IDs, comma-separated")
	fullCmd.Flags().IntVar(&fullTrack, "bg", 0, "background track ID (0 = pick automatically)")
	fullCmd.MarkFlagRequired("articles")

	rootCmd.AddCommand(fullCmd)
}

func runFull(cmd *cobra.Command, args []string) error {
	ids, err := assemble.ParseIDs(fullArticles)
	if err != nil {
		return err
	}
	articleID, assetIDs := ids[0], ids[1:]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newAssembler()

	slog.Info("stage: title cards", "article", articleID)
	if err := a.ArticleTitleCard(ctx, articleID); err != nil {
		return err
	}
	if err := a.AssetTitleCards(ctx, assetIDs); err != nil {
		return err
	}

	slog.Info("stage: merge assets", "count", len(assetIDs))
	for _, id := range assetIDs {
		if err := a.MergeAsset(ctx, id); err != nil {
			return err
		}
	}

	slog.Info("stage: merge article", "article", articleID)
	if err := a.MergeArticle(ctx, articleID, assetIDs); err != nil {
		return err
	}

	slog.Info("stage: background music", "article", articleID)
	return a.AddMusic(ctx, articleID, fullTrack)
}
