package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"revoice/internal/assemble"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Concatenate pieces into assets and assets into articles",
	Long: `Merge normalizes and concatenates video files. --assets takes a single
asset ID and joins its pieces; --articles takes the article ID followed
by its asset IDs and joins intro, title card, assets, and outro.`,
	RunE: runMerge,
}

var (
	mergeAssets   string
	mergeArticles string
)

func init() {
	mergeCmd.Flags().StringVar(&mergeAssets, "assets", "", "single asset ID to merge")
	mergeCmd.Flags().StringVar(&mergeArticles, "articles", "", "article ID followed by its asset IDs, comma-separated")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeAssets != "" && mergeArticles != "" {
		return fmt.Errorf("--assets and --articles are mutually exclusive")
	}
	if mergeAssets == "" && mergeArticles == "" {
		return cmd.Help()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newAssembler()

	if mergeAssets != "" {
		id, err := assemble.ParseID(mergeAssets)
		if err != nil {
			return err
		}
		return a.MergeAsset(ctx, id)
	}

	ids, err := assemble.ParseIDs(mergeArticles)
	if err != nil {
		return err
	}
	assetIDs := ids[1:]
	seen := make(map[int]bool)
	for _, id := range assetIDs {
		if seen[id] {
			return fmt.Errorf("duplicate asset ID %d in --articles", id)
		}
		seen[id] = true
	}
	return a.MergeArticle(ctx, ids[0], assetIDs)
}
