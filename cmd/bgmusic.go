package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var bgmusicCmd = &cobra.Command{
	Use:   "bgmusic",
	Short: "Lay a background music bed under an article video",
	Long: `Bgmusic trims a background track to the article's length, fades it in
and out at low volume, and mixes it with the article's narration.
Without --bg the shortest track that still covers the video is chosen.`,
	RunE: runBgmusic,
}

var (
	bgArticle int
	bgTrack   int
)

func init() {
	bgmusicCmd.Flags().IntVar(&bgArticle, "article", 0, "article ID")
	bgmusicCmd.Flags().IntVar(&bgTrack, "bg", 0, "background track ID (0 = pick automatically)")
	bgmusicCmd.MarkFlagRequired("article")

	rootCmd.AddCommand(bgmusicCmd)
}

func runBgmusic(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newAssembler().AddMusic(ctx, bgArticle, bgTrack)
}
