package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"revoice/internal/assemble"
)

var crossfadeCmd = &cobra.Command{
	Use:   "crossfade",
	Short: "Crossfade still images and support footage onto videos",
	Long: `Crossfade runs the xfade-based flows: --assets prepends each asset's
still image (<assets>/<id>.png) to its video with a crossfade, and
--support appends the shared support video to an article.`,
	RunE: runCrossfade,
}

var (
	crossfadeAssets  string
	crossfadeSupport int
)

func init() {
	crossfadeCmd.Flags().StringVar(&crossfadeAssets, "assets", "", "comma-separated asset IDs to lead in with their images")
	crossfadeCmd.Flags().IntVar(&crossfadeSupport, "support", 0, "article ID to append the support video to")

	rootCmd.AddCommand(crossfadeCmd)
}

func runCrossfade(cmd *cobra.Command, args []string) error {
	if crossfadeAssets == "" && crossfadeSupport == 0 {
		return cmd.Help()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newAssembler()

	if crossfadeAssets != "" {
		ids, err := assemble.ParseIDs(crossfadeAssets)
		if err != nil {
			return err
		}
		if err := a.LeadInAssets(ctx, ids); err != nil {
			return err
		}
	}

	if crossfadeSupport > 0 {
		if err := a.AppendSupport(ctx, crossfadeSupport); err != nil {
			return err
		}
	}

	return nil
}
