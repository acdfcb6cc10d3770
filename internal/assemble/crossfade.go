package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"revoice/internal/ffmpeg"
	"revoice/internal/mixplan"
)

func (a *Assembler) crossfade() mixplan.CrossfadePlan {
	return mixplan.CrossfadePlan{
		Transition: a.Media.CrossfadeTransition,
		Duration:   a.Media.CrossfadeDurationSec,
		Offset:     a.Media.CrossfadeOffsetSec,
	}
}

// LeadInAssets prepends each asset's still image (<assets>/<id>.png) to
// its video with a crossfade, writing <assets>/<id>_with_image.mp4.
// Missing inputs pause for the operator; an asset still missing after the
// retry is skipped.
func (a *Assembler) LeadInAssets(ctx context.Context, ids []int) error {
	for _, id := range ids {
		videoPath := filepath.Join(a.Layout.Assets, fmt.Sprintf("%d.mp4", id))
		imagePath := filepath.Join(a.Layout.Assets, fmt.Sprintf("%d.png", id))

		videoOK, err := a.awaitFile(ctx, videoPath, "asset video")
		if err != nil {
			return err
		}
		imageOK, err := a.awaitFile(ctx, imagePath, "asset image")
		if err != nil {
			return err
		}
		if !videoOK || !imageOK {
			slog.Warn("skipping lead-in, inputs not supplied", "asset", id)
			continue
		}

		outputPath := filepath.Join(a.Layout.Assets, fmt.Sprintf("%d_with_image.mp4", id))
		if err := ffmpeg.LeadInImage(ctx, imagePath, videoPath, outputPath,
			a.Media.Width, a.Media.Height, a.crossfade()); err != nil {
			return fmt.Errorf("lead-in asset %d: %w", id, err)
		}
		slog.Info("lead-in image added", "path", outputPath)
	}
	return nil
}

// AppendSupport crossfades the shared support video
// (<articles>/support/support.mp4) onto the end of an article, writing
// <articles>/<id>_final.mp4.
func (a *Assembler) AppendSupport(ctx context.Context, articleID int) error {
	articlePath := filepath.Join(a.Layout.Articles, fmt.Sprintf("%d.mp4", articleID))
	present, err := a.awaitFile(ctx, articlePath, "article video")
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf("append support: article video %s is missing", articlePath)
	}

	supportPath := filepath.Join(a.Layout.Articles, "support", "support.mp4")
	present, err = a.awaitFile(ctx, supportPath, "support video")
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf("append support: support video %s is missing", supportPath)
	}

	outputPath := filepath.Join(a.Layout.Articles, fmt.Sprintf("%d_final.mp4", articleID))
	if err := ffmpeg.CrossfadeConcat(ctx, articlePath, supportPath, outputPath, a.crossfade()); err != nil {
		return fmt.Errorf("append support to article %d: %w", articleID, err)
	}
	slog.Info("support video appended", "path", outputPath)
	return nil
}
