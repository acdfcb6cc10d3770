package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"revoice/internal/ffmpeg"
)

// titleCard renders <baseDir>/title/<id>.png into <baseDir>/<id>_0.mp4,
// skipping work already done. A missing image pauses for the operator and
// retries once; a still-missing image skips the card.
func (a *Assembler) titleCard(ctx context.Context, baseDir string, id int) error {
	outputPath := filepath.Join(baseDir, fmt.Sprintf("%d_0.mp4", id))
	if _, err := os.Stat(outputPath); err == nil {
		slog.Info("title card already exists, skipping", "path", outputPath)
		return nil
	}

	imagePath := filepath.Join(baseDir, "title", fmt.Sprintf("%d.png", id))
	present, err := a.awaitFile(ctx, imagePath, "title image")
	if err != nil {
		return err
	}
	if !present {
		slog.Warn("skipping title card, image not supplied", "id", id)
		return nil
	}

	if err := ffmpeg.TitleCard(ctx, imagePath, outputPath,
		a.Media.TitleDurationSec, a.Media.FPS, a.Media.Width, a.Media.Height); err != nil {
		return fmt.Errorf("title card %d: %w", id, err)
	}

	slog.Info("title card created", "path", outputPath)
	return nil
}

// AssetTitleCards renders title cards for the given asset IDs into the
// pieces directory.
func (a *Assembler) AssetTitleCards(ctx context.Context, ids []int) error {
	for _, id := range ids {
		if err := a.titleCard(ctx, a.Layout.Pieces, id); err != nil {
			return err
		}
	}
	return nil
}

// ArticleTitleCard renders the article's own title card into the articles
// directory.
func (a *Assembler) ArticleTitleCard(ctx context.Context, id int) error {
	return a.titleCard(ctx, a.Layout.Articles, id)
}
