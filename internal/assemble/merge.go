package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"revoice/internal/ffmpeg"
)

// assetPieces lists the ordered piece videos for one asset
// (<id>_0.mp4, <id>_1.mp4, ...).
func (a *Assembler) assetPieces(id int) ([]string, error) {
	pattern := filepath.Join(a.Layout.Pieces, fmt.Sprintf("%d_*.mp4", id))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob pieces: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// normalizeAll re-encodes the inputs to a uniform format in a scratch
// directory so the concat filter can join them.
func (a *Assembler) normalizeAll(ctx context.Context, inputs []string, scratchDir string, baseID int) ([]string, error) {
	if err := os.MkdirAll(scratchDir, 0755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	normalized := make([]string, 0, len(inputs))
	for i, in := range inputs {
		out := filepath.Join(scratchDir, fmt.Sprintf("normalized_%d_%d.mp4", baseID, i))
		if err := ffmpeg.Normalize(ctx, in, out, a.Media.Width, a.Media.Height, a.Media.FPS); err != nil {
			return nil, fmt.Errorf("normalize %s: %w", filepath.Base(in), err)
		}
		normalized = append(normalized, out)
	}
	return normalized, nil
}

// MergeAsset concatenates an asset's pieces into <assets>/<id>.mp4.
// Already-built assets are left alone.
func (a *Assembler) MergeAsset(ctx context.Context, id int) error {
	outputPath := filepath.Join(a.Layout.Assets, fmt.Sprintf("%d.mp4", id))
	if _, err := os.Stat(outputPath); err == nil {
		slog.Info("asset already merged, skipping", "path", outputPath)
		return nil
	}

	pieces, err := a.assetPieces(id)
	if err != nil {
		return err
	}
	if len(pieces) == 0 {
		present, err := a.awaitFile(ctx, filepath.Join(a.Layout.Pieces, fmt.Sprintf("%d_0.mp4", id)), "asset pieces")
		if err != nil {
			return err
		}
		if present {
			pieces, err = a.assetPieces(id)
			if err != nil {
				return err
			}
		}
		if len(pieces) == 0 {
			return fmt.Errorf("merge asset %d: no pieces found in %s", id, a.Layout.Pieces)
		}
	}

	if err := os.MkdirAll(a.Layout.Assets, 0755); err != nil {
		return fmt.Errorf("create assets dir: %w", err)
	}

	scratchDir := filepath.Join(a.Layout.Pieces, "scratch")
	defer os.RemoveAll(scratchDir)

	normalized, err := a.normalizeAll(ctx, pieces, scratchDir, id)
	if err != nil {
		return fmt.Errorf("merge asset %d: %w", id, err)
	}
	if err := ffmpeg.Concat(ctx, normalized, outputPath, a.Media.FPS); err != nil {
		return fmt.Errorf("merge asset %d: %w", id, err)
	}

	slog.Info("asset merged", "path", outputPath, "pieces", len(pieces))
	return nil
}

// MergeArticle concatenates intro, the article title card, the named
// assets, and outro into <articles>/<articleID>.mp4. Intro and outro are
// optional; the title card is required. Missing assets are built from
// their pieces first.
func (a *Assembler) MergeArticle(ctx context.Context, articleID int, assetIDs []int) error {
	outputPath := filepath.Join(a.Layout.Articles, fmt.Sprintf("%d.mp4", articleID))
	if _, err := os.Stat(outputPath); err == nil {
		slog.Info("article already merged, skipping", "path", outputPath)
		return nil
	}

	var inputs []string

	introPath := filepath.Join(a.Layout.Articles, "intro", "intro.mp4")
	if _, err := os.Stat(introPath); err == nil {
		inputs = append(inputs, introPath)
	} else {
		slog.Warn("intro not found, proceeding without it", "path", introPath)
	}

	titlePath := filepath.Join(a.Layout.Articles, fmt.Sprintf("%d_0.mp4", articleID))
	present, err := a.awaitFile(ctx, titlePath, "article title card")
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf("merge article %d: title card %s is missing (run the title stage first)", articleID, titlePath)
	}
	inputs = append(inputs, titlePath)

	for _, assetID := range assetIDs {
		assetPath := filepath.Join(a.Layout.Assets, fmt.Sprintf("%d.mp4", assetID))
		if _, err := os.Stat(assetPath); os.IsNotExist(err) {
			slog.Info("asset missing, building from pieces", "asset", assetID)
			if err := a.MergeAsset(ctx, assetID); err != nil {
				return fmt.Errorf("merge article %d: %w", articleID, err)
			}
		}
		inputs = append(inputs, assetPath)
	}

	outroPath := filepath.Join(a.Layout.Articles, "outro", "outro.mp4")
	if _, err := os.Stat(outroPath); err == nil {
		inputs = append(inputs, outroPath)
	} else {
		slog.Warn("outro not found, proceeding without it", "path", outroPath)
	}

	scratchDir := filepath.Join(a.Layout.Pieces, "scratch")
	defer os.RemoveAll(scratchDir)

	normalized, err := a.normalizeAll(ctx, inputs, scratchDir, articleID)
	if err != nil {
		return fmt.Errorf("merge article %d: %w", articleID, err)
	}
	if err := ffmpeg.Concat(ctx, normalized, outputPath, a.Media.FPS); err != nil {
		return fmt.Errorf("merge article %d: %w", articleID, err)
	}

	slog.Info("article merged", "path", outputPath, "inputs", len(inputs))
	return nil
}
