package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"revoice/internal/ffmpeg"
	"revoice/internal/mixplan"
)

// pickTrack returns the background track whose duration most tightly
// covers the video; tracks shorter than the video are rejected.
func (a *Assembler) pickTrack(ctx context.Context, videoDuration float64) (string, error) {
	entries, err := os.ReadDir(a.Layout.Background)
	if err != nil {
		return "", fmt.Errorf("read background dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".mp3") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	best := ""
	minDiff := math.Inf(1)
	for _, name := range names {
		path := filepath.Join(a.Layout.Background, name)
		duration, err := ffmpeg.Duration(ctx, path)
		if err != nil {
			slog.Warn("cannot probe background track", "track", name, "err", err)
			continue
		}
		if duration >= videoDuration && duration-videoDuration < minDiff {
			minDiff = duration - videoDuration
			best = path
		}
	}

	if best == "" {
		return "", fmt.Errorf("no background track of at least %.0fs found in %s (add longer tracks and retry)",
			videoDuration, a.Layout.Background)
	}
	return best, nil
}

// AddMusic lays a background track under the article video with fade
// in/out at low volume. trackID 0 selects the nearest-longer track
// automatically.
func (a *Assembler) AddMusic(ctx context.Context, articleID, trackID int) error {
	videoPath := filepath.Join(a.Layout.Articles, fmt.Sprintf("%d.mp4", articleID))
	present, err := a.awaitFile(ctx, videoPath, "article video")
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf("background music: article video %s is missing", videoPath)
	}

	videoDuration, err := ffmpeg.Duration(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("background music: %w", err)
	}

	var trackPath string
	if trackID > 0 {
		trackPath = filepath.Join(a.Layout.Background, fmt.Sprintf("%d.mp3", trackID))
		present, err := a.awaitFile(ctx, trackPath, "background track")
		if err != nil {
			return err
		}
		if !present {
			return fmt.Errorf("background music: track %s is missing", trackPath)
		}
		trackDuration, err := ffmpeg.Duration(ctx, trackPath)
		if err != nil {
			return fmt.Errorf("background music: %w", err)
		}
		if trackDuration < videoDuration {
			return fmt.Errorf("background music: track %d is shorter than the video (%.0fs < %.0fs), pick another",
				trackID, trackDuration, videoDuration)
		}
	} else {
		trackPath, err = a.pickTrack(ctx, videoDuration)
		if err != nil {
			return err
		}
	}

	plan := mixplan.BackgroundPlan{
		VideoDuration: videoDuration,
		FadeDuration:  a.Media.BackgroundFadeSec,
		Volume:        a.Media.BackgroundVolume,
	}

	outputPath := filepath.Join(a.Layout.Articles, fmt.Sprintf("%d_with_bg.mp4", articleID))
	if err := ffmpeg.AddBackground(ctx, videoPath, trackPath, outputPath, plan); err != nil {
		return fmt.Errorf("background music: %w", err)
	}

	slog.Info("background music added", "path", outputPath, "track", filepath.Base(trackPath))
	return nil
}
