package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"revoice/internal/ffmpeg"
	"revoice/internal/tts"
)

// clipSynthesizer adapts the TTS client to the scheduler: it writes each
// synthesized sentence into the workspace and probes the clip for its
// duration, which is unknown until synthesis returns.
type clipSynthesizer struct {
	client *tts.Client
	dir    string
	n      int
}

func (s *clipSynthesizer) Synthesize(ctx context.Context, text string) (string, float64, error) {
	audio, err := s.client.Synthesize(ctx, text)
	if err != nil {
		return "", 0, err
	}

	s.n++
	path := filepath.Join(s.dir, fmt.Sprintf("tts_%03d.mp3", s.n))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", 0, fmt.Errorf("write clip: %w", err)
	}

	duration, err := ffmpeg.Duration(ctx, path)
	if err != nil {
		return "", 0, fmt.Errorf("probe clip: %w", err)
	}

	slog.Debug("sentence synthesized", "clip", filepath.Base(path), "duration_sec", duration)
	return path, duration, nil
}
