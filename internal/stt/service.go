package stt

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"revoice/internal/ffmpeg"
	"revoice/internal/retry"
	"revoice/internal/transcript"
)

// Service is the transcription collaborator. Long recordings are split
// into chunks and transcribed with bounded concurrency; callers see a
// single ordered segment sequence either way.
type Service struct {
	APIKey   string
	Language string

	SplitDurationSec int
	MaxConcurrent    int
	RateLimitPerMin  int
	NoAsync          bool
	Retry            retry.Policy
}

// applyTimeOffset adds an offset (in seconds) to all word timestamps,
// rounding to millisecond precision.
func applyTimeOffset(words []Word, offsetSec float64) {
	for i := range words {
		words[i].Start = math.Round((words[i].Start+offsetSec)*1000) / 1000
		words[i].End = math.Round((words[i].End+offsetSec)*1000) / 1000
	}
}

// TranscribeFile transcribes a local audio/video file into ordered timed
// segments, plus the raw word-level result for persistence.
func (s *Service) TranscribeFile(ctx context.Context, inputPath string) ([]transcript.Segment, *Result, error) {
	info := ffmpeg.LogMediaInfo(ctx, inputPath)
	duration := 0.0
	if info != nil {
		duration = info.Duration
	}

	workingPath := inputPath

	// Extract audio from video before upload when ffmpeg is around.
	ext := filepath.Ext(inputPath)
	if ffmpeg.IsVideoExtension(ext) && ffmpeg.Available() {
		base := strings.TrimSuffix(filepath.Base(inputPath), ext)
		tempAudio := filepath.Join(os.TempDir(), "revoice_audio_"+base+".m4a")
		slog.Info("extracting audio from video")
		if err := ffmpeg.ExtractAudio(ctx, inputPath, tempAudio); err != nil {
			return nil, nil, fmt.Errorf("extract audio: %w", err)
		}
		workingPath = tempAudio
		defer os.Remove(tempAudio)
	}

	var combined *Result

	if duration > float64(s.SplitDurationSec) && s.SplitDurationSec > 0 && ffmpeg.Available() {
		slog.Info("recording exceeds split threshold, splitting",
			"duration_min", int(duration/60), "threshold_min", s.SplitDurationSec/60)

		chunks, err := ffmpeg.SplitAudio(ctx, workingPath, filepath.Dir(workingPath), s.SplitDurationSec)
		if err != nil {
			return nil, nil, fmt.Errorf("split audio: %w", err)
		}
		defer cleanupChunks(chunks)

		slog.Info("split into chunks", "count", len(chunks))

		if !s.NoAsync && len(chunks) > 1 {
			combined, err = s.transcribeConcurrent(ctx, chunks)
		} else {
			combined, err = s.transcribeSequential(ctx, chunks)
		}
		if err != nil {
			return nil, nil, err
		}
	} else {
		slog.Info("transcribing as a single file")
		result, err := s.transcribeWithProgress(ctx, workingPath)
		if err != nil {
			return nil, nil, fmt.Errorf("transcribe: %w", err)
		}
		combined = result
	}

	if combined == nil || (len(combined.Words) == 0 && combined.Text == "") {
		return nil, nil, fmt.Errorf("empty transcript received")
	}

	return Segments(combined), combined, nil
}

func (s *Service) transcribeWithProgress(ctx context.Context, path string) (*Result, error) {
	progress := func(read, total int64) {
		pct := 0.0
		if total > 0 {
			pct = math.Min(float64(read)/float64(total)*100, 100)
		}
		slog.Debug("upload progress", "percent", fmt.Sprintf("%.1f%%", pct))
	}

	var result *Result
	err := s.Retry.Do(ctx, func(ctx context.Context) error {
		r, err := s.Transcribe(ctx, path, progress)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}

// transcribeSequential processes chunks one at a time, applying time
// offsets so the merged transcript stays on the original timeline.
func (s *Service) transcribeSequential(ctx context.Context, chunks []string) (*Result, error) {
	var combined *Result

	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Info("transcribing chunk",
			"chunk", fmt.Sprintf("%d/%d", i+1, len(chunks)),
			"file", filepath.Base(chunk))

		result, err := s.transcribeWithProgress(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d failed: %w", i+1, len(chunks), err)
		}

		if i > 0 {
			applyTimeOffset(result.Words, float64(i*s.SplitDurationSec))
		}

		if combined == nil {
			combined = result
		} else {
			combined.Words = append(combined.Words, result.Words...)
			if combined.Text != "" {
				combined.Text += " "
			}
			combined.Text += result.Text
		}
	}

	return combined, nil
}

func cleanupChunks(chunks []string) {
	for _, chunk := range chunks {
		if err := os.Remove(chunk); err != nil && !os.IsNotExist(err) {
			slog.Debug("cleanup chunk", "file", filepath.Base(chunk), "err", err)
		}
	}
	slog.Debug("temp chunk cleanup complete")
}
