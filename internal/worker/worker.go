package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"revoice/internal/ffmpeg"
	"revoice/internal/mixplan"
	"revoice/internal/picker"
	"revoice/internal/schedule"
	"revoice/internal/stt"
	"revoice/internal/transcript"
	"revoice/internal/tts"
)

// Options configures the narration pipeline.
type Options struct {
	InputPaths []string
	OutputDir  string

	MaxGap         float64
	PauseThreshold float64
	Schedule       schedule.Config

	STT *stt.Service
	TTS *tts.Client

	Picker picker.Picker

	// SkipReview disables the playback/approve loop after muxing.
	SkipReview bool
	// SaveJSON keeps the transcript and final-segment JSON next to the
	// output video instead of discarding them with the workspace.
	SaveJSON bool
}

// Run processes the queued videos one at a time. A failure aborts that
// video only; the remaining queue is still processed, and the joined
// errors are returned at the end.
func Run(ctx context.Context, opts Options) error {
	if len(opts.InputPaths) == 0 {
		return fmt.Errorf("no input videos")
	}

	var errs []error
	for i, path := range opts.InputPaths {
		slog.Info("processing video",
			"video", fmt.Sprintf("%d/%d", i+1, len(opts.InputPaths)),
			"file", filepath.Base(path))

		if err := processVideo(ctx, opts, path); err != nil {
			slog.Error("video failed", "file", filepath.Base(path), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			if ctx.Err() != nil {
				break
			}
		}
	}
	return errors.Join(errs...)
}

// processVideo runs the full narration pipeline for one recording inside
// a scoped workspace that is removed on every exit path.
func processVideo(ctx context.Context, opts Options, videoPath string) error {
	workDir, err := os.MkdirTemp("", "revoice-*")
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	// Transcribe.
	segments, _, err := opts.STT.TranscribeFile(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("transcription: no speech segments found")
	}

	// Hand the transcript to the operator.
	transcriptPath := filepath.Join(workDir, "transcript.json")
	if err := transcript.SaveSegments(transcriptPath, segments); err != nil {
		return fmt.Errorf("edit step: %w", err)
	}
	if err := transcript.OpenInEditor(ctx, transcriptPath); err != nil {
		return fmt.Errorf("edit step: %w", err)
	}

	finalVideo, err := narrateLoop(ctx, opts, videoPath, workDir, transcriptPath)
	if err != nil {
		return err
	}

	return finalize(opts, videoPath, workDir, transcriptPath, finalVideo)
}

// narrateLoop builds the narrated video and, unless review is skipped,
// lets the operator re-edit the transcript and rebuild until satisfied.
func narrateLoop(ctx context.Context, opts Options, videoPath, workDir, transcriptPath string) (string, error) {
	for {
		finalVideo, err := buildNarrated(ctx, opts, videoPath, workDir, transcriptPath)
		if err != nil {
			return "", err
		}

		if opts.SkipReview {
			return finalVideo, nil
		}

		if err := ffmpeg.Play(ctx, finalVideo); err != nil {
			slog.Warn("cannot play video for review", "err", err)
		}

		ok, err := opts.Picker.Confirm("Keep this narration? (n re-opens the transcript)")
		if err != nil {
			return "", fmt.Errorf("review: %w", err)
		}
		if ok {
			return finalVideo, nil
		}

		if err := transcript.OpenInEditor(ctx, transcriptPath); err != nil {
			return "", fmt.Errorf("edit step: %w", err)
		}
	}
}

// buildNarrated performs one pass: parse the edited transcript, segment
// it, synthesize narration, schedule, mix, and mux.
func buildNarrated(ctx context.Context, opts Options, videoPath, workDir, transcriptPath string) (string, error) {
	segments, err := transcript.LoadSegments(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("edit step: %w", err)
	}

	groups := transcript.GroupByPause(segments, opts.MaxGap)
	units := transcript.SentenceUnits(groups, opts.PauseThreshold)
	if len(units) == 0 {
		return "", fmt.Errorf("segmentation: no sentence units in edited transcript")
	}

	unitsPath := filepath.Join(workDir, "final_segments.json")
	if err := transcript.SaveUnits(unitsPath, units); err != nil {
		return "", fmt.Errorf("segmentation: %w", err)
	}
	slog.Info("transcript segmented", "groups", len(groups), "sentences", len(units))

	synth := &clipSynthesizer{client: opts.TTS, dir: workDir}
	clips, err := schedule.Schedule(ctx, units, synth, opts.Schedule)
	if err != nil {
		return "", fmt.Errorf("synthesis: %w", err)
	}

	plan, err := mixplan.Build(clips)
	if err != nil {
		return "", fmt.Errorf("mix plan: %w", err)
	}

	audioPath := filepath.Join(workDir, "narration.mp3")
	if err := ffmpeg.MixNarration(ctx, plan, audioPath); err != nil {
		return "", fmt.Errorf("mix: %w", err)
	}

	finalVideo := filepath.Join(workDir, "narrated_"+filepath.Base(videoPath))
	if err := ffmpeg.ReplaceAudio(ctx, videoPath, audioPath, finalVideo); err != nil {
		return "", fmt.Errorf("mux: %w", err)
	}

	return finalVideo, nil
}

// finalize moves the narrated video out of the workspace, letting the
// operator rename it first.
func finalize(opts Options, videoPath, workDir, transcriptPath, finalVideo string) error {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	name := filepath.Base(videoPath)
	if !opts.SkipReview {
		line, err := opts.Picker.Line(fmt.Sprintf("Save as %q, or enter a new name (without extension):", name))
		if err != nil {
			return fmt.Errorf("finalize: %w", err)
		}
		if line != "" {
			name = line + ".mp4"
		}
	}

	outputPath := filepath.Join(opts.OutputDir, name)
	if err := moveFile(finalVideo, outputPath); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	slog.Info("narrated video saved", "path", outputPath)

	if opts.SaveJSON {
		base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
		for src, dst := range map[string]string{
			transcriptPath: base + ".transcript.json",
			filepath.Join(workDir, "final_segments.json"): base + ".segments.json",
		} {
			if err := copyFile(src, dst); err != nil {
				slog.Warn("cannot keep JSON", "file", filepath.Base(dst), "err", err)
			}
		}
	}
	return nil
}

// moveFile renames, falling back to copy+remove across filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
