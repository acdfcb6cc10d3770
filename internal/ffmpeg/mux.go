package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"revoice/internal/mixplan"
)

// MixNarration renders a narration mix plan to a single audio file.
func MixNarration(ctx context.Context, plan *mixplan.Plan, outputPath string) error {
	slog.Info("mixing narration clips", "clips", len(plan.Entries), "output", filepath.Base(outputPath))
	return run(ctx, plan.Args(outputPath)...)
}

// ReplaceAudio muxes a new audio track onto a video, copying the video
// stream.
func ReplaceAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	slog.Info("muxing narration onto video", "video", filepath.Base(videoPath))
	return run(ctx,
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-map", "0:v",
		"-map", "1:a",
		"-y", outputPath,
	)
}

// TitleCard renders a still image into a short silent video clip, scaled
// and padded to the target frame.
func TitleCard(ctx context.Context, imagePath, outputPath string, durationSec, fps, width, height int) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:-1:-1:color=black",
		width, height, width, height)
	return run(ctx,
		"-loop", "1",
		"-i", imagePath,
		"-f", "lavfi",
		"-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
		"-c:v", "libx264",
		"-t", strconv.Itoa(durationSec),
		"-r", strconv.Itoa(fps),
		"-vf", scale,
		"-c:a", "aac",
		"-shortest",
		"-y", outputPath,
	)
}

// AddBackground mixes a music track under a video's existing audio
// according to the background plan.
func AddBackground(ctx context.Context, videoPath, musicPath, outputPath string, plan mixplan.BackgroundPlan) error {
	slog.Info("adding background music",
		"video", filepath.Base(videoPath), "track", filepath.Base(musicPath))
	return run(ctx,
		"-i", videoPath,
		"-i", musicPath,
		"-filter_complex", plan.FilterComplex(),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-y", outputPath,
	)
}

// LeadInImage prepends a still image to a video with a crossfade
// transition, keeping the video's audio.
func LeadInImage(ctx context.Context, imagePath, videoPath, outputPath string, width, height int, cross mixplan.CrossfadePlan) error {
	filter := fmt.Sprintf("[0:v]scale=%d:%d[v0];[v0][1:v]%s[outv]", width, height, cross.Filter())
	return run(ctx,
		"-loop", "1",
		"-i", imagePath,
		"-i", videoPath,
		"-filter_complex", filter,
		"-map", "[outv]",
		"-map", "1:a",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-y", outputPath,
	)
}

// CrossfadeConcat joins two videos with a crossfade transition, keeping
// the first video's audio.
func CrossfadeConcat(ctx context.Context, firstPath, secondPath, outputPath string, cross mixplan.CrossfadePlan) error {
	filter := fmt.Sprintf("[0:v][1:v]%s[outv]", cross.Filter())
	return run(ctx,
		"-i", firstPath,
		"-i", secondPath,
		"-filter_complex", filter,
		"-map", "[outv]",
		"-map", "0:a",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-y", outputPath,
	)
}

// hasAudioStream reports whether the file carries at least one audio
// stream.
func hasAudioStream(ctx context.Context, path string) bool {
	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-i", path,
		"-show_streams",
		"-select_streams", "a",
		"-loglevel", "error",
	)
	out, err := cmd.Output()
	return err == nil && len(out) > 0
}

// Normalize re-encodes a video to a uniform frame size, frame rate, and
// stereo AAC audio so clips can be concatenated losslessly. Videos with
// no audio get a silent stereo track.
func Normalize(ctx context.Context, inputPath, outputPath string, width, height, fps int) error {
	slog.Info("normalizing video", "input", filepath.Base(inputPath))

	vf := fmt.Sprintf("scale=%d:%d,fps=%d,setpts=PTS-STARTPTS", width, height, fps)
	args := []string{
		"-y",
		"-i", inputPath,
	}

	if !hasAudioStream(ctx, inputPath) {
		args = append(args,
			"-f", "lavfi",
			"-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
			"-shortest",
		)
	}

	args = append(args,
		"-vf", vf,
		"-c:v", "libx264",
		"-r", strconv.Itoa(fps),
		"-pix_fmt", "yuv420p",
		"-af", "aresample=44100,asetpts=PTS-STARTPTS",
		"-c:a", "aac",
		"-ac", "2",
		"-ar", "44100",
		outputPath,
	)
	return run(ctx, args...)
}

// Concat merges already-normalized videos into one output with the concat
// filter. A single input is copied through.
func Concat(ctx context.Context, inputs []string, outputPath string, fps int) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no videos to concatenate")
	}
	if len(inputs) == 1 {
		return run(ctx, "-y", "-i", inputs[0], "-c", "copy", outputPath)
	}

	args := []string{"-y"}
	filter := ""
	for i, in := range inputs {
		args = append(args, "-i", in)
		filter += fmt.Sprintf("[%d:v][%d:a]", i, i)
	}
	filter += fmt.Sprintf("concat=n=%d:v=1:a=1[v][a]", len(inputs))

	args = append(args,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", "libx264",
		"-r", strconv.Itoa(fps),
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-ac", "2",
		"-ar", "44100",
		outputPath,
	)
	return run(ctx, args...)
}

// Play opens a video in a local player and waits for it to exit.
func Play(ctx context.Context, path string) error {
	if _, err := exec.LookPath("mpv"); err == nil {
		return exec.CommandContext(ctx, "mpv", path).Run()
	}

	var opener string
	switch runtime.GOOS {
	case "darwin":
		opener = "open"
	case "linux":
		opener = "xdg-open"
	default:
		return fmt.Errorf("no video player available on %s", runtime.GOOS)
	}
	if err := exec.CommandContext(ctx, opener, path).Run(); err != nil {
		return fmt.Errorf("play video: %w", err)
	}
	return nil
}
