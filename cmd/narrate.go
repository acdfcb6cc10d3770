package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"revoice/internal/config"
	"revoice/internal/picker"
	"revoice/internal/retry"
	"revoice/internal/schedule"
	"revoice/internal/stt"
	"revoice/internal/tts"
	"revoice/internal/worker"
)

var narrateCmd = &cobra.Command{
	Use:   "narrate [recording-name]",
	Short: "Replace a recording's audio with synthesized narration",
	Long: `Narrate transcribes a screen recording, opens the transcript in $EDITOR,
synthesizes one narration clip per sentence, re-times the clips onto a
single non-overlapping timeline, and muxes the result back onto the
video. Without arguments the most recent recording is used; -i shows an
interactive picker.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNarrate,
}

var (
	interactive    bool
	language       string
	voiceID        string
	driftPolicy    string
	maxGap         float64
	pauseThreshold float64
	minBuffer      float64
	saveJSON       bool
	noReview       bool
	sourceDir      string
	outputDir      string
)

func init() {
	defaults := config.Default()

	narrateCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick recordings interactively")
	narrateCmd.Flags().StringVarP(&language, "language", "l", defaults.Transcription.Language, "transcription language hint")
	narrateCmd.Flags().StringVar(&voiceID, "voice", "", "ElevenLabs voice ID (default from config)")
	narrateCmd.Flags().StringVar(&driftPolicy, "drift", defaults.Schedule.Drift, "clip re-timing policy: forward or strict")
	narrateCmd.Flags().Float64Var(&maxGap, "max-gap", defaults.Segmentation.MaxGap, "pause that starts a new segment group, in seconds")
	narrateCmd.Flags().Float64Var(&pauseThreshold, "pause-threshold", defaults.Segmentation.PauseThreshold, "pause that ends a sentence, in seconds")
	narrateCmd.Flags().Float64Var(&minBuffer, "min-buffer", defaults.Schedule.MinBuffer, "minimum silence between clips under forward drift, in seconds")
	narrateCmd.Flags().BoolVar(&saveJSON, "save-json", false, "keep transcript and segment JSON next to the output")
	narrateCmd.Flags().BoolVar(&noReview, "no-review", false, "skip playback review after muxing")
	narrateCmd.Flags().StringVar(&sourceDir, "source", "", "recordings directory (default from config)")
	narrateCmd.Flags().StringVar(&outputDir, "output", "", "output directory (default: pieces dir from config)")

	rootCmd.AddCommand(narrateCmd)
}

// recordingsByAge lists *.mp4 in dir, newest first.
func recordingsByAge(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.mp4"))
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		si, erri := os.Stat(matches[i])
		sj, errj := os.Stat(matches[j])
		if erri != nil || errj != nil {
			return matches[i] < matches[j]
		}
		return si.ModTime().After(sj.ModTime())
	})
	return matches, nil
}

func selectRecordings(pick picker.Picker, dir string, name string) ([]string, error) {
	if name != "" {
		path := filepath.Join(dir, name+".mp4")
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("recording not found: %s", path)
		}
		return []string{path}, nil
	}

	recordings, err := recordingsByAge(dir)
	if err != nil {
		return nil, err
	}
	if len(recordings) == 0 {
		return nil, fmt.Errorf("no recordings found in %s", dir)
	}

	if !interactive {
		slog.Info("using latest recording", "file", filepath.Base(recordings[0]))
		return recordings[:1], nil
	}

	names := make([]string, len(recordings))
	for i, r := range recordings {
		names[i] = filepath.Base(r)
	}
	chosen, err := pick.Select("Select recordings to narrate:", names)
	if err != nil {
		return nil, err
	}
	if len(chosen) == 0 {
		return nil, fmt.Errorf("no recordings selected")
	}

	sort.Strings(chosen)
	paths := make([]string, len(chosen))
	for i, name := range chosen {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

func runNarrate(cmd *cobra.Command, args []string) error {
	key, err := apiKey()
	if err != nil {
		return err
	}

	policy, err := schedule.ParseDriftPolicy(driftPolicy)
	if err != nil {
		return err
	}

	dir := sourceDir
	if dir == "" {
		dir = config.ExpandPath(cfg.Layout.Recordings)
	}
	outDir := outputDir
	if outDir == "" {
		outDir = config.ExpandPath(cfg.Layout.Pieces)
	}

	pick := picker.NewTerminal(os.Stdin, os.Stdout)

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	inputs, err := selectRecordings(pick, dir, name)
	if err != nil {
		return err
	}

	voice := voiceID
	if voice == "" {
		voice = cfg.Voice.VoiceID
	}

	ttsClient := tts.NewClient(key)
	ttsClient.VoiceID = voice
	ttsClient.ModelID = cfg.Voice.ModelID
	ttsClient.Stability = cfg.Voice.Stability
	ttsClient.SimilarityBoost = cfg.Voice.SimilarityBoost
	ttsClient.UseSpeakerBoost = cfg.Voice.UseSpeakerBoost

	sttService := &stt.Service{
		APIKey:           key,
		Language:         language,
		SplitDurationSec: cfg.Transcription.SplitDurationMin * 60,
		MaxConcurrent:    cfg.Transcription.MaxConcurrentChunks,
		RateLimitPerMin:  cfg.Transcription.APIRateLimitPerMin,
		Retry: retry.Policy{
			MaxAttempts: cfg.Transcription.MaxRetries,
			BaseDelay:   retry.Default().BaseDelay,
			Multiplier:  retry.Default().Multiplier,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		InputPaths:     inputs,
		OutputDir:      outDir,
		MaxGap:         maxGap,
		PauseThreshold: pauseThreshold,
		Schedule: schedule.Config{
			MinBuffer: minBuffer,
			Policy:    policy,
		},
		STT:        sttService,
		TTS:        ttsClient,
		Picker:     pick,
		SkipReview: noReview,
		SaveJSON:   saveJSON,
	}

	if err := worker.Run(ctx, opts); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
