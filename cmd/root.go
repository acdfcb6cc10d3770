package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"revoice/internal/config"
)

var (
	verbose bool
	quiet   bool
	cfgPath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "revoice",
	Short: "Turn screen recordings into narrated, edited videos",
	Long: `Revoice automates narrating a screen recording: it transcribes the
speech, lets you edit the transcript, synthesizes replacement narration
per sentence via ElevenLabs TTS, re-times the clips, and remuxes the
video. Separate subcommands assemble title cards, merge pieces into
assets and articles, and add background music.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		if err := godotenv.Load(); err == nil {
			slog.Debug(".env loaded")
		}

		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// apiKey returns the ElevenLabs API key from the environment.
func apiKey() (string, error) {
	key := os.Getenv("ELEVENLABS_API_KEY")
	if key == "" {
		return "", fmt.Errorf("ELEVENLABS_API_KEY is not set (export it or add it to .env)")
	}
	return key, nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: ./revoice.yaml when present)")
}
