package config

// Segmentation holds the pause heuristics for transcript processing.
type Segmentation struct {
	// MaxGap is the inter-segment pause that starts a new group.
	MaxGap float64 `yaml:"max_gap"`
	// PauseThreshold is the pause that ends a sentence inside a group.
	PauseThreshold float64 `yaml:"pause_threshold"`
}

// Schedule holds the clip re-timing knobs.
type Schedule struct {
	// MinBuffer is the minimum silence kept between consecutive clips
	// under the forward-drift policy.
	MinBuffer float64 `yaml:"min_buffer"`
	// Drift is "forward" (push clips to avoid overlap) or "strict"
	// (place clips at their original starts, overlap allowed).
	Drift string `yaml:"drift"`
}

// Voice holds the text-to-speech voice configuration.
type Voice struct {
	VoiceID         string  `yaml:"voice_id"`
	ModelID         string  `yaml:"model_id"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
	UseSpeakerBoost bool    `yaml:"use_speaker_boost"`
}

// Transcription holds the speech-to-text collaborator settings.
type Transcription struct {
	Language            string `yaml:"language"`
	SplitDurationMin    int    `yaml:"split_duration_min"`
	MaxConcurrentChunks int    `yaml:"max_concurrent_chunks"`
	MaxRetries          int    `yaml:"max_retries"`
	APIRateLimitPerMin  int    `yaml:"api_rate_limit_per_min"`
}

// Media holds frame and mixing parameters for the assembled videos.
type Media struct {
	Width                int     `yaml:"width"`
	Height               int     `yaml:"height"`
	FPS                  int     `yaml:"fps"`
	TitleDurationSec     int     `yaml:"title_duration_sec"`
	BackgroundVolume     float64 `yaml:"background_volume"`
	BackgroundFadeSec    float64 `yaml:"background_fade_sec"`
	CrossfadeTransition  string  `yaml:"crossfade_transition"`
	CrossfadeDurationSec float64 `yaml:"crossfade_duration_sec"`
	CrossfadeOffsetSec   float64 `yaml:"crossfade_offset_sec"`
}

// Layout maps the working directories the assembly flows read and write.
type Layout struct {
	Recordings string `yaml:"recordings"`
	Pieces     string `yaml:"pieces"`
	Assets     string `yaml:"assets"`
	Articles   string `yaml:"articles"`
	Background string `yaml:"background"`
}

// Config is the full application configuration.
type Config struct {
	Segmentation  Segmentation  `yaml:"segmentation"`
	Schedule      Schedule      `yaml:"schedule"`
	Voice         Voice         `yaml:"voice"`
	Transcription Transcription `yaml:"transcription"`
	Media         Media         `yaml:"media"`
	Layout        Layout        `yaml:"layout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Segmentation: Segmentation{
			MaxGap:         0.5,
			PauseThreshold: 2.0,
		},
		Schedule: Schedule{
			MinBuffer: 0.2,
			Drift:     "forward",
		},
		Voice: Voice{
			VoiceID:         "TX3LPaxmHKxFdv7VOQHJ",
			ModelID:         "eleven_multilingual_v2",
			Stability:       0.4,
			SimilarityBoost: 1,
			UseSpeakerBoost: false,
		},
		Transcription: Transcription{
			Language:            "en",
			SplitDurationMin:    90,
			MaxConcurrentChunks: 3,
			MaxRetries:          3,
			APIRateLimitPerMin:  30,
		},
		Media: Media{
			Width:                1920,
			Height:               1080,
			FPS:                  60,
			TitleDurationSec:     2,
			BackgroundVolume:     0.07,
			BackgroundFadeSec:    5,
			CrossfadeTransition:  "fadegrays",
			CrossfadeDurationSec: 1,
			CrossfadeOffsetSec:   4,
		},
		Layout: Layout{
			Recordings: "~/screen-studio",
			Pieces:     "./pieces",
			Assets:     "./assets",
			Articles:   "./articles",
			Background: "./bg",
		},
	}
}
