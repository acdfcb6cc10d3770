package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"
	defaultVoiceID = "TX3LPaxmHKxFdv7VOQHJ"
	defaultModelID = "eleven_multilingual_v2"
	requestTimeout = 2 * time.Minute
)

// Client calls the ElevenLabs text-to-speech API. One request per
// sentence, issued serially by the caller.
type Client struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string

	// Voice settings sent with every request.
	Stability       float64
	SimilarityBoost float64
	UseSpeakerBoost bool

	httpClient *http.Client
}

// NewClient returns a client with the default voice and settings.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:          apiKey,
		VoiceID:         defaultVoiceID,
		ModelID:         defaultModelID,
		BaseURL:         defaultBaseURL,
		Stability:       0.4,
		SimilarityBoost: 1,
		UseSpeakerBoost: false,
		httpClient:      &http.Client{Timeout: requestTimeout},
	}
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize posts the sentence text and returns the raw MP3 bytes. The
// clip's duration is unknown until the audio is probed.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: c.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       c.Stability,
			SimilarityBoost: c.SimilarityBoost,
			UseSpeakerBoost: c.UseSpeakerBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal TTS request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/"+c.VoiceID, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create TTS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read TTS response: %w", err)
	}
	return audio, nil
}
