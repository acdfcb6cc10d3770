package schedule

import (
	"context"
	"fmt"

	"revoice/internal/transcript"
)

// DriftPolicy selects how planned starts react to synthesized clip
// durations that differ from the original speech pacing.
type DriftPolicy int

const (
	// DriftForward pushes each clip past the previous clip's scheduled end
	// plus a minimum buffer, so clips never overlap. When synthesis runs
	// long the timeline drifts forward cumulatively; later clips do not
	// catch up.
	DriftForward DriftPolicy = iota

	// StrictStart places every clip exactly at its unit's original start
	// and accepts overlap when a prior clip overruns.
	StrictStart
)

// ParseDriftPolicy maps the CLI/config spelling to a policy.
func ParseDriftPolicy(s string) (DriftPolicy, error) {
	switch s {
	case "forward", "":
		return DriftForward, nil
	case "strict":
		return StrictStart, nil
	}
	return DriftForward, fmt.Errorf("unknown drift policy %q (want forward or strict)", s)
}

// Config carries the scheduling knobs. MinBuffer only matters under
// DriftForward.
type Config struct {
	MinBuffer float64
	Policy    DriftPolicy
}

// Clip is one synthesized narration clip placed on the output timeline.
// Immutable once created; Duration is known only after synthesis returns.
type Clip struct {
	PlannedStart float64
	Duration     float64
	Text         string
	Path         string
}

// End returns the end of the clip's occupied interval.
func (c Clip) End() float64 {
	return c.PlannedStart + c.Duration
}

// Synthesizer produces one audio clip for a sentence. The clip's duration
// is unknown until the call returns.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (path string, duration float64, err error)
}

// Schedule synthesizes each unit in order and assigns it a playback slot.
// Calls are issued serially; a synthesis failure aborts the remaining
// units rather than attempting partial completion.
func Schedule(ctx context.Context, units []transcript.SentenceUnit, synth Synthesizer, cfg Config) ([]Clip, error) {
	var clips []Clip
	prevEnd := 0.0

	for i, unit := range units {
		path, duration, err := synth.Synthesize(ctx, unit.Text)
		if err != nil {
			return nil, fmt.Errorf("synthesize sentence %d/%d: %w", i+1, len(units), err)
		}

		start := unit.Start
		if cfg.Policy == DriftForward && i > 0 {
			if pushed := prevEnd + cfg.MinBuffer; pushed > start {
				start = pushed
			}
		}

		clips = append(clips, Clip{
			PlannedStart: start,
			Duration:     duration,
			Text:         unit.Text,
			Path:         path,
		})
		prevEnd = start + duration
	}

	return clips, nil
}
