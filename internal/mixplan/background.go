package mixplan

import "fmt"

// BackgroundPlan describes laying a music bed under a finished video: the
// track is trimmed to the video's length, faded in and out over
// FadeDuration seconds, attenuated to Volume, and mixed with the video's
// own audio without normalization.
type BackgroundPlan struct {
	VideoDuration float64
	FadeDuration  float64
	Volume        float64
}

// FilterComplex renders the background-music filter graph. Input 0 is the
// video, input 1 the music track.
func (p BackgroundPlan) FilterComplex() string {
	fadeOut := p.VideoDuration - p.FadeDuration
	if fadeOut < 0 {
		fadeOut = 0
	}
	return fmt.Sprintf(
		"[0:a]volume=1[a0];"+
			"[1:a]atrim=duration=%.3f,afade=t=in:st=0:d=%.3f,afade=t=out:st=%.3f:d=%.3f,volume=%.3f[a1];"+
			"[a0][a1]amix=inputs=2:normalize=0[aout]",
		p.VideoDuration, p.FadeDuration, fadeOut, p.FadeDuration, p.Volume)
}

// CrossfadePlan describes joining two video streams with a named xfade
// transition. Offset is where in the first stream the transition begins.
type CrossfadePlan struct {
	Transition string
	Duration   float64
	Offset     float64
}

// Filter renders the xfade filter for two already-labeled video streams.
func (p CrossfadePlan) Filter() string {
	return fmt.Sprintf("xfade=transition=%s:duration=%g:offset=%g",
		p.Transition, p.Duration, p.Offset)
}
