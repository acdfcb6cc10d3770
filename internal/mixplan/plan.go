package mixplan

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"revoice/internal/schedule"
)

// ErrEmptyPlan is returned when there is nothing to mix. The caller must
// treat "nothing to narrate" as a terminal condition, not mux zero inputs.
var ErrEmptyPlan = errors.New("mix plan: no clips to mix")

// Entry pairs one input clip with its delay offset in milliseconds. Entry
// order is delay-channel order.
type Entry struct {
	Path    string
	DelayMS int
}

// Plan is a declarative description of the narration mix: one delayed
// input stream per clip, summed with normalization disabled so perceived
// loudness does not depend on how many clips overlap.
type Plan struct {
	Entries []Entry

	// Duration is a lower bound on the mixed track's length: the largest
	// delay offset plus its clip's duration.
	Duration float64
}

// Build converts scheduled clips into a mix plan, assigning each clip the
// delay channel matching its input order.
func Build(clips []schedule.Clip) (*Plan, error) {
	if len(clips) == 0 {
		return nil, ErrEmptyPlan
	}

	plan := &Plan{Entries: make([]Entry, 0, len(clips))}
	for _, c := range clips {
		plan.Entries = append(plan.Entries, Entry{
			Path:    c.Path,
			DelayMS: int(math.Round(c.PlannedStart * 1000)),
		})
		if end := c.End(); end > plan.Duration {
			plan.Duration = end
		}
	}
	return plan, nil
}

// FilterComplex renders the adelay/amix filter graph for the muxer.
func (p *Plan) FilterComplex() string {
	parts := make([]string, 0, len(p.Entries)+1)
	var labels strings.Builder

	for i, e := range p.Entries {
		parts = append(parts, fmt.Sprintf("[%d:a]adelay=%d:all=1[a%d]", i, e.DelayMS, i))
		fmt.Fprintf(&labels, "[a%d]", i)
	}
	parts = append(parts, fmt.Sprintf("%samix=inputs=%d:normalize=0[aout]",
		labels.String(), len(p.Entries)))

	return strings.Join(parts, ";")
}

// Args returns the complete ffmpeg argument list that renders the mix to
// outputPath.
func (p *Plan) Args(outputPath string) []string {
	args := make([]string, 0, 2*len(p.Entries)+6)
	for _, e := range p.Entries {
		args = append(args, "-i", e.Path)
	}
	return append(args,
		"-filter_complex", p.FilterComplex(),
		"-map", "[aout]",
		"-y", outputPath,
	)
}
