package transcript

import (
	"strings"
	"unicode/utf8"
)

// SplitSentences merges a group's segments into sentence units. A sentence
// ends at segment i when its trimmed text ends with terminal punctuation,
// when i is the group's last segment, or when the gap to segment i+1 is at
// least pauseThreshold seconds. Each unit takes the start of its first
// constituent, the end of its last, and the space-joined trimmed texts.
func SplitSentences(group Group, pauseThreshold float64) []SentenceUnit {
	var units []SentenceUnit
	var pending []Segment

	for i, seg := range group {
		pending = append(pending, seg)

		ends := endsWithTerminalPunct(seg.Text)
		if i == len(group)-1 {
			ends = true
		} else if group[i+1].Start-seg.End >= pauseThreshold {
			ends = true
		}
		if !ends {
			continue
		}

		parts := make([]string, 0, len(pending))
		for _, s := range pending {
			parts = append(parts, strings.TrimSpace(s.Text))
		}
		units = append(units, SentenceUnit{
			Start: pending[0].Start,
			End:   pending[len(pending)-1].End,
			Text:  strings.Join(parts, " "),
		})
		pending = nil
	}

	return units
}

// SentenceUnits runs SplitSentences over every group in order and flattens
// the results.
func SentenceUnits(groups []Group, pauseThreshold float64) []SentenceUnit {
	var units []SentenceUnit
	for _, g := range groups {
		units = append(units, SplitSentences(g, pauseThreshold)...)
	}
	return units
}

// endsWithTerminalPunct reports whether the trimmed text ends with a
// sentence-terminating punctuation mark. Empty text never does.
func endsWithTerminalPunct(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	switch r, _ := utf8.DecodeLastRuneInString(text); r {
	case '.', '!', '?':
		return true
	}
	return false
}
