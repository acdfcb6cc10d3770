package stt

import (
	"strings"
	"unicode/utf8"

	"revoice/internal/transcript"
)

// wordGap is the inter-word pause that closes a segment even without
// terminal punctuation.
const wordGap = 0.8

// Segments folds the word-level transcript into timed segments: words
// accumulate until one ends a sentence or the pause to the next word is
// long. Spacing tokens contribute text only; audio events are dropped.
func Segments(res *Result) []transcript.Segment {
	var segments []transcript.Segment

	var b strings.Builder
	var start, end float64
	open := false

	flush := func() {
		if !open {
			return
		}
		segments = append(segments, transcript.Segment{
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(b.String()),
		})
		b.Reset()
		open = false
	}

	words := res.Words
	for i, w := range words {
		if w.Type == "audio_event" {
			continue
		}
		if w.Type == "spacing" {
			if open {
				b.WriteString(w.Text)
			}
			continue
		}

		if !open {
			start = w.Start
			open = true
		}
		b.WriteString(w.Text)
		end = w.End

		if endsSentence(w.Text) {
			flush()
			continue
		}
		if next, ok := nextWord(words, i); ok && next.Start-w.End >= wordGap {
			flush()
		}
	}
	flush()

	return segments
}

func nextWord(words []Word, after int) (Word, bool) {
	for _, w := range words[after+1:] {
		if w.Type == "word" {
			return w, true
		}
	}
	return Word{}, false
}

func endsSentence(text string) bool {
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
