package stt

import (
	"reflect"
	"testing"

	"revoice/internal/transcript"
)

func word(text string, start, end float64) Word {
	return Word{Text: text, Start: start, End: end, Type: "word"}
}

func spacing() Word {
	return Word{Text: " ", Type: "spacing"}
}

func TestSegments_SplitsOnTerminalPunctuation(t *testing.T) {
	res := &Result{Words: []Word{
		word("Hello", 0.0, 0.4),
		spacing(),
		word("world.", 0.5, 0.9),
		spacing(),
		word("Next", 1.0, 1.3),
		spacing(),
		word("part.", 1.4, 1.8),
	}}

	want := []transcript.Segment{
		{Start: 0.0, End: 0.9, Text: "Hello world."},
		{Start: 1.0, End: 1.8, Text: "Next part."},
	}
	if got := Segments(res); !reflect.DeepEqual(got, want) {
		t.Errorf("Segments = %v, want %v", got, want)
	}
}

func TestSegments_SplitsOnLongPause(t *testing.T) {
	res := &Result{Words: []Word{
		word("one", 0.0, 0.3),
		spacing(),
		word("two", 1.2, 1.5), // 0.9s pause, >= wordGap
		spacing(),
		word("three", 1.6, 1.9),
	}}

	want := []transcript.Segment{
		{Start: 0.0, End: 0.3, Text: "one"},
		{Start: 1.2, End: 1.9, Text: "two three"},
	}
	if got := Segments(res); !reflect.DeepEqual(got, want) {
		t.Errorf("Segments = %v, want %v", got, want)
	}
}

func TestSegments_ShortPauseStaysJoined(t *testing.T) {
	res := &Result{Words: []Word{
		word("one", 0.0, 0.3),
		spacing(),
		word("two", 1.0, 1.3), // 0.7s pause, below wordGap
	}}

	got := Segments(res)
	if len(got) != 1 || got[0].Text != "one two" {
		t.Errorf("Segments = %v, want one joined segment", got)
	}
}

func TestSegments_DropsAudioEvents(t *testing.T) {
	res := &Result{Words: []Word{
		word("speech", 0.0, 0.5),
		{Text: "(laughs)", Start: 0.6, End: 1.0, Type: "audio_event"},
		spacing(),
		word("continues.", 1.05, 1.4),
	}}

	got := Segments(res)
	if len(got) != 1 {
		t.Fatalf("Segments = %v, want 1 segment", got)
	}
	if got[0].Text != "speech continues." {
		t.Errorf("Text = %q, want audio event dropped", got[0].Text)
	}
	if got[0].End != 1.4 {
		t.Errorf("End = %v, want 1.4", got[0].End)
	}
}

func TestSegments_LeadingSpacingIgnored(t *testing.T) {
	res := &Result{Words: []Word{
		spacing(),
		word("word.", 0.2, 0.6),
	}}

	want := []transcript.Segment{{Start: 0.2, End: 0.6, Text: "word."}}
	if got := Segments(res); !reflect.DeepEqual(got, want) {
		t.Errorf("Segments = %v, want %v", got, want)
	}
}

func TestSegments_Empty(t *testing.T) {
	if got := Segments(&Result{}); got != nil {
		t.Errorf("Segments(empty) = %v, want nil", got)
	}
}

func TestEndsSentence(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"done.", true},
		{"really?", true},
		{"go!", true},
		{"middle", false},
		{"trailing. ", true},
		{"", false},
		{"  ", false},
	}
	for _, tt := range tests {
		if got := endsSentence(tt.text); got != tt.want {
			t.Errorf("endsSentence(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
