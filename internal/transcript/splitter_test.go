package transcript

import (
	"reflect"
	"testing"
)

func TestSplitSentences_PunctuationAndLastInGroup(t *testing.T) {
	group := Group{
		{Start: 0, End: 1, Text: "Hello"},
		{Start: 1.2, End: 2, Text: "world."},
		{Start: 2.1, End: 3, Text: "Next"},
	}

	units := SplitSentences(group, 2.0)
	want := []SentenceUnit{
		{Start: 0, End: 2, Text: "Hello world."},
		{Start: 2.1, End: 3, Text: "Next"},
	}
	if !reflect.DeepEqual(units, want) {
		t.Errorf("units = %v, want %v", units, want)
	}
}

func TestSplitSentences_LastUnitEndsAtGroupEnd(t *testing.T) {
	for _, group := range []Group{
		{{Start: 0, End: 1, Text: "no punctuation"}},
		{{Start: 0, End: 1, Text: "one."}, {Start: 1.1, End: 2.5, Text: "trailing"}},
		{{Start: 0, End: 3.25, Text: "ends here"}},
	} {
		units := SplitSentences(group, 2.0)
		if len(units) == 0 {
			t.Fatalf("no units for group %v", group)
		}
		last := units[len(units)-1]
		if last.End != group[len(group)-1].End {
			t.Errorf("last unit ends at %v, want group end %v", last.End, group[len(group)-1].End)
		}
	}
}

func TestSplitSentences_PauseEndsSentence(t *testing.T) {
	group := Group{
		{Start: 0, End: 1, Text: "before pause"},
		{Start: 3.0, End: 4, Text: "after pause"},
	}

	units := SplitSentences(group, 2.0)
	if len(units) != 2 {
		t.Fatalf("expected 2 units around a >=2s pause, got %d", len(units))
	}
	if units[0].Text != "before pause" || units[1].Text != "after pause" {
		t.Errorf("unit texts = %q, %q", units[0].Text, units[1].Text)
	}
}

func TestSplitSentences_PauseBelowThresholdMerges(t *testing.T) {
	group := Group{
		{Start: 0, End: 1, Text: "first"},
		{Start: 2.9, End: 4, Text: "second"},
	}

	units := SplitSentences(group, 2.0)
	if len(units) != 1 {
		t.Fatalf("expected 1 unit for a 1.9s pause, got %d", len(units))
	}
	if units[0].Text != "first second" {
		t.Errorf("unit text = %q, want 'first second'", units[0].Text)
	}
}

func TestSplitSentences_ExclamationAndQuestionEndSentences(t *testing.T) {
	group := Group{
		{Start: 0, End: 1, Text: "Really!"},
		{Start: 1.1, End: 2, Text: "Sure?"},
		{Start: 2.1, End: 3, Text: "Okay"},
	}

	units := SplitSentences(group, 2.0)
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
}

func TestSplitSentences_EmptyTextNeverTriggersPunctuation(t *testing.T) {
	// The empty segment relies on the pause or last-in-group rules, and
	// its (empty) contribution is still joined into a unit.
	group := Group{
		{Start: 0, End: 1, Text: "word"},
		{Start: 1.1, End: 2, Text: ""},
	}

	units := SplitSentences(group, 2.0)
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Text != "word " {
		t.Errorf("unit text = %q, want 'word '", units[0].Text)
	}
	if units[0].End != 2 {
		t.Errorf("unit end = %v, want 2", units[0].End)
	}
}

func TestSplitSentences_TrimsTextsWhenJoining(t *testing.T) {
	group := Group{
		{Start: 0, End: 1, Text: "  padded "},
		{Start: 1.1, End: 2, Text: " text. "},
	}

	units := SplitSentences(group, 2.0)
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Text != "padded text." {
		t.Errorf("unit text = %q, want 'padded text.'", units[0].Text)
	}
}

func TestSentenceUnits_FlattensGroupsInOrder(t *testing.T) {
	groups := []Group{
		{{Start: 0, End: 1, Text: "First."}},
		{{Start: 5, End: 6, Text: "Second."}},
	}

	units := SentenceUnits(groups, 2.0)
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].Text != "First." || units[1].Text != "Second." {
		t.Errorf("unit texts = %q, %q", units[0].Text, units[1].Text)
	}
}
