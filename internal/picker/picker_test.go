package picker

import (
	"reflect"
	"strings"
	"testing"
)

func TestTerminal_Select(t *testing.T) {
	options := []string{"alpha", "beta", "gamma"}

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"single", "2\n", []string{"beta"}, false},
		{"multiple in option order", "3,1\n", []string{"alpha", "gamma"}, false},
		{"spaces tolerated", " 1 , 2 \n", []string{"alpha", "beta"}, false},
		{"duplicates collapse", "2,2\n", []string{"beta"}, false},
		{"empty declines", "\n", nil, false},
		{"zero is out of range", "0\n", nil, true},
		{"past end", "4\n", nil, true},
		{"not a number", "beta\n", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			term := NewTerminal(strings.NewReader(tt.input), &out)

			got, err := term.Select("pick:", options)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Select = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminal_SelectPrintsNumberedOptions(t *testing.T) {
	var out strings.Builder
	term := NewTerminal(strings.NewReader("1\n"), &out)
	if _, err := term.Select("pick one:", []string{"first", "second"}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	for _, want := range []string{"pick one:", "1) first", "2) second"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestTerminal_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"no\n", false},
		{"whatever\n", false},
	}

	for _, tt := range tests {
		var out strings.Builder
		term := NewTerminal(strings.NewReader(tt.input), &out)
		got, err := term.Confirm("proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTerminal_Line(t *testing.T) {
	var out strings.Builder
	term := NewTerminal(strings.NewReader("  my-video.mp4  \n"), &out)
	got, err := term.Line("name:")
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if got != "my-video.mp4" {
		t.Errorf("Line = %q, want trimmed input", got)
	}
}

func TestScripted_ReplaysInOrder(t *testing.T) {
	s := &Scripted{
		Selections: [][]string{{"a"}, {"b", "c"}},
		Confirms:   []bool{false, true},
		Lines:      []string{"first"},
	}

	if sel, _ := s.Select("", nil); !reflect.DeepEqual(sel, []string{"a"}) {
		t.Errorf("first Select = %v", sel)
	}
	if sel, _ := s.Select("", nil); !reflect.DeepEqual(sel, []string{"b", "c"}) {
		t.Errorf("second Select = %v", sel)
	}
	if _, err := s.Select("", nil); err == nil {
		t.Error("expected error past scripted selections")
	}

	if ok, _ := s.Confirm(""); ok {
		t.Error("first Confirm should be false")
	}
	if ok, _ := s.Confirm(""); !ok {
		t.Error("second Confirm should be true")
	}
	// Past the script, confirmations default to yes.
	if ok, _ := s.Confirm(""); !ok {
		t.Error("Confirm past script should default true")
	}

	if line, _ := s.Line(""); line != "first" {
		t.Errorf("Line = %q", line)
	}
	if line, _ := s.Line(""); line != "" {
		t.Errorf("Line past script = %q, want empty", line)
	}
}
