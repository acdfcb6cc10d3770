package assemble

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"revoice/internal/config"
	"revoice/internal/picker"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"single", "7", []int{7}, false},
		{"list", "1,2,3", []int{1, 2, 3}, false},
		{"spaces tolerated", " 4 , 5 ", []int{4, 5}, false},
		{"empty", "", nil, true},
		{"blank", "   ", nil, true},
		{"zero rejected", "0", nil, true},
		{"negative rejected", "-3", nil, true},
		{"non-numeric", "a,2", nil, true},
		{"trailing comma", "1,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDs(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseIDs(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIDs(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("12"); err != nil || id != 12 {
		t.Errorf("ParseID(12) = (%d, %v)", id, err)
	}
	if _, err := ParseID("1,2"); err == nil {
		t.Error("ParseID should reject a list")
	}
	if _, err := ParseID("x"); err == nil {
		t.Error("ParseID should reject non-numeric input")
	}
}

func TestNew_ExpandsLayoutPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := config.Default()
	cfg.Layout.Recordings = "~/recordings"

	a := New(cfg, &picker.Scripted{})
	if want := filepath.Join(home, "recordings"); a.Layout.Recordings != want {
		t.Errorf("Recordings = %q, want %q", a.Layout.Recordings, want)
	}
	if a.Layout.Pieces != "./pieces" {
		t.Errorf("Pieces = %q, want untouched relative path", a.Layout.Pieces)
	}
}

func TestAwaitFile(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "here.mp4")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "gone.mp4")

	t.Run("existing file needs no prompt", func(t *testing.T) {
		a := &Assembler{Picker: &picker.Scripted{Confirms: []bool{false}}}
		ok, err := a.awaitFile(context.Background(), present, "piece")
		if err != nil || !ok {
			t.Errorf("awaitFile = (%v, %v), want (true, nil)", ok, err)
		}
	})

	t.Run("operator declines", func(t *testing.T) {
		a := &Assembler{Picker: &picker.Scripted{Confirms: []bool{false}}}
		ok, err := a.awaitFile(context.Background(), missing, "piece")
		if err != nil {
			t.Fatalf("awaitFile: %v", err)
		}
		if ok {
			t.Error("awaitFile = true for declined missing file")
		}
	})

	t.Run("confirm but still missing", func(t *testing.T) {
		a := &Assembler{Picker: &picker.Scripted{Confirms: []bool{true}}}
		ok, err := a.awaitFile(context.Background(), missing, "piece")
		if err != nil {
			t.Fatalf("awaitFile: %v", err)
		}
		if ok {
			t.Error("awaitFile = true for file absent after retry")
		}
	})
}
