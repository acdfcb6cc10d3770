package assemble

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"revoice/internal/config"
)

func TestAssetPieces(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"3_0.mp4", "3_1.mp4", "3_2.mp4", "30_0.mp4", "4_0.mp4", "3_notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	a := &Assembler{Layout: config.Layout{Pieces: dir}}
	got, err := a.assetPieces(3)
	if err != nil {
		t.Fatalf("assetPieces: %v", err)
	}

	want := []string{
		filepath.Join(dir, "3_0.mp4"),
		filepath.Join(dir, "3_1.mp4"),
		filepath.Join(dir, "3_2.mp4"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("assetPieces = %v, want %v", got, want)
	}
}

func TestAssetPieces_Empty(t *testing.T) {
	a := &Assembler{Layout: config.Layout{Pieces: t.TempDir()}}
	got, err := a.assetPieces(9)
	if err != nil {
		t.Fatalf("assetPieces: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("assetPieces = %v, want none", got)
	}
}
