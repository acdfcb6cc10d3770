package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// SaveSegments writes segments as an indented JSON array, the form the
// operator edits by hand.
func SaveSegments(path string, segments []Segment) error {
	data, err := json.MarshalIndent(segments, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSegments re-reads the full segment array after editing. The edited
// file replaces the in-memory sequence entirely; a malformed file is a
// parse error, not a partial recovery.
func LoadSegments(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var segments []Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("parse edited transcript: %w", err)
	}
	return segments, nil
}

// SaveUnits writes sentence units in the same editable JSON form, for
// inspection alongside the transcript.
func SaveUnits(path string, units []SentenceUnit) error {
	data, err := json.MarshalIndent(units, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal sentence units: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// OpenInEditor runs the operator's $EDITOR on path and waits for it to
// exit. This is an unbounded human-paced wait.
func OpenInEditor(ctx context.Context, path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", editor, err)
	}
	return nil
}
