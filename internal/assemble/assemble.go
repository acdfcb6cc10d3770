// Package assemble implements the asset/article assembly flows: title
// cards from still images, piece merging into assets, article
// concatenation, and background music.
package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"revoice/internal/config"
	"revoice/internal/picker"
)

// Assembler runs assembly flows over the configured directory layout.
type Assembler struct {
	Media  config.Media
	Layout config.Layout
	Picker picker.Picker
}

// New returns an assembler with expanded layout paths.
func New(cfg *config.Config, pick picker.Picker) *Assembler {
	layout := cfg.Layout
	layout.Recordings = config.ExpandPath(layout.Recordings)
	layout.Pieces = config.ExpandPath(layout.Pieces)
	layout.Assets = config.ExpandPath(layout.Assets)
	layout.Articles = config.ExpandPath(layout.Articles)
	layout.Background = config.ExpandPath(layout.Background)

	return &Assembler{
		Media:  cfg.Media,
		Layout: layout,
		Picker: pick,
	}
}

// ParseIDs parses a comma-separated list of positive numeric identifiers.
func ParseIDs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty ID list")
	}

	var ids []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		id, err := strconv.Atoi(field)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid ID %q: must be a positive number", field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseID parses a single positive numeric identifier, rejecting lists.
func ParseID(s string) (int, error) {
	if strings.Contains(s, ",") {
		return 0, fmt.Errorf("expected a single ID, got list %q", s)
	}
	ids, err := ParseIDs(s)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// awaitFile pauses for the operator to supply a missing file and retries
// once. Returns false when the file is still absent or the operator
// declines.
func (a *Assembler) awaitFile(ctx context.Context, path, what string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	}

	slog.Warn("missing "+what, "path", path)
	ok, err := a.Picker.Confirm(fmt.Sprintf("%s %s is missing. Add it and continue?", what, path))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, statErr := os.Stat(path)
	return statErr == nil, nil
}
