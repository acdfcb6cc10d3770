package picker

import "fmt"

// Scripted replays canned answers in order. Used by tests and
// non-interactive runs.
type Scripted struct {
	Selections [][]string
	Confirms   []bool
	Lines      []string

	selAt, confAt, lineAt int
}

func (s *Scripted) Select(prompt string, options []string) ([]string, error) {
	if s.selAt >= len(s.Selections) {
		return nil, fmt.Errorf("scripted picker: no selection for %q", prompt)
	}
	sel := s.Selections[s.selAt]
	s.selAt++
	return sel, nil
}

func (s *Scripted) Confirm(prompt string) (bool, error) {
	if s.confAt >= len(s.Confirms) {
		// Running past the script means "accept everything".
		return true, nil
	}
	ok := s.Confirms[s.confAt]
	s.confAt++
	return ok, nil
}

func (s *Scripted) Line(prompt string) (string, error) {
	if s.lineAt >= len(s.Lines) {
		return "", nil
	}
	line := s.Lines[s.lineAt]
	s.lineAt++
	return line, nil
}
