package transcript

// GroupByPause partitions segments into groups of consecutive segments whose
// inter-segment gap is below maxGap seconds. A gap of maxGap or more always
// starts a new group. The gap is measured against the last element of the
// growing group, so a long group can form from many small consecutive gaps
// even when its total span is large.
func GroupByPause(segments []Segment, maxGap float64) []Group {
	if len(segments) == 0 {
		return nil
	}

	var groups []Group
	current := Group{segments[0]}

	for _, seg := range segments[1:] {
		if seg.Start-current[len(current)-1].End < maxGap {
			current = append(current, seg)
		} else {
			groups = append(groups, current)
			current = Group{seg}
		}
	}

	return append(groups, current)
}
