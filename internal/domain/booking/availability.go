package booking

import "sort"

// SlotStride is the fixed spacing between candidate start times.
const SlotStride = 30

// ComputeSlots walks the working window in SlotStride steps and drops every
// candidate that matches a confirmed start time or falls inside a block.
// The result is ascending.
func ComputeSlots(work Window, booked []Clock, blocks []Window) []Clock {
	taken := make(map[Clock]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	slots := []Clock{}
	for c := work.Start; c < work.End && c < minutesPerDay; c = c.Add(SlotStride) {
		if _, ok := taken[c]; ok {
			continue
		}
		if blocked(c, blocks) {
			continue
		}
		slots = append(slots, c)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

func blocked(c Clock, blocks []Window) bool {
	for _, w := range blocks {
		if w.Contains(c) {
			return true
		}
	}
	return false
}

func FormatSlots(slots []Clock) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
