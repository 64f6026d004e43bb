package reservation

import "strings"

// FilterSlots keeps slots whose start time is in times and whose type is in
// types. Times are "HH:MM" or "HH:MM:SS"; types compare case-insensitively.
// An empty filter matches everything. Order is preserved.
func FilterSlots(slots []Slot, times, types []string) []Slot {
	times = NormalizeTimes(times)
	var out []Slot
	for _, s := range slots {
		if isSlotMatch(s, times, types) {
			out = append(out, s)
		}
	}
	return out
}

func isSlotMatch(s Slot, times, types []string) bool {
	isTimeMatch := len(times) == 0
	for _, t := range times {
		if t == s.StartTime() {
			isTimeMatch = true
			break
		}
	}
	isTypeMatch := len(types) == 0
	for _, rt := range types {
		if strings.EqualFold(strings.TrimSpace(rt), s.Type) {
			isTypeMatch = true
			break
		}
	}
	return isTimeMatch && isTypeMatch
}

// NormalizeTimes trims entries, drops blanks and pads "HH:MM" to "HH:MM:00".
func NormalizeTimes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if len(t) == 5 && strings.Count(t, ":") == 1 {
			t = t + ":00"
		}
		out = append(out, t)
	}
	return out
}

func SplitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
