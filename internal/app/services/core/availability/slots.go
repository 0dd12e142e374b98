package availability

import (
	"clinicroom-service/internal/pkg/constvars"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// parseClock accepts HH:MM or HH:MM:SS; seconds are ignored.
func parseClock(s string) (clock, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return clock{}, false
	}
	return clock{H: h, M: m}, true
}

func formatClock(c clock) string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}

// NormalizeTime truncates a time of day to HH:MM. Unparsable input is
// returned trimmed so it still compares verbatim.
func NormalizeTime(value string) string {
	c, ok := parseClock(value)
	if !ok {
		return strings.TrimSpace(value)
	}
	return formatClock(c)
}

// GenerateSlots lists every 30 minute point from start to end, both
// included. A start after end, or unparsable input, yields no slots.
func GenerateSlots(start, end string) []string {
	from, ok1 := parseClock(start)
	to, ok2 := parseClock(end)
	if !ok1 || !ok2 || from.minutes() > to.minutes() {
		return []string{}
	}

	out := make([]string, 0, (to.minutes()-from.minutes())/constvars.SlotStepMinutes+1)
	for t := from.minutes(); t <= to.minutes(); t += constvars.SlotStepMinutes {
		out = append(out, formatClock(clockFromMinutes(t)))
	}
	return out
}

// mergeSlots returns the sorted union of several slot lists.
func mergeSlots(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
