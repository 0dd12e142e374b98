package availability

// clock holds a local wall time (hour and minute).
type clock struct {
	H int
	M int
}

func (c clock) minutes() int {
	return c.H*60 + c.M
}

func clockFromMinutes(total int) clock {
	return clock{H: total / 60, M: total % 60}
}

// WindowPolicy decides which availability windows of a weekday feed the
// slot list.
type WindowPolicy int

const (
	// WindowPolicyFirst honors only the first window matching the weekday.
	WindowPolicyFirst WindowPolicy = iota
	// WindowPolicyUnion merges the slots of every matching window.
	WindowPolicyUnion
)

func (p WindowPolicy) String() string {
	switch p {
	case WindowPolicyUnion:
		return "union"
	default:
		return "first"
	}
}
