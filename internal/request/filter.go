package request

// Selector names one dashboard tab.
type Selector string

const (
	SelectAll      Selector = "all"
	SelectPending  Selector = "pending"
	SelectApproved Selector = "approve"
	SelectRejected Selector = "rejected"
	SelectExpired  Selector = "expired"
)

// Selectors lists the tabs in display order.
func Selectors() []Selector {
	return []Selector{SelectAll, SelectPending, SelectApproved, SelectRejected, SelectExpired}
}

// ParseSelector validates a user-supplied tab name.
func ParseSelector(s string) (Selector, bool) {
	switch Selector(s) {
	case SelectAll, SelectPending, SelectApproved, SelectRejected, SelectExpired:
		return Selector(s), true
	}
	return "", false
}

func matches(sel Selector, st DisplayStatus) bool {
	return sel == SelectAll || string(sel) == string(st)
}

// Filter returns the rows matching the selector, preserving relative order.
// Rows carry already-derived statuses; nothing is re-derived or re-sorted.
func Filter(rows []Row, sel Selector) []Row {
	if sel == SelectAll {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}
	var out []Row
	for _, row := range rows {
		if matches(sel, row.Derived.Status) {
			out = append(out, row)
		}
	}
	return out
}

// Counts tallies each tab over the same derived rows, so tab counts and
// displayed rows are consistent at a single instant.
func Counts(rows []Row) map[Selector]int {
	counts := map[Selector]int{
		SelectAll:      len(rows),
		SelectPending:  0,
		SelectApproved: 0,
		SelectRejected: 0,
		SelectExpired:  0,
	}
	for _, row := range rows {
		switch row.Derived.Status {
		case StatusPending:
			counts[SelectPending]++
		case StatusApproved:
			counts[SelectApproved]++
		case StatusRejected:
			counts[SelectRejected]++
		case StatusExpired:
			counts[SelectExpired]++
		}
	}
	return counts
}
