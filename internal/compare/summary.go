package compare

import "fmt"

// Summary counts the report rows by change type.
type Summary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
}

// Summarize tallies a report. Pure counting; Total always equals the number
// of report rows.
func Summarize(report *Report) Summary {
	s := Summary{Total: len(report.Rows)}
	for _, row := range report.Rows {
		switch row.Change {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Modified:
			s.Modified++
		case Unchanged:
			s.Unchanged++
		}
	}
	return s
}

// Counts returns the non-zero tallies keyed by change type. Change types
// with no rows are absent from the map.
func (s Summary) Counts() map[ChangeType]int {
	counts := make(map[ChangeType]int)
	if s.Added > 0 {
		counts[Added] = s.Added
	}
	if s.Removed > 0 {
		counts[Removed] = s.Removed
	}
	if s.Modified > 0 {
		counts[Modified] = s.Modified
	}
	if s.Unchanged > 0 {
		counts[Unchanged] = s.Unchanged
	}
	return counts
}

// Changed reports whether any row differs between the two datasets.
func (s Summary) Changed() bool {
	return s.Added > 0 || s.Removed > 0 || s.Modified > 0
}

func (s Summary) String() string {
	return fmt.Sprintf("%d added, %d removed, %d modified, %d unchanged (%d total)",
		s.Added, s.Removed, s.Modified, s.Unchanged, s.Total)
}
