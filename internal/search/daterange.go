package search

import "time"

// DatePreset is a quick date-range choice for the newsapi date filters.
type DatePreset struct {
	Name string
	// Days back from today. 0 means today only, negative means clear.
	Days int
}

// DatePresets in display order.
var DatePresets = []DatePreset{
	{Name: "Clear", Days: -1},
	{Name: "Today", Days: 0},
	{Name: "3d", Days: 3},
	{Name: "7d", Days: 7},
	{Name: "30d", Days: 30},
}

// Range resolves the preset against now. The clear preset returns empty
// strings for both ends.
func (p DatePreset) Range(now time.Time) (from, to string) {
	if p.Days < 0 {
		return "", ""
	}
	to = now.Format("2006-01-02")
	from = now.AddDate(0, 0, -p.Days).Format("2006-01-02")
	return from, to
}
