package output

import (
	"sort"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// Highlight points out the solved simulation whose final value owes the most
// to interest.
type Highlight struct {
	EntryName     string
	FinalValue    float64
	InterestShare float64
}

// AnalyzeEntries picks the entry with the largest interest share of its final
// value. Failed entries and entries without a trajectory are ignored; ties
// keep report order.
func AnalyzeEntries(report *domain.Report) Highlight {
	type ranked struct {
		name  string
		final float64
		share float64
	}
	var ranks []ranked
	for _, e := range report.Entries {
		if e.Failed() || e.Breakdown.FinalValue == 0 {
			continue
		}
		ranks = append(ranks, ranked{e.Name, e.Breakdown.FinalValue, e.Breakdown.InterestShare()})
	}
	if len(ranks) == 0 {
		return Highlight{}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].share > ranks[j].share })
	best := ranks[0]
	return Highlight{EntryName: best.name, FinalValue: best.final, InterestShare: best.share}
}
