package dashboard

import (
	"sort"

	"github.com/leapstack-labs/launchdash/internal/launch"
)

// Pie slice labels for a single site.
const (
	LabelFail    = "Fail"
	LabelSuccess = "Success"
)

// siteOutcome is a (site, outcome) group key.
type siteOutcome struct {
	site    string
	outcome launch.Outcome
}

// outcomeCount is one row of the grouped count table.
type outcomeCount struct {
	siteOutcome
	count int
}

// countBySiteOutcome groups records by (site, outcome) and counts them.
// Only groups that occur are returned, ordered by site then outcome.
func countBySiteOutcome(t *launch.Table) []outcomeCount {
	counts := make(map[siteOutcome]int)
	t.Each(func(r launch.Record) {
		counts[siteOutcome{site: r.LaunchSite, outcome: r.Class}]++
	})

	out := make([]outcomeCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, outcomeCount{siteOutcome: k, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].site != out[j].site {
			return out[i].site < out[j].site
		}
		return out[i].outcome < out[j].outcome
	})
	return out
}

// SuccessPie builds the pie for the dropdown selection.
//
// For AllSites the slices are sites and the values their success counts;
// sites without a success have no slice. For a single site the slices are
// Fail and Success with that site's counts. An unknown site yields no slices.
func SuccessPie(d *Data, site string) Figure {
	groups := countBySiteOutcome(d.Dataset.Table)

	fig := Figure{Kind: KindPie, Palette: d.Palette}

	if site == AllSites {
		fig.Title = "Total Success Launches by Site"
		for _, g := range groups {
			if !g.outcome.IsSuccess() {
				continue
			}
			fig.Slices = append(fig.Slices, Slice{Label: g.site, Value: g.count})
		}
	} else {
		fig.Title = "Success vs. Failed Launches for " + site
		for _, g := range groups {
			if g.site != site {
				continue
			}
			fig.Slices = append(fig.Slices, Slice{Label: outcomeLabel(g.outcome), Value: g.count})
		}
	}

	for i := range fig.Slices {
		fig.Slices[i].Color = d.Palette.At(i)
	}

	return fig
}

func outcomeLabel(o launch.Outcome) string {
	if o.IsSuccess() {
		return LabelSuccess
	}
	return LabelFail
}
