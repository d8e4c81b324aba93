package dashboard

import (
	"strconv"

	"github.com/leapstack-labs/launchdash/internal/launch"
)

// Scatter labels.
const (
	LabelNo  = "No"
	LabelYes = "Yes"

	ScatterTitle = "Success vs Payload"
	PayloadAxis  = "Payload Mass (kg)"
	OutcomeAxis  = "Success"
)

// PayloadRange is the slider selection [Low, High].
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether payload lies within the range. Without
// inclusive the bounds themselves are excluded.
func (r PayloadRange) Contains(payload float64, inclusive bool) bool {
	if inclusive {
		return payload >= r.Low && payload <= r.High
	}
	return payload > r.Low && payload < r.High
}

// String renders the range as "(low, high)".
func (r PayloadRange) String() string {
	return "(" + formatNumber(r.Low) + ", " + formatNumber(r.High) + ")"
}

// Clamp limits the range to [min, max]. A reversed range is left reversed.
func (r PayloadRange) Clamp(minimum, maximum float64) PayloadRange {
	return PayloadRange{
		Low:  min(max(r.Low, minimum), maximum),
		High: min(max(r.High, minimum), maximum),
	}
}

// PayloadScatter filters records to the selected payload range and returns
// the range echo text together with the payload vs. outcome scatter.
// A reversed range is not an error; it selects nothing.
func PayloadScatter(d *Data, r PayloadRange) (string, Figure) {
	filtered := d.Dataset.Table.Filter(func(rec launch.Record) bool {
		return r.Contains(rec.PayloadMassKg, d.InclusiveBounds)
	})

	fig := Figure{
		Kind:       KindScatter,
		Title:      ScatterTitle,
		XAxisTitle: PayloadAxis,
		YAxisTitle: OutcomeAxis,
		Categories: []string{LabelNo, LabelYes},
		Palette:    Palette{PointColor},
		Points:     make([]Point, 0, filtered.Len()),
	}
	filtered.Each(func(rec launch.Record) {
		fig.Points = append(fig.Points, Point{X: rec.PayloadMassKg, Y: yesNo(rec.Class)})
	})

	return r.String(), fig
}

func yesNo(o launch.Outcome) string {
	if o.IsSuccess() {
		return LabelYes
	}
	return LabelNo
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
