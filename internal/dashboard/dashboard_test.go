package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/launch"
)

func newTestData(t *testing.T, opts []Option, records ...launch.Record) *Data {
	t.Helper()
	ds, err := launch.NewDataset(launch.NewTableFromRecords(records...))
	require.NoError(t, err)
	return NewData(ds, opts...)
}

func exampleRecords() []launch.Record {
	return []launch.Record{
		{LaunchSite: "SiteA", PayloadMassKg: 500, Class: launch.Success},
		{LaunchSite: "SiteA", PayloadMassKg: 1200, Class: launch.Failure},
		{LaunchSite: "SiteB", PayloadMassKg: 800, Class: launch.Success},
	}
}

func sliceMap(f Figure) map[string]int {
	m := make(map[string]int, len(f.Slices))
	for _, s := range f.Slices {
		m[s.Label] = s.Value
	}
	return m
}

func loadFixture(t *testing.T, opts ...Option) *Data {
	t.Helper()
	ds, err := launch.Load(context.Background(), launch.Config{Path: "../launch/testdata/spacex_launch_dash.csv"})
	require.NoError(t, err)
	return NewData(ds, opts...)
}

func TestSuccessPie_Example(t *testing.T) {
	d := newTestData(t, nil, exampleRecords()...)

	all := SuccessPie(d, AllSites)
	assert.Equal(t, KindPie, all.Kind)
	assert.Equal(t, map[string]int{"SiteA": 1, "SiteB": 1}, sliceMap(all))

	siteA := SuccessPie(d, "SiteA")
	assert.Equal(t, map[string]int{LabelSuccess: 1, LabelFail: 1}, sliceMap(siteA))
	require.Len(t, siteA.Slices, 2)
	assert.Equal(t, LabelFail, siteA.Slices[0].Label, "Fail sorts before Success")
}

func TestSuccessPie_SitePropertySumsToSiteCount(t *testing.T) {
	d := loadFixture(t)

	perSite := make(map[string]int)
	d.Dataset.Table.Each(func(r launch.Record) { perSite[r.LaunchSite]++ })

	for _, site := range d.Dataset.Sites {
		fig := SuccessPie(d, site)
		assert.Equal(t, perSite[site], fig.Total(), "site %s", site)
	}
}

func TestSuccessPie_AllSumsToTotalSuccesses(t *testing.T) {
	d := loadFixture(t)

	successes := 0
	d.Dataset.Table.Each(func(r launch.Record) {
		if r.Class.IsSuccess() {
			successes++
		}
	})

	fig := SuccessPie(d, AllSites)
	assert.Equal(t, successes, fig.Total())
	assert.Equal(t, 5, fig.Total())

	labels := make([]string, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"CCAFS LC-40", "CCAFS SLC-40", "KSC LC-39A", "VAFB SLC-4E"}, labels)
}

func TestSuccessPie_ZeroSuccessSiteHasNoSlice(t *testing.T) {
	d := newTestData(t, nil,
		launch.Record{LaunchSite: "Good", PayloadMassKg: 1, Class: launch.Success},
		launch.Record{LaunchSite: "Bad", PayloadMassKg: 2, Class: launch.Failure},
	)

	fig := SuccessPie(d, AllSites)
	assert.Equal(t, map[string]int{"Good": 1}, sliceMap(fig))

	bad := SuccessPie(d, "Bad")
	assert.Equal(t, map[string]int{LabelFail: 1}, sliceMap(bad))
}

func TestSuccessPie_UnknownSite(t *testing.T) {
	d := newTestData(t, nil, exampleRecords()...)

	fig := SuccessPie(d, "Boca Chica")
	assert.Empty(t, fig.Slices)
	assert.True(t, fig.Empty())
}

func TestSuccessPie_ColorsCyclePalette(t *testing.T) {
	d := newTestData(t, []Option{WithPalette(Palette{"#111111", "#222222"})},
		launch.Record{LaunchSite: "A", Class: launch.Success},
		launch.Record{LaunchSite: "B", Class: launch.Success},
		launch.Record{LaunchSite: "C", Class: launch.Success},
	)

	fig := SuccessPie(d, AllSites)
	require.Len(t, fig.Slices, 3)
	assert.Equal(t, "#111111", fig.Slices[0].Color)
	assert.Equal(t, "#222222", fig.Slices[1].Color)
	assert.Equal(t, "#111111", fig.Slices[2].Color)
}

func TestPayloadScatter_Example(t *testing.T) {
	d := newTestData(t, nil, exampleRecords()...)

	text, fig := PayloadScatter(d, PayloadRange{Low: 0, High: 1000})
	assert.Equal(t, "(0, 1000)", text)
	assert.Equal(t, KindScatter, fig.Kind)
	assert.Equal(t, ScatterTitle, fig.Title)
	assert.Equal(t, PayloadAxis, fig.XAxisTitle)
	assert.Equal(t, OutcomeAxis, fig.YAxisTitle)
	assert.Equal(t, []Point{{X: 500, Y: LabelYes}, {X: 800, Y: LabelYes}}, fig.Points)
}

func TestPayloadScatter_PointsWithinOpenRange(t *testing.T) {
	d := loadFixture(t)

	ranges := []PayloadRange{
		{Low: 0, High: 9600},
		{Low: 500, High: 5300},
		{Low: 2000, High: 2500},
		{Low: 525, High: 526},
	}

	for _, r := range ranges {
		text, fig := PayloadScatter(d, r)
		assert.Equal(t, r.String(), text)
		for _, p := range fig.Points {
			assert.Greater(t, p.X, r.Low, "range %s", text)
			assert.Less(t, p.X, r.High, "range %s", text)
		}
	}
}

// The bounds of the full range exclude the extreme records unless
// inclusive bounds are configured.
func TestPayloadScatter_FullRangeBoundaries(t *testing.T) {
	exclusive := loadFixture(t)
	_, fig := PayloadScatter(exclusive, exclusive.FullRange())
	// Two records at 0 kg and one at 9600 kg sit on the bounds.
	assert.Len(t, fig.Points, exclusive.Dataset.Table.Len()-3)

	inclusive := loadFixture(t, WithInclusiveBounds(true))
	_, fig = PayloadScatter(inclusive, inclusive.FullRange())
	assert.Len(t, fig.Points, inclusive.Dataset.Table.Len())
}

func TestPayloadScatter_ReversedRangeIsEmpty(t *testing.T) {
	d := newTestData(t, nil, exampleRecords()...)

	text, fig := PayloadScatter(d, PayloadRange{Low: 2000, High: 100})
	assert.Equal(t, "(2000, 100)", text)
	assert.Empty(t, fig.Points)
	assert.True(t, fig.Empty())
}

func TestPayloadScatter_DoesNotMutateTable(t *testing.T) {
	d := newTestData(t, nil, exampleRecords()...)
	before := d.Dataset.Table.Records()

	_, _ = PayloadScatter(d, PayloadRange{Low: 0, High: 700})
	_ = SuccessPie(d, "SiteA")

	assert.Equal(t, before, d.Dataset.Table.Records())
}

func TestPayloadRange_String(t *testing.T) {
	tests := []struct {
		r    PayloadRange
		want string
	}{
		{PayloadRange{Low: 0, High: 9600}, "(0, 9600)"},
		{PayloadRange{Low: 2500.5, High: 7500}, "(2500.5, 7500)"},
		{PayloadRange{Low: -1, High: 0}, "(-1, 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.String())
		})
	}
}

func TestPayloadRange_Clamp(t *testing.T) {
	r := PayloadRange{Low: -100, High: 20000}.Clamp(0, 9600)
	assert.Equal(t, PayloadRange{Low: 0, High: 9600}, r)

	r = PayloadRange{Low: 3000, High: 1000}.Clamp(0, 9600)
	assert.Equal(t, PayloadRange{Low: 3000, High: 1000}, r)
}

func TestSiteOptions(t *testing.T) {
	opts := SiteOptions([]string{"KSC LC-39A", "VAFB SLC-4E"})
	assert.Equal(t, []SiteOption{
		{Label: "All", Value: "All"},
		{Label: "KSC LC-39A", Value: "KSC LC-39A"},
		{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
	}, opts)

	d := newTestData(t, nil, exampleRecords()...)
	assert.True(t, d.IsValidSite(AllSites))
	assert.True(t, d.IsValidSite("SiteB"))
	assert.False(t, d.IsValidSite("SiteC"))
}

func TestStore_Swap(t *testing.T) {
	first := newTestData(t, nil, exampleRecords()...)
	second := newTestData(t, nil, launch.Record{LaunchSite: "Only", PayloadMassKg: 1, Class: launch.Success})

	s := NewStore(first)
	assert.Same(t, first, s.Load())

	prev := s.Swap(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, s.Load())
}
