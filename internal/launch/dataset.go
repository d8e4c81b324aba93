package launch

import (
	"slices"
)

// Dataset is a loaded table plus the scalars the dashboard derives from it.
type Dataset struct {
	Table      *Table
	MinPayload float64
	MaxPayload float64

	// Sites is the sorted list of distinct launch sites.
	Sites []string

	// Source is the path the dataset was loaded from, if any.
	Source string
}

// NewDataset derives payload bounds and the site list from a table.
func NewDataset(table *Table) (*Dataset, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrNoRecords
	}

	ds := &Dataset{Table: table}
	seen := make(map[string]struct{})
	for i, r := range table.records {
		if i == 0 || r.PayloadMassKg < ds.MinPayload {
			ds.MinPayload = r.PayloadMassKg
		}
		if i == 0 || r.PayloadMassKg > ds.MaxPayload {
			ds.MaxPayload = r.PayloadMassKg
		}
		if _, ok := seen[r.LaunchSite]; !ok {
			seen[r.LaunchSite] = struct{}{}
			ds.Sites = append(ds.Sites, r.LaunchSite)
		}
	}
	slices.Sort(ds.Sites)

	return ds, nil
}

// HasSite reports whether site appears in the dataset.
func (d *Dataset) HasSite(site string) bool {
	_, found := slices.BinarySearch(d.Sites, site)
	return found
}
