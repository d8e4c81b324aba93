package dashboard

// AllSites is the dropdown value selecting every launch site.
const AllSites = "All"

// SiteOption is one entry of the launch site dropdown.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions returns the dropdown entries: All first, then each site in order.
func SiteOptions(sites []string) []SiteOption {
	opts := make([]SiteOption, 0, len(sites)+1)
	opts = append(opts, SiteOption{Label: AllSites, Value: AllSites})
	for _, s := range sites {
		opts = append(opts, SiteOption{Label: s, Value: s})
	}
	return opts
}

// IsValidSite reports whether site is one of the dropdown values.
func (d *Data) IsValidSite(site string) bool {
	for _, o := range d.Options {
		if o.Value == site {
			return true
		}
	}
	return false
}
