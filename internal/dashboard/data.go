// Package dashboard holds the filter-and-aggregate handlers behind the
// dashboard controls. Every handler is a pure function of its inputs and
// an explicit read-only Data value; none of them mutate the launch table.
package dashboard

import (
	"sync/atomic"

	"github.com/leapstack-labs/launchdash/internal/launch"
)

// Data is the read-only context every handler receives.
type Data struct {
	Dataset *launch.Dataset

	// Options is the dropdown enumeration, built once from Dataset.Sites.
	Options []SiteOption

	// Palette colors pie slices in order, cycling when exhausted.
	Palette Palette

	// InclusiveBounds makes the payload filter keep records equal to the bounds.
	InclusiveBounds bool
}

// Option configures Data.
type Option func(*Data)

// WithInclusiveBounds sets whether payload range bounds are inclusive.
func WithInclusiveBounds(inclusive bool) Option {
	return func(d *Data) { d.InclusiveBounds = inclusive }
}

// WithPalette overrides the pie palette.
func WithPalette(p Palette) Option {
	return func(d *Data) {
		if len(p) > 0 {
			d.Palette = p
		}
	}
}

// NewData builds the handler context for a loaded dataset.
func NewData(ds *launch.Dataset, opts ...Option) *Data {
	d := &Data{
		Dataset: ds,
		Options: SiteOptions(ds.Sites),
		Palette: Aggrnyl,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FullRange returns the payload range covering the whole dataset.
func (d *Data) FullRange() PayloadRange {
	return PayloadRange{Low: d.Dataset.MinPayload, High: d.Dataset.MaxPayload}
}

// Store holds the current Data snapshot. Snapshots are replaced whole,
// never modified, so readers need no locking.
type Store struct {
	current atomic.Pointer[Data]
}

// NewStore returns a store holding d.
func NewStore(d *Data) *Store {
	s := &Store{}
	s.current.Store(d)
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() *Data {
	return s.current.Load()
}

// Swap installs d and returns the previous snapshot.
func (s *Store) Swap(d *Data) *Data {
	return s.current.Swap(d)
}
