// Package zonecache memoizes zone validity and offset lookups in front of a
// tzconvert.Provider. Zone rules never change for the life of a process, so
// entries are never invalidated; size bounds are the only eviction.
package zonecache

import (
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/maypok86/otter/v2/stats"

	"github.com/codeGROOVE-dev/tzplan/pkg/constants"
	"github.com/codeGROOVE-dev/tzplan/pkg/tzconvert"
)

// offsetKey buckets instants by minute; offsets below minute precision are not tracked.
type offsetKey struct {
	zone   string
	minute int64
}

type offsetEntry struct {
	minutes int
	ok      bool
}

// Provider is a read-through cache implementing tzconvert.Provider.
type Provider struct {
	next        tzconvert.Provider
	logger      *slog.Logger
	valid       *otter.Cache[string, bool]
	offsets     *otter.Cache[offsetKey, offsetEntry]
	validStats  *stats.Counter
	offsetStats *stats.Counter
}

// Option configures a Provider.
type Option func(*options)

type options struct {
	zones   int
	offsets int
}

// WithZoneCapacity bounds the number of cached validity results.
func WithZoneCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.zones = n
		}
	}
}

// WithOffsetCapacity bounds the number of cached offset results.
func WithOffsetCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.offsets = n
		}
	}
}

// New wraps next with validity and offset caches.
func New(next tzconvert.Provider, logger *slog.Logger, opts ...Option) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	o := &options{
		zones:   constants.ZoneCacheSize,
		offsets: constants.OffsetCacheSize,
	}
	for _, opt := range opts {
		opt(o)
	}

	validStats := stats.NewCounter()
	offsetStats := stats.NewCounter()
	p := &Provider{
		next:   next,
		logger: logger,
		valid: otter.Must(&otter.Options[string, bool]{
			MaximumSize:   o.zones,
			StatsRecorder: validStats,
		}),
		offsets: otter.Must(&otter.Options[offsetKey, offsetEntry]{
			MaximumSize:   o.offsets,
			StatsRecorder: offsetStats,
		}),
		validStats:  validStats,
		offsetStats: offsetStats,
	}
	logger.Debug("zone cache initialized", "zone_capacity", o.zones, "offset_capacity", o.offsets)
	return p
}

// Valid implements tzconvert.Provider.
func (p *Provider) Valid(zone string) bool {
	if ok, found := p.valid.GetIfPresent(zone); found {
		return ok
	}
	ok := p.next.Valid(zone)
	p.valid.Set(zone, ok)
	if !ok {
		p.logger.Debug("zone rejected", "zone", zone)
	}
	return ok
}

// OffsetAt implements tzconvert.Provider.
func (p *Provider) OffsetAt(zone string, at time.Time) (int, bool) {
	key := offsetKey{zone: zone, minute: at.Unix() / 60}
	if at.Unix() < 0 && at.Unix()%60 != 0 {
		key.minute--
	}
	if e, found := p.offsets.GetIfPresent(key); found {
		return e.minutes, e.ok
	}
	// Resolve at the start of the bucket so every instant in it agrees.
	minutes, ok := p.next.OffsetAt(zone, time.Unix(key.minute*60, 0))
	p.offsets.Set(key, offsetEntry{minutes: minutes, ok: ok})
	return minutes, ok
}

// CivilAt implements tzconvert.Provider. Rendering depends on the full
// instant, so it is passed straight through; unknown zones skip the database.
func (p *Provider) CivilAt(zone string, at time.Time) tzconvert.Civil {
	if !p.Valid(zone) {
		return tzconvert.CivilOf(at.UTC())
	}
	return p.next.CivilAt(zone, at)
}

// Stats returns cache sizes and hit counts.
func (p *Provider) Stats() map[string]any {
	vs := p.validStats.Snapshot()
	ofs := p.offsetStats.Snapshot()
	return map[string]any{
		"zones":         p.valid.EstimatedSize(),
		"zone_hits":     vs.Hits,
		"zone_misses":   vs.Misses,
		"offsets":       p.offsets.EstimatedSize(),
		"offset_hits":   ofs.Hits,
		"offset_misses": ofs.Misses,
	}
}
