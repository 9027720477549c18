package tzdb

import "github.com/chronozone/tcore"

// Provider adapts a Registry to tcore.TimeZoneProvider, the seam
// spec.md §6 describes between the core and its zone-data backing
// store. Embedders construct a Registry (from TZif data, via
// FromTZif, or directly via NewZone), then pass a *Provider to
// ZonedDateTime operations that need it.
type Provider struct {
	Registry *Registry
}

// NewProvider wraps r as a tcore.TimeZoneProvider.
func NewProvider(r *Registry) *Provider { return &Provider{Registry: r} }

func (p *Provider) lookup(identifier string) (*Zone, error) {
	z, ok := p.Registry.Lookup(identifier)
	if !ok {
		return nil, tcore.SyntaxErrorf("unknown time zone identifier %q", identifier)
	}
	return z, nil
}

// NormalizeIdentifier resolves identifier through the registry's link
// table and confirms a zone exists under the canonical name.
func (p *Provider) NormalizeIdentifier(identifier string) (string, error) {
	z, err := p.lookup(identifier)
	if err != nil {
		return "", err
	}
	return z.Identifier, nil
}

func toResolution(t LocalTimeType) tcore.LocalTimeResolution {
	return tcore.LocalTimeResolution{OffsetSeconds: t.OffsetSeconds, IsDST: t.IsDst, Abbreviation: t.Designation}
}

// OffsetFor implements tcore.TimeZoneProvider.
func (p *Provider) OffsetFor(identifier string, instant tcore.EpochNanoseconds) (tcore.LocalTimeResolution, tcore.EpochNanoseconds, bool, error) {
	z, err := p.lookup(identifier)
	if err != nil {
		return tcore.LocalTimeResolution{}, tcore.EpochNanoseconds{}, false, err
	}
	lt, transitionEpoch, hasTransition := z.OffsetFor(instant)
	return toResolution(lt), transitionEpoch, hasTransition, nil
}

// CandidatesFor implements tcore.TimeZoneProvider.
func (p *Provider) CandidatesFor(identifier string, local tcore.IsoDateTime) ([]tcore.ZoneCandidate, error) {
	z, err := p.lookup(identifier)
	if err != nil {
		return nil, err
	}
	localSec := local.Date.JDN()*86400 + int64(local.Time.Hour)*3600 + int64(local.Time.Minute)*60 + int64(local.Time.Second)
	raw := z.CandidatesFor(local)
	out := make([]tcore.ZoneCandidate, len(raw))
	for i, lt := range raw {
		epoch := tcore.EpochNanosecondsFromSeconds(localSec - int64(lt.OffsetSeconds))
		out[i] = tcore.ZoneCandidate{LocalTimeResolution: toResolution(lt), Epoch: epoch}
	}
	return out, nil
}

// Disambiguate implements tcore.TimeZoneProvider.
func (p *Provider) Disambiguate(identifier string, local tcore.IsoDateTime, policy tcore.Disambiguation) (tcore.EpochNanoseconds, tcore.LocalTimeResolution, error) {
	z, err := p.lookup(identifier)
	if err != nil {
		return tcore.EpochNanoseconds{}, tcore.LocalTimeResolution{}, err
	}
	epoch, lt, err := z.Disambiguate(local, policy)
	if err != nil {
		return tcore.EpochNanoseconds{}, tcore.LocalTimeResolution{}, err
	}
	return epoch, toResolution(lt), nil
}

// NextTransition implements tcore.TimeZoneProvider.
func (p *Provider) NextTransition(identifier string, instant tcore.EpochNanoseconds, previous bool) (tcore.EpochNanoseconds, bool, error) {
	z, err := p.lookup(identifier)
	if err != nil {
		return tcore.EpochNanoseconds{}, false, err
	}
	epoch, ok := z.NextTransition(instant, previous)
	return epoch, ok, nil
}
