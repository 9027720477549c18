package tzdb

import "strings"

// Registry is a case-insensitive collection of Zones plus identifier
// links (aliases), grounded on go-chrono's Zones/LoadZone loader shape
// generalized from a single time.Location-backed zone to tzif.Data-backed
// ones, and on go-tz's Link-line handling (`Link TARGET LINK-NAME`) in
// tzdata.go for the alias table.
type Registry struct {
	zones map[string]*Zone
	links map[string]string // lowercased alias -> canonical identifier
}

// NewRegistry returns an empty Registry ready for Add/AddLink calls.
func NewRegistry() *Registry {
	return &Registry{zones: make(map[string]*Zone), links: make(map[string]string)}
}

// Add registers z under its own Identifier.
func (r *Registry) Add(z *Zone) {
	r.zones[strings.ToLower(z.Identifier)] = z
}

// AddLink registers alias as another name for canonical, e.g.
// AddLink("US/Pacific", "America/Los_Angeles").
func (r *Registry) AddLink(alias, canonical string) {
	r.links[strings.ToLower(alias)] = canonical
}

// Canonicalize resolves identifier through the link table (case
// insensitively), returning the canonical identifier unchanged if it is
// not a known alias.
func (r *Registry) Canonicalize(identifier string) string {
	if canonical, ok := r.links[strings.ToLower(identifier)]; ok {
		return canonical
	}
	return identifier
}

// Lookup resolves identifier (through any link) to its Zone.
func (r *Registry) Lookup(identifier string) (*Zone, bool) {
	key := strings.ToLower(r.Canonicalize(identifier))
	z, ok := r.zones[key]
	return z, ok
}

// Identifiers returns every canonical zone identifier registered,
// unsorted.
func (r *Registry) Identifiers() []string {
	out := make([]string, 0, len(r.zones))
	for _, z := range r.zones {
		out = append(out, z.Identifier)
	}
	return out
}
