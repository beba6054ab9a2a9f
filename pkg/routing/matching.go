package routing

import (
	"github.com/hal-netmap/netmap/pkg/ipcidr"
	"github.com/hal-netmap/netmap/pkg/model"
)

// Relationship classifies how a query endpoint relates to a candidate
// interface network, per §4.4.1. Network queries are classified with the
// CIDR-overlap vocabulary (exact/supernet/subnet/overlap); host queries get
// their own containment vocabulary (contains_ip/exact_ip_match), since a
// host is never a "supernet" or "subnet" of the network it falls inside.
type Relationship string

const (
	RelExact        Relationship = "exact"
	RelSupernet     Relationship = "supernet"
	RelSubnet       Relationship = "subnet"
	RelOverlap      Relationship = "overlap"
	RelContainsIP   Relationship = "contains_ip"
	RelExactIPMatch Relationship = "exact_ip_match"
)

// NetworkMatch is one up-interface's network found to relate to a query
// endpoint, tagged with how it relates.
type NetworkMatch struct {
	Device       string
	Network      ipcidr.Net
	Relationship Relationship
}

// findMatchingNetworks scans every up-interface's network for a relationship
// to q, per §4.4.1. When q is a network, candidates are compared by overlap
// and classified exact/supernet/subnet/overlap. When q is a host, candidates
// are compared by containment and classified contains_ip, upgraded to
// exact_ip_match when the query equals the interface's own ip_address (not
// merely a /32 network).
func (svc *Service) findMatchingNetworks(q ipcidr.Endpoint) []NetworkMatch {
	var matches []NetworkMatch

	for _, iface := range svc.store.UpInterfaces() {
		candidate, err := ipcidr.ParseCIDR(iface.Network)
		if err != nil {
			continue
		}

		if q.IsNet() {
			if !ipcidr.Overlaps(q.Net, candidate) {
				continue
			}
			matches = append(matches, NetworkMatch{
				Device:       iface.Device,
				Network:      candidate,
				Relationship: Relationship(ipcidr.Classify(q.Net, candidate)),
			})
			continue
		}

		if !ipcidr.Contains(candidate, q.IP) {
			continue
		}
		rel := RelContainsIP
		if ifaceIP, err := ipcidr.ParseIP(iface.IPAddress); err == nil && ifaceIP == q.IP {
			rel = RelExactIPMatch
		}
		matches = append(matches, NetworkMatch{
			Device:       iface.Device,
			Network:      candidate,
			Relationship: rel,
		})
	}

	return matches
}

// SupernetConflict names a broader queried network and a more specific
// network already present in the store that it improperly subsumes.
type SupernetConflict struct {
	Query     string
	Candidate string
	Device    string
}

// checkSupernetConflicts reports every known up-interface network or route
// destination that q (as a network) is a strict supernet of. A non-network
// endpoint never conflicts: conflicts are a modelling error specific to
// querying an aggregate broader than any known specific (§4.4 rationale).
func (svc *Service) checkSupernetConflicts(q ipcidr.Endpoint) []SupernetConflict {
	if !q.IsNet() {
		return nil
	}

	var conflicts []SupernetConflict

	for _, iface := range svc.store.UpInterfaces() {
		candidate, err := ipcidr.ParseCIDR(iface.Network)
		if err != nil {
			continue
		}
		if ipcidr.SupernetOf(q.Net, candidate) {
			conflicts = append(conflicts, SupernetConflict{
				Query:     q.String(),
				Candidate: candidate.String(),
				Device:    iface.Device,
			})
		}
	}

	for _, route := range svc.store.Routes() {
		candidate, err := ipcidr.ParseCIDR(route.DestinationNetwork)
		if err != nil {
			continue
		}
		if ipcidr.SupernetOf(q.Net, candidate) {
			conflicts = append(conflicts, SupernetConflict{
				Query:     q.String(),
				Candidate: candidate.String(),
				Device:    route.Device,
			})
		}
	}

	return conflicts
}

// longestPrefixMatch selects, among a device's routes, the one whose
// destination_network relates to working (a CIDR or a host endpoint) and
// has the greatest prefix length. Ties are broken by first-seen order,
// matching the store's insertion-ordered iteration; metric is not
// consulted.
func longestPrefixMatch(routes []model.Route, working ipcidr.Endpoint) (model.Route, bool) {
	var best model.Route
	var bestPrefix uint8
	found := false

	for _, r := range routes {
		dest, err := ipcidr.ParseCIDR(r.DestinationNetwork)
		if err != nil {
			continue
		}

		var matches bool
		if working.IsNet() {
			matches = ipcidr.Overlaps(dest, working.Net)
		} else {
			matches = ipcidr.Contains(dest, working.IP)
		}
		if !matches {
			continue
		}

		if !found || dest.Prefix > bestPrefix {
			best = r
			bestPrefix = dest.Prefix
			found = true
		}
	}

	return best, found
}
