package routing

import (
	"github.com/hal-netmap/netmap/pkg/ipcidr"
	"github.com/hal-netmap/netmap/pkg/model"
)

// NATMatch is a NAT mapping found to apply to a query, with the translated
// address filled in when per-IP translation could be computed.
type NATMatch struct {
	Mapping    model.NATMapping
	Translated string // empty when not computed (network-to-network, or real is itself a CIDR)
}

// findNATMapping scans device's NAT mappings of the given type, in
// insertion order, for the first one applicable to q, per §4.4.3. Malformed
// mapping entries are skipped rather than erroring out.
func (svc *Service) findNATMapping(device string, q ipcidr.Endpoint, natType model.NATType) (NATMatch, bool) {
	for _, n := range svc.store.NATMappingsOn(device, natType) {
		logical, err := ipcidr.ParseEndpoint(n.Logical)
		if err != nil {
			continue
		}

		if logical.IsNet() {
			if q.IsNet() {
				if ipcidr.Overlaps(logical.Net, q.Net) {
					return NATMatch{Mapping: n}, true
				}
				continue
			}

			if !ipcidr.Contains(logical.Net, q.IP) {
				continue
			}

			real, err := ipcidr.ParseEndpoint(n.Real)
			if err != nil {
				continue
			}
			if real.IsHost() {
				translated := translateAddr(real.IP, logical.Net.Base, q.IP)
				return NATMatch{Mapping: n, Translated: translated.String()}, true
			}
			// real is a CIDR: per-IP translation is not computed.
			return NATMatch{Mapping: n}, true
		}

		// logical is a single IP: match only an equal single-IP query.
		if !q.IsHost() || q.IP != logical.IP {
			continue
		}
		return NATMatch{Mapping: n}, true
	}

	return NATMatch{}, false
}

// translateAddr computes real + (query - logicalBase) in 32-bit unsigned
// arithmetic: the offset of query within the logical network is reapplied
// to the real base address (P8).
func translateAddr(real, logicalBase, query ipcidr.Addr) ipcidr.Addr {
	offset := uint32(query) - uint32(logicalBase)
	return ipcidr.Addr(uint32(real) + offset)
}
