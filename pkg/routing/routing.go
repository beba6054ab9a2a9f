// Package routing is the path-finding core: supernet-conflict checking,
// longest-prefix matching, NAT application, and hop-by-hop path simulation
// with loop detection.
package routing

import (
	"context"

	"github.com/hal-netmap/netmap/pkg/ipcidr"
	"github.com/hal-netmap/netmap/pkg/model"
	"github.com/hal-netmap/netmap/pkg/store"
	"github.com/hal-netmap/netmap/pkg/util"
)

// Status is the outcome of a FindRoutePath call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Hop is one device traversed while simulating a path.
type Hop struct {
	Device          string
	EgressInterface string // empty when none was identified
	Network         string // the route's destination_network
	Gateway         string // empty for a connected route
	RouteType       model.RouteType
	NextHop         string // next device name, or "Directly Connected"
	NextHopIngress  string // the ingress interface name on the next device
	Note            string // set on the same-device short-circuit and the final hop
}

// NATApplied records whether source and/or destination NAT were applied
// during a FindRoutePath call.
type NATApplied struct {
	Source      bool
	Destination bool
}

// Result is the structured outcome of FindRoutePath, replacing the dict
// returns of the original implementation with a single tagged type: Status
// discriminates success (Path is populated) from error (Message explains
// why, Conflicts and partial Path are populated as available).
type Result struct {
	Status                 Status
	Source                 string
	Destination            string
	Path                   []Hop
	NATApplied             NATApplied
	NATSourceDetails       *NATMatch
	NATDestinationDetails  *NATMatch
	Conflicts              []SupernetConflict
	Message                string
}

// LoopError marks a Result whose Message reports a routing loop.
type LoopError struct{ Message string }

func (e *LoopError) Error() string { return e.Message }

// NoRouteError marks a Result whose Message reports no matching route.
type NoRouteError struct{ Message string }

func (e *NoRouteError) Error() string { return e.Message }

// Service evaluates routing queries against a Store's current snapshot. It
// holds no state between calls, consistent with the store being the sole
// shared resource (§5).
type Service struct {
	store *store.Store
}

// NewService returns a routing Service reading from s.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// FindRoutePath runs the full path-finding algorithm described in §4.4.4:
// conflict pre-check, network resolution, same-device short-circuit, NAT
// prelude, hop-by-hop longest-prefix simulation with loop detection, and
// termination. ctx's deadline, if any, aborts the hop loop early. When the
// source or destination matches several up-interface networks, the first
// match in store insertion order decides its device.
func (svc *Service) FindRoutePath(ctx context.Context, src, dst string) Result {
	result := Result{Source: src, Destination: dst}

	srcEndpoint, err := ipcidr.ParseEndpoint(src)
	if err != nil {
		result.Status = StatusError
		result.Message = "Source " + src + " is not a valid IP or CIDR"
		return result
	}
	dstEndpoint, err := ipcidr.ParseEndpoint(dst)
	if err != nil {
		result.Status = StatusError
		result.Message = "Destination " + dst + " is not a valid IP or CIDR"
		return result
	}

	// Phase 1: validation.
	if conflicts := svc.checkSupernetConflicts(srcEndpoint); len(conflicts) > 0 {
		result.Status = StatusError
		result.Message = "Source " + src + " conflicts with more specific networks"
		result.Conflicts = conflicts
		return result
	}
	if conflicts := svc.checkSupernetConflicts(dstEndpoint); len(conflicts) > 0 {
		result.Status = StatusError
		result.Message = "Destination " + dst + " conflicts with more specific networks"
		result.Conflicts = conflicts
		return result
	}

	srcMatches := svc.findMatchingNetworks(srcEndpoint)
	if len(srcMatches) == 0 {
		result.Status = StatusError
		result.Message = "Source " + src + " not found in any known network"
		return result
	}
	dstMatches := svc.findMatchingNetworks(dstEndpoint)
	if len(dstMatches) == 0 {
		result.Status = StatusError
		result.Message = "Destination " + dst + " not found in any known network"
		return result
	}

	srcNet := srcMatches[0]
	dstNet := dstMatches[0]

	// Phase 2: same-device short-circuit.
	if srcNet.Device == dstNet.Device {
		result.Status = StatusSuccess
		result.Path = []Hop{{
			Device: srcNet.Device,
			Note:   "Source and destination are on the same device",
		}}
		return result
	}

	// Phase 3: NAT prelude.
	working := dstEndpoint
	if match, ok := svc.findNATMapping(srcNet.Device, srcEndpoint, model.NATSource); ok {
		result.NATApplied.Source = true
		m := match
		result.NATSourceDetails = &m
		// The source address is not rewritten for path calculation, only
		// recorded: this asymmetry with destination NAT is as-specified.
	}
	if match, ok := svc.findNATMapping(dstNet.Device, dstEndpoint, model.NATDestination); ok {
		result.NATApplied.Destination = true
		m := match
		result.NATDestinationDetails = &m

		rewritten := m.Translated
		if rewritten == "" {
			rewritten = m.Mapping.Real
		}
		if ep, err := ipcidr.ParseEndpoint(rewritten); err == nil {
			working = ep
		}
	}

	// Phase 4: hop-by-hop simulation.
	currentDevice := srcNet.Device
	visited := map[string]bool{}
	var path []Hop

	for currentDevice != dstNet.Device && !visited[currentDevice] {
		select {
		case <-ctx.Done():
			result.Status = StatusError
			result.Message = "deadline exceeded"
			result.Path = path
			return result
		default:
		}

		visited[currentDevice] = true

		route, ok := longestPrefixMatch(svc.store.RoutesOn(currentDevice), working)
		if !ok {
			result.Status = StatusError
			result.Message = "No route found on device " + currentDevice + " for " + working.String()
			result.Path = path
			return result
		}

		hop := Hop{
			Device:    currentDevice,
			Network:   route.DestinationNetwork,
			Gateway:   route.GatewayIP,
			RouteType: route.Type,
		}

		var nextHopDevice string
		if route.GatewayIP != "" {
			nextHopIface, found := findInterfaceByIP(svc.store.UpInterfaces(), route.GatewayIP)
			if !found && route.Type != model.RouteConnected {
				result.Status = StatusError
				result.Message = "No next hop found for gateway " + route.GatewayIP + " on device " + currentDevice
				result.Path = path
				return result
			}
			if found {
				nextHopDevice = nextHopIface.Device
				hop.NextHop = nextHopDevice
				hop.NextHopIngress = nextHopIface.Name
			}

			if egress, found := findInterfaceContaining(svc.store.InterfacesOn(currentDevice), route.GatewayIP); found {
				hop.EgressInterface = egress.Name
			}
		} else {
			hop.NextHop = "Directly Connected"
		}

		path = append(path, hop)

		if nextHopDevice == "" {
			break
		}
		currentDevice = nextHopDevice
	}

	// Phase 5: termination.
	if currentDevice == dstNet.Device {
		var ingress string
		if len(path) > 0 {
			ingress = path[len(path)-1].NextHopIngress
		}
		path = append(path, Hop{
			Device:         dstNet.Device,
			NextHopIngress: ingress,
			Note:           "Destination reached",
		})
		result.Status = StatusSuccess
		result.Path = path
		return result
	}

	result.Status = StatusError
	result.Message = "Routing loop detected"
	result.Path = path
	return result
}

func findInterfaceByIP(ifaces []model.Interface, ip string) (model.Interface, bool) {
	for _, i := range ifaces {
		if i.IPAddress == ip {
			return i, true
		}
	}
	return model.Interface{}, false
}

func findInterfaceContaining(ifaces []model.Interface, ip string) (model.Interface, bool) {
	addr, err := ipcidr.ParseIP(ip)
	if err != nil {
		return model.Interface{}, false
	}
	for _, i := range ifaces {
		if !i.IsUp() {
			continue
		}
		net, err := ipcidr.ParseCIDR(i.Network)
		if err != nil {
			continue
		}
		if ipcidr.Contains(net, addr) {
			return i, true
		}
	}
	return model.Interface{}, false
}

// CheckSupernetConflicts exposes the supernet conflict check for callers
// (e.g. the CLI) that want to report conflicts without running a full path
// query. q must be a valid IP or CIDR literal.
func (svc *Service) CheckSupernetConflicts(q string) ([]SupernetConflict, error) {
	ep, err := ipcidr.ParseEndpoint(q)
	if err != nil {
		return nil, util.NewValidationError("invalid query: " + q)
	}
	return svc.checkSupernetConflicts(ep), nil
}

// FindMatchingNetworks exposes findMatchingNetworks for callers that want
// the raw match set for a query.
func (svc *Service) FindMatchingNetworks(q string) ([]NetworkMatch, error) {
	ep, err := ipcidr.ParseEndpoint(q)
	if err != nil {
		return nil, util.NewValidationError("invalid query: " + q)
	}
	return svc.findMatchingNetworks(ep), nil
}

// FindNATMapping exposes findNATMapping for callers that want a direct NAT
// lookup without a full path query.
func (svc *Service) FindNATMapping(device, q string, natType model.NATType) (NATMatch, bool, error) {
	ep, err := ipcidr.ParseEndpoint(q)
	if err != nil {
		return NATMatch{}, false, util.NewValidationError("invalid query: " + q)
	}
	match, ok := svc.findNATMapping(device, ep, natType)
	return match, ok, nil
}
