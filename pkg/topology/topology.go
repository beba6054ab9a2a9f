// Package topology derives device adjacency and per-device networks from
// the interfaces carried by each device, since the data model has no
// explicit link entity -- adjacency is inferred from shared L3 networks.
package topology

import (
	"sort"

	"github.com/hal-netmap/netmap/pkg/ipcidr"
	"github.com/hal-netmap/netmap/pkg/model"
	"github.com/hal-netmap/netmap/pkg/store"
	"github.com/hal-netmap/netmap/pkg/util"
)

// Edge is a clique edge between two devices sharing a network. A clique
// edge is not a physical link: on a shared network with three or more
// devices, every pair gets an edge.
type Edge struct {
	Device1 string
	Device2 string
	Network string
}

// Node is one device in the derived topology, carrying the interface count
// used by callers (e.g. the external HTTP surface in §6) to size the device
// without a second round trip.
type Node struct {
	ID              string
	Label           string
	InterfacesCount int
}

// Graph is the derived topology: one node per device carrying at least one
// up-interface, and one edge per pair of devices sharing a network.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// DeviceNetwork names a network carried by a device, along with the
// up-interfaces on that device attached to it.
type DeviceNetwork struct {
	Network    string
	Interfaces []model.Interface
}

// Service derives topology from a Store's current snapshot. It holds no
// state of its own between calls.
type Service struct {
	store *store.Store
}

// NewService returns a topology Service reading from s.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Generate builds the device graph. When includeStubNetworks is false,
// networks carried by only one device (stub networks) contribute a node but
// no edge.
func (svc *Service) Generate(includeStubNetworks bool) Graph {
	byNetwork := groupByNetwork(svc.store.UpInterfaces())

	nodeSet := map[string]bool{}
	var edges []Edge

	networks := sortedKeys(byNetwork)
	for _, network := range networks {
		ifaces := byNetwork[network]

		devicesOnNetwork := uniqueDevices(ifaces)
		for _, d := range devicesOnNetwork {
			nodeSet[d] = true
		}

		if len(devicesOnNetwork) > 1 || includeStubNetworks {
			for i := 0; i < len(devicesOnNetwork); i++ {
				for j := i + 1; j < len(devicesOnNetwork); j++ {
					edges = append(edges, Edge{
						Device1: devicesOnNetwork[i],
						Device2: devicesOnNetwork[j],
						Network: network,
					})
				}
			}
		}
	}

	var deviceNames []string
	for d := range nodeSet {
		deviceNames = append(deviceNames, d)
	}
	sort.Strings(deviceNames)

	nodes := make([]Node, 0, len(deviceNames))
	for _, d := range deviceNames {
		nodes = append(nodes, Node{
			ID:              d,
			Label:           d,
			InterfacesCount: len(svc.store.InterfacesOn(d)),
		})
	}

	return Graph{Nodes: nodes, Edges: edges}
}

// DeviceNetworks returns the networks carried by deviceID's up-interfaces.
// If includeStubs is false, a network is included only when some other
// device also carries an up-interface on it.
func (svc *Service) DeviceNetworks(deviceID string, includeStubs bool) ([]DeviceNetwork, error) {
	if _, err := svc.store.Device(deviceID); err != nil {
		return nil, util.NewValidationError("Device not found")
	}

	byNetwork := groupByNetwork(svc.store.UpInterfaces())

	var out []DeviceNetwork
	for _, network := range sortedKeys(byNetwork) {
		ifaces := byNetwork[network]

		var onDevice []model.Interface
		otherDevice := false
		for _, i := range ifaces {
			if i.Device == deviceID {
				onDevice = append(onDevice, i)
			} else {
				otherDevice = true
			}
		}
		if len(onDevice) == 0 {
			continue
		}
		if !includeStubs && !otherDevice {
			continue
		}
		out = append(out, DeviceNetwork{Network: network, Interfaces: onDevice})
	}
	return out, nil
}

// groupByNetwork buckets up-interfaces by their network's canonical CIDR
// string, so interfaces with equivalent but differently-written CIDRs
// (different host bits with the same prefix) still land in the same bucket.
func groupByNetwork(ifaces []model.Interface) map[string][]model.Interface {
	byNetwork := map[string][]model.Interface{}
	for _, i := range ifaces {
		n, err := ipcidr.ParseCIDR(i.Network)
		if err != nil {
			// Malformed network on a stored interface is swallowed, per
			// the error propagation policy: skip, never halt.
			continue
		}
		canonical := n.String()
		byNetwork[canonical] = append(byNetwork[canonical], i)
	}
	return byNetwork
}

func uniqueDevices(ifaces []model.Interface) []string {
	seen := map[string]bool{}
	var out []string
	for _, i := range ifaces {
		if !seen[i.Device] {
			seen[i.Device] = true
			out = append(out, i.Device)
		}
	}
	return out
}

func sortedKeys(m map[string][]model.Interface) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
