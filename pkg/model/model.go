// Package model defines the entities stored by the routing and topology
// engine -- devices, interfaces, routes, and NAT mappings -- along with the
// invariant checks enforced on every write.
package model

import (
	"fmt"

	"github.com/hal-netmap/netmap/pkg/ipcidr"
	"github.com/hal-netmap/netmap/pkg/util"
)

// InterfaceStatus is the operational state of an Interface.
type InterfaceStatus string

const (
	StatusUp   InterfaceStatus = "up"
	StatusDown InterfaceStatus = "down"
)

// RouteType is the routing protocol or origin of a Route.
type RouteType string

const (
	RouteConnected RouteType = "connected"
	RouteStatic    RouteType = "static"
	RouteOSPF      RouteType = "ospf"
	RouteBGP       RouteType = "bgp"
	RouteRIP       RouteType = "rip"
	RouteEIGRP     RouteType = "eigrp"
	RouteOther     RouteType = "other"
)

// NATType distinguishes source from destination NAT.
type NATType string

const (
	NATSource      NATType = "source"
	NATDestination NATType = "destination"
)

// Device is a network device such as a router, firewall, or switch.
// Its name is its identity.
type Device struct {
	Name        string
	Description string
}

// Interface is a network interface on a device. Its identity is the tuple
// (Device, Name, IPAddress): the same interface name on a device may carry
// several IP addresses (e.g. eth0, eth0:1 in the source system).
type Interface struct {
	Device    string
	Name      string
	IPAddress string
	Network   string
	Status    InterfaceStatus
}

// IsUp reports whether the interface participates in topology and routing.
func (i Interface) IsUp() bool {
	return i.Status == StatusUp
}

// Route is a routing table entry on a device. Its identity is the tuple
// (Device, DestinationNetwork, GatewayIP).
type Route struct {
	Device             string
	DestinationNetwork string
	GatewayIP          string // empty for connected routes
	Type               RouteType
	Metric             int
}

// IsConnected reports whether the route is a directly connected route.
func (r Route) IsConnected() bool {
	return r.Type == RouteConnected
}

// NATMapping is a Network Address Translation rule on a device. It has no
// natural key beyond insertion order, so the store assigns it a surrogate ID.
type NATMapping struct {
	ID          int
	Device      string
	Logical     string
	Real        string
	Type        NATType
	Description string
}

// ValidateDevice enforces that a Device has a non-empty name.
func ValidateDevice(d Device) error {
	v := &util.ValidationBuilder{}
	v.Add(d.Name != "", "device name must not be empty")
	return v.Build()
}

// ValidateInterface enforces I1 (IP within network) and I3 (the stricter
// Interface.Network literal pattern, expressed here as "must parse as CIDR").
func ValidateInterface(i Interface) error {
	v := &util.ValidationBuilder{}
	v.Add(i.Device != "", "interface device must not be empty")
	v.Add(i.Name != "", "interface name must not be empty")

	ip, ipErr := ipcidr.ParseIP(i.IPAddress)
	v.Add(ipErr == nil, fmt.Sprintf("invalid ip_address %q", i.IPAddress))

	network, netErr := ipcidr.ParseCIDR(i.Network)
	v.Add(netErr == nil, fmt.Sprintf("invalid network %q", i.Network))

	if ipErr == nil && netErr == nil {
		v.Add(ipcidr.Contains(network, ip),
			fmt.Sprintf("ip address %s is not within the network %s", i.IPAddress, i.Network))
	}

	v.Add(i.Status == StatusUp || i.Status == StatusDown,
		fmt.Sprintf("invalid status %q", i.Status))

	return v.Build()
}

// ValidateRoute enforces I2 (gateway presence matches route type) and I3
// (destination network is a well-formed CIDR).
func ValidateRoute(r Route) error {
	v := &util.ValidationBuilder{}
	v.Add(r.Device != "", "route device must not be empty")

	_, netErr := ipcidr.ParseCIDR(r.DestinationNetwork)
	v.Add(netErr == nil, fmt.Sprintf("invalid destination_network %q", r.DestinationNetwork))

	if r.IsConnected() {
		v.Add(r.GatewayIP == "", "gateway_ip should be empty for connected routes")
	} else {
		v.Add(r.GatewayIP != "", "gateway_ip is required for non-connected routes")
		if r.GatewayIP != "" {
			_, gwErr := ipcidr.ParseIP(r.GatewayIP)
			v.Add(gwErr == nil, fmt.Sprintf("invalid gateway_ip %q", r.GatewayIP))
		}
	}

	v.Add(r.Metric >= 0, "metric must be non-negative")

	return v.Build()
}

// ValidateNATMapping enforces I4: both Logical and Real parse as either a
// single IP or a CIDR.
func ValidateNATMapping(n NATMapping) error {
	v := &util.ValidationBuilder{}
	v.Add(n.Device != "", "nat mapping device must not be empty")

	_, logicalErr := ipcidr.ParseEndpoint(n.Logical)
	v.Add(logicalErr == nil, fmt.Sprintf("invalid logical_ip_or_network %q", n.Logical))

	_, realErr := ipcidr.ParseEndpoint(n.Real)
	v.Add(realErr == nil, fmt.Sprintf("invalid real_ip_or_network %q", n.Real))

	v.Add(n.Type == NATSource || n.Type == NATDestination,
		fmt.Sprintf("invalid nat type %q", n.Type))

	return v.Build()
}
