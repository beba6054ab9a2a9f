package topology

import (
	"testing"

	"github.com/hal-netmap/netmap/pkg/model"
	"github.com/hal-netmap/netmap/pkg/store"
)

func mustUpInterface(t *testing.T, s *store.Store, device, name, ip, network string) {
	t.Helper()
	if err := s.UpsertDevice(model.Device{Name: device}); err != nil {
		t.Fatalf("UpsertDevice: %v", err)
	}
	if err := s.UpsertInterface(model.Interface{
		Device: device, Name: name, IPAddress: ip, Network: network, Status: model.StatusUp,
	}); err != nil {
		t.Fatalf("UpsertInterface: %v", err)
	}
}

func TestGenerateCliqueOnSharedNetwork(t *testing.T) {
	s := store.New()
	mustUpInterface(t, s, "router1", "eth0", "10.0.0.1", "10.0.0.0/24")
	mustUpInterface(t, s, "router2", "eth0", "10.0.0.2", "10.0.0.0/24")
	mustUpInterface(t, s, "router3", "eth0", "10.0.0.3", "10.0.0.0/24")

	svc := NewService(s)
	g := svc.Generate(false)

	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d: %v", len(g.Nodes), g.Nodes)
	}
	if len(g.Edges) != 3 {
		t.Fatalf("expected 3 clique edges for 3 devices on one network, got %d: %+v", len(g.Edges), g.Edges)
	}
	for _, n := range g.Nodes {
		if n.ID != n.Label {
			t.Errorf("expected node ID to equal its label (device name), got %+v", n)
		}
		if n.InterfacesCount != 1 {
			t.Errorf("expected %s to carry 1 interface, got %d", n.ID, n.InterfacesCount)
		}
	}
}

func TestGenerateExcludesStubNetworkEdgesByDefault(t *testing.T) {
	s := store.New()
	mustUpInterface(t, s, "router1", "eth0", "10.0.0.1", "10.0.0.0/24")
	mustUpInterface(t, s, "router1", "eth1", "172.16.0.1", "172.16.0.0/24") // stub: only on router1

	svc := NewService(s)
	g := svc.Generate(false)

	if len(g.Edges) != 0 {
		t.Errorf("expected no edges for stub-only networks, got %+v", g.Edges)
	}
	if len(g.Nodes) != 1 {
		t.Errorf("expected router1 to still appear as a node, got %v", g.Nodes)
	}
}

func TestDeviceNetworksStubFilter(t *testing.T) {
	s := store.New()
	mustUpInterface(t, s, "router1", "eth0", "10.0.0.1", "10.0.0.0/24")
	mustUpInterface(t, s, "router2", "eth0", "10.0.0.2", "10.0.0.0/24")
	mustUpInterface(t, s, "router1", "eth1", "172.16.0.1", "172.16.0.0/24") // stub

	svc := NewService(s)

	withStubs, err := svc.DeviceNetworks("router1", true)
	if err != nil {
		t.Fatalf("DeviceNetworks: %v", err)
	}
	if len(withStubs) != 2 {
		t.Fatalf("expected 2 networks including stubs, got %d: %+v", len(withStubs), withStubs)
	}

	withoutStubs, err := svc.DeviceNetworks("router1", false)
	if err != nil {
		t.Fatalf("DeviceNetworks: %v", err)
	}
	if len(withoutStubs) != 1 || withoutStubs[0].Network != "10.0.0.0/24" {
		t.Fatalf("expected only the shared network, got %+v", withoutStubs)
	}
}

func TestDeviceNetworksUnknownDevice(t *testing.T) {
	s := store.New()
	svc := NewService(s)

	_, err := svc.DeviceNetworks("ghost", true)
	if err == nil {
		t.Fatal("expected error for unknown device")
	}
}

func TestGenerateNodeInterfacesCountIncludesDownInterfaces(t *testing.T) {
	s := store.New()
	mustUpInterface(t, s, "router1", "eth0", "10.0.0.1", "10.0.0.0/24")
	if err := s.UpsertInterface(model.Interface{
		Device: "router1", Name: "eth1", IPAddress: "172.16.0.1", Network: "172.16.0.0/24", Status: model.StatusDown,
	}); err != nil {
		t.Fatal(err)
	}

	svc := NewService(s)
	g := svc.Generate(true)

	if len(g.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d: %+v", len(g.Nodes), g.Nodes)
	}
	if g.Nodes[0].InterfacesCount != 2 {
		t.Errorf("expected interfaces_count to match all of a device's interfaces (up and down), got %d", g.Nodes[0].InterfacesCount)
	}
}

func TestGenerateIgnoresDownInterfaces(t *testing.T) {
	s := store.New()
	if err := s.UpsertDevice(model.Device{Name: "router1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertInterface(model.Interface{
		Device: "router1", Name: "eth0", IPAddress: "10.0.0.1", Network: "10.0.0.0/24", Status: model.StatusDown,
	}); err != nil {
		t.Fatal(err)
	}

	svc := NewService(s)
	g := svc.Generate(true)
	if len(g.Nodes) != 0 {
		t.Errorf("expected down interfaces to be excluded from topology, got nodes %v", g.Nodes)
	}
}
