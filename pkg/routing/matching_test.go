package routing

import (
	"testing"

	"github.com/hal-netmap/netmap/pkg/ipcidr"
	"github.com/hal-netmap/netmap/pkg/model"
	"github.com/hal-netmap/netmap/pkg/store"
)

func TestFindMatchingNetworksClassification(t *testing.T) {
	s := store.New()
	mustDevice(t, s, "router1")
	mustInterface(t, s, "router1", "eth0", "10.0.0.1", "10.0.0.0/24")

	svc := NewService(s)

	exact, _ := ipcidr.ParseEndpoint("10.0.0.0/24")
	matches := svc.findMatchingNetworks(exact)
	if len(matches) != 1 || matches[0].Relationship != RelExact {
		t.Fatalf("expected exact match, got %+v", matches)
	}

	broaderQuery, _ := ipcidr.ParseEndpoint("10.0.0.0/16")
	matches = svc.findMatchingNetworks(broaderQuery)
	if len(matches) != 1 || matches[0].Relationship != RelSupernet {
		t.Fatalf("expected query to be classified as the candidate's supernet: %+v", matches)
	}
}

func TestFindMatchingNetworksHostQuery(t *testing.T) {
	s := store.New()
	mustDevice(t, s, "router1")
	mustInterface(t, s, "router1", "eth0", "192.168.1.1", "192.168.1.0/24")

	svc := NewService(s)

	onLink, _ := ipcidr.ParseEndpoint("192.168.1.50")
	matches := svc.findMatchingNetworks(onLink)
	if len(matches) != 1 || matches[0].Relationship != RelContainsIP {
		t.Fatalf("expected contains_ip for a non-interface host, got %+v", matches)
	}

	ifaceIP, _ := ipcidr.ParseEndpoint("192.168.1.1")
	matches = svc.findMatchingNetworks(ifaceIP)
	if len(matches) != 1 || matches[0].Relationship != RelExactIPMatch {
		t.Fatalf("expected exact_ip_match when the query equals the interface's ip_address, got %+v", matches)
	}
}

func TestCheckSupernetConflictsIgnoresHostQueries(t *testing.T) {
	s := store.New()
	mustDevice(t, s, "router1")
	mustInterface(t, s, "router1", "eth0", "10.0.0.1", "10.0.0.0/24")

	svc := NewService(s)
	host, _ := ipcidr.ParseEndpoint("10.0.0.1")
	conflicts := svc.checkSupernetConflicts(host)
	if len(conflicts) != 0 {
		t.Errorf("expected no conflicts for a host query, got %+v", conflicts)
	}
}

func TestCheckSupernetConflictsFindsRouteConflicts(t *testing.T) {
	s := store.New()
	mustDevice(t, s, "router1")
	mustRoute(t, s, "router1", "10.0.0.0/24", "10.0.0.2", model.RouteStatic)

	svc := NewService(s)
	broad, _ := ipcidr.ParseEndpoint("10.0.0.0/8")
	conflicts := svc.checkSupernetConflicts(broad)
	if len(conflicts) != 1 || conflicts[0].Candidate != "10.0.0.0/24" {
		t.Fatalf("expected a route-based conflict, got %+v", conflicts)
	}
}

func TestLongestPrefixMatchTieBreaksFirstSeen(t *testing.T) {
	routes := []model.Route{
		{Device: "router1", DestinationNetwork: "10.0.0.0/24", GatewayIP: "10.0.0.2", Type: model.RouteStatic},
		{Device: "router1", DestinationNetwork: "10.0.0.0/24", GatewayIP: "10.0.0.3", Type: model.RouteStatic},
	}
	working, _ := ipcidr.ParseEndpoint("10.0.0.5")
	best, ok := longestPrefixMatch(routes, working)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.GatewayIP != "10.0.0.2" {
		t.Errorf("expected first-seen route to win the tie, got gateway %s", best.GatewayIP)
	}
}

func TestLongestPrefixMatchPrefersMoreSpecific(t *testing.T) {
	routes := []model.Route{
		{Device: "router1", DestinationNetwork: "10.0.0.0/16", GatewayIP: "10.0.0.2", Type: model.RouteStatic},
		{Device: "router1", DestinationNetwork: "10.0.0.0/24", GatewayIP: "10.0.0.3", Type: model.RouteStatic},
	}
	working, _ := ipcidr.ParseEndpoint("10.0.0.5")
	best, ok := longestPrefixMatch(routes, working)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.DestinationNetwork != "10.0.0.0/24" {
		t.Errorf("expected the more specific route to win, got %s", best.DestinationNetwork)
	}
}
