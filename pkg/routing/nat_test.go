package routing

import (
	"testing"

	"github.com/hal-netmap/netmap/pkg/ipcidr"
	"github.com/hal-netmap/netmap/pkg/model"
	"github.com/hal-netmap/netmap/pkg/store"
)

func TestFindNATMapping(t *testing.T) {
	s := store.New()
	mustDevice(t, s, "router1")

	inserts := []model.NATMapping{
		{Device: "router1", Logical: "192.168.1.0/24", Real: "10.1.1.0/24", Type: model.NATSource},
		{Device: "router1", Logical: "200.1.1.1", Real: "172.16.0.10", Type: model.NATDestination},
	}
	for _, n := range inserts {
		if _, err := s.InsertNATMapping(n); err != nil {
			t.Fatalf("InsertNATMapping: %v", err)
		}
	}

	svc := NewService(s)

	t.Run("network to network, no translation", func(t *testing.T) {
		match, ok, err := svc.FindNATMapping("router1", "192.168.1.0/24", model.NATSource)
		if err != nil || !ok {
			t.Fatalf("FindNATMapping: ok=%v err=%v", ok, err)
		}
		if match.Translated != "" {
			t.Errorf("expected no translation for network-to-network match, got %q", match.Translated)
		}
	})

	t.Run("logical cidr, real cidr, host query: no per-ip translation", func(t *testing.T) {
		match, ok, err := svc.FindNATMapping("router1", "192.168.1.5", model.NATSource)
		if err != nil || !ok {
			t.Fatalf("FindNATMapping: ok=%v err=%v", ok, err)
		}
		if match.Translated != "" {
			t.Errorf("expected no per-ip translation when real is a CIDR, got %q", match.Translated)
		}
	})

	t.Run("single ip exact match", func(t *testing.T) {
		match, ok, err := svc.FindNATMapping("router1", "200.1.1.1", model.NATDestination)
		if err != nil || !ok {
			t.Fatalf("FindNATMapping: ok=%v err=%v", ok, err)
		}
		if match.Mapping.Real != "172.16.0.10" {
			t.Errorf("unexpected match: %+v", match)
		}
	})

	t.Run("single ip non-exact does not match", func(t *testing.T) {
		_, ok, err := svc.FindNATMapping("router1", "200.1.1.2", model.NATDestination)
		if err != nil {
			t.Fatalf("FindNATMapping: %v", err)
		}
		if ok {
			t.Error("expected no match for a different single IP")
		}
	})

	t.Run("source mapping does not match an ip outside its logical network", func(t *testing.T) {
		_, ok, err := svc.FindNATMapping("router1", "200.1.1.1", model.NATSource)
		if err != nil {
			t.Fatalf("FindNATMapping: %v", err)
		}
		if ok {
			t.Error("expected no source NAT mapping matching a destination-only logical IP")
		}
	})
}

func TestTranslateAddrOffset(t *testing.T) {
	real, err := ipcidr.ParseIP("100.64.0.0")
	if err != nil {
		t.Fatal(err)
	}
	logicalBase, err := ipcidr.ParseIP("192.168.1.0")
	if err != nil {
		t.Fatal(err)
	}
	query, err := ipcidr.ParseIP("192.168.1.5")
	if err != nil {
		t.Fatal(err)
	}

	got := translateAddr(real, logicalBase, query)
	want, err := ipcidr.ParseIP("100.64.0.5")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("translateAddr = %v, want %v", got, want)
	}
}
