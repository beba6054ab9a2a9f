// Package store holds the in-memory entity store for devices, interfaces,
// routes, and NAT mappings. It is the sole shared, mutable resource in the
// routing and topology engine: reads are concurrent, writes are serialized,
// and every write re-runs the invariant checks in pkg/model.
package store

import (
	"sync"

	"github.com/hal-netmap/netmap/pkg/model"
	"github.com/hal-netmap/netmap/pkg/util"
)

// Store is an in-memory, concurrency-safe collection of entities.
// Entities are held in slices, not maps, so that iteration order is
// insertion order -- the store's ordering contract that routing and
// topology tie-breaks depend on (see §4.4.5 of the design notes).
type Store struct {
	mu sync.RWMutex

	devices    []model.Device
	interfaces []model.Interface
	routes     []model.Route
	nats       []model.NATMapping
	nextNATID  int
}

// New returns an empty store.
func New() *Store {
	return &Store{nextNATID: 1}
}

// UpsertDevice validates and inserts or replaces a Device by name.
func (s *Store) UpsertDevice(d model.Device) error {
	if err := model.ValidateDevice(d); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.devices {
		if existing.Name == d.Name {
			s.devices[i] = d
			return nil
		}
	}
	s.devices = append(s.devices, d)
	return nil
}

// DeleteDevice removes a Device and, per I5, cascades the removal to its
// Interfaces, Routes, and NAT mappings.
func (s *Store) DeleteDevice(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, d := range s.devices {
		if d.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return util.NewNotFoundError("device", name)
	}

	s.devices = append(s.devices[:idx], s.devices[idx+1:]...)

	s.interfaces = filterOut(s.interfaces, func(i model.Interface) bool { return i.Device == name })
	s.routes = filterOut(s.routes, func(r model.Route) bool { return r.Device == name })
	s.nats = filterOut(s.nats, func(n model.NATMapping) bool { return n.Device == name })
	return nil
}

// UpsertInterface validates and inserts or replaces an Interface by its
// (Device, Name, IPAddress) identity.
func (s *Store) UpsertInterface(i model.Interface) error {
	if err := model.ValidateInterface(i); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, existing := range s.interfaces {
		if existing.Device == i.Device && existing.Name == i.Name && existing.IPAddress == i.IPAddress {
			s.interfaces[idx] = i
			return nil
		}
	}
	s.interfaces = append(s.interfaces, i)
	return nil
}

// UpsertRoute validates and inserts or replaces a Route by its
// (Device, DestinationNetwork, GatewayIP) identity.
func (s *Store) UpsertRoute(r model.Route) error {
	if err := model.ValidateRoute(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, existing := range s.routes {
		if existing.Device == r.Device && existing.DestinationNetwork == r.DestinationNetwork && existing.GatewayIP == r.GatewayIP {
			s.routes[idx] = r
			return nil
		}
	}
	s.routes = append(s.routes, r)
	return nil
}

// InsertNATMapping validates and appends a NAT mapping, assigning it a
// surrogate ID (NATMapping has no natural key).
func (s *Store) InsertNATMapping(n model.NATMapping) (model.NATMapping, error) {
	if err := model.ValidateNATMapping(n); err != nil {
		return model.NATMapping{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.nextNATID
	s.nextNATID++
	s.nats = append(s.nats, n)
	return n, nil
}

// Devices returns a snapshot of all devices in insertion order.
func (s *Store) Devices() []model.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Device(nil), s.devices...)
}

// Device looks up a single device by name.
func (s *Store) Device(name string) (model.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.devices {
		if d.Name == name {
			return d, nil
		}
	}
	return model.Device{}, util.NewNotFoundError("device", name)
}

// Interfaces returns a snapshot of all interfaces in insertion order.
func (s *Store) Interfaces() []model.Interface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Interface(nil), s.interfaces...)
}

// InterfacesOn returns up and down interfaces belonging to a device, in
// insertion order.
func (s *Store) InterfacesOn(device string) []model.Interface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Interface
	for _, i := range s.interfaces {
		if i.Device == device {
			out = append(out, i)
		}
	}
	return out
}

// UpInterfaces returns every up-interface across all devices, in insertion
// order. Topology and routing consider only up-interfaces.
func (s *Store) UpInterfaces() []model.Interface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Interface
	for _, i := range s.interfaces {
		if i.IsUp() {
			out = append(out, i)
		}
	}
	return out
}

// Routes returns a snapshot of all routes in insertion order.
func (s *Store) Routes() []model.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Route(nil), s.routes...)
}

// RoutesOn returns the routes defined on a device, in insertion order.
func (s *Store) RoutesOn(device string) []model.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Route
	for _, r := range s.routes {
		if r.Device == device {
			out = append(out, r)
		}
	}
	return out
}

// NATMappings returns a snapshot of all NAT mappings in insertion order.
func (s *Store) NATMappings() []model.NATMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.NATMapping(nil), s.nats...)
}

// NATMappingsOn returns the NAT mappings of the given type defined on a
// device, in insertion order.
func (s *Store) NATMappingsOn(device string, natType model.NATType) []model.NATMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.NATMapping
	for _, n := range s.nats {
		if n.Device == device && n.Type == natType {
			out = append(out, n)
		}
	}
	return out
}

func filterOut[T any](items []T, match func(T) bool) []T {
	var out []T
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}
