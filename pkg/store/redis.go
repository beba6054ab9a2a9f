package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/hal-netmap/netmap/pkg/model"
)

// Redis table names, following the "TABLE|key" hash-per-entity convention
// used by SONiC's CONFIG_DB.
const (
	tableDevice    = "DEVICE"
	tableInterface = "INTERFACE"
	tableRoute     = "ROUTE"
	tableNAT       = "NAT"
)

// RedisStore persists a Store's entities to Redis as one hash per entity,
// keyed "TABLE|key". It is an adapter, not a cache: the in-memory Store
// remains the source of truth during a process's lifetime; RedisStore
// exists to snapshot that state across restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a RedisStore using the given go-redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveTo replaces the saved entities in Redis with those in s: existing
// hashes under the four entity tables are deleted, then every entity in s
// is written at its key, so entities removed from s are not loaded again.
func (r *RedisStore) SaveTo(ctx context.Context, s *Store) error {
	pipe := r.client.Pipeline()

	for _, table := range []string{tableDevice, tableInterface, tableRoute, tableNAT} {
		keys, err := r.client.Keys(ctx, table+"|*").Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
	}

	for _, d := range s.Devices() {
		key := tableDevice + "|" + d.Name
		pipe.HSet(ctx, key, map[string]interface{}{
			"description": d.Description,
		})
	}

	for _, i := range s.Interfaces() {
		key := fmt.Sprintf("%s|%s|%s|%s", tableInterface, i.Device, i.Name, i.IPAddress)
		pipe.HSet(ctx, key, map[string]interface{}{
			"network": i.Network,
			"status":  string(i.Status),
		})
	}

	for _, rt := range s.Routes() {
		key := fmt.Sprintf("%s|%s|%s|%s", tableRoute, rt.Device, rt.DestinationNetwork, rt.GatewayIP)
		pipe.HSet(ctx, key, map[string]interface{}{
			"type":   string(rt.Type),
			"metric": strconv.Itoa(rt.Metric),
		})
	}

	for _, n := range s.NATMappings() {
		key := fmt.Sprintf("%s|%s|%d", tableNAT, n.Device, n.ID)
		pipe.HSet(ctx, key, map[string]interface{}{
			"logical":     n.Logical,
			"real":        n.Real,
			"type":        string(n.Type),
			"description": n.Description,
		})
	}

	_, err := pipe.Exec(ctx)
	return err
}

// LoadFrom scans Redis for every TABLE|key hash and reconstructs a Store.
// Entries that fail validation are skipped, per the propagation policy that
// malformed rows never halt a calculation -- they are dropped without being
// logged.
func (r *RedisStore) LoadFrom(ctx context.Context) (*Store, error) {
	s := New()

	deviceKeys, err := r.client.Keys(ctx, tableDevice+"|*").Result()
	if err != nil {
		return nil, err
	}
	for _, key := range deviceKeys {
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			continue
		}
		name := afterPrefix(key, tableDevice+"|")
		_ = s.UpsertDevice(model.Device{Name: name, Description: fields["description"]})
	}

	ifaceKeys, err := r.client.Keys(ctx, tableInterface+"|*").Result()
	if err != nil {
		return nil, err
	}
	for _, key := range ifaceKeys {
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			continue
		}
		device, name, ip, ok := splitInterfaceKey(key)
		if !ok {
			continue
		}
		_ = s.UpsertInterface(model.Interface{
			Device:    device,
			Name:      name,
			IPAddress: ip,
			Network:   fields["network"],
			Status:    model.InterfaceStatus(fields["status"]),
		})
	}

	routeKeys, err := r.client.Keys(ctx, tableRoute+"|*").Result()
	if err != nil {
		return nil, err
	}
	for _, key := range routeKeys {
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			continue
		}
		device, destNet, gateway, ok := splitRouteKey(key)
		if !ok {
			continue
		}
		metric, _ := strconv.Atoi(fields["metric"])
		_ = s.UpsertRoute(model.Route{
			Device:             device,
			DestinationNetwork: destNet,
			GatewayIP:          gateway,
			Type:               model.RouteType(fields["type"]),
			Metric:             metric,
		})
	}

	natKeys, err := r.client.Keys(ctx, tableNAT+"|*").Result()
	if err != nil {
		return nil, err
	}
	for _, key := range natKeys {
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			continue
		}
		device, ok := splitNATKey(key)
		if !ok {
			continue
		}
		_, _ = s.InsertNATMapping(model.NATMapping{
			Device:      device,
			Logical:     fields["logical"],
			Real:        fields["real"],
			Type:        model.NATType(fields["type"]),
			Description: fields["description"],
		})
	}

	return s, nil
}

func afterPrefix(s, prefix string) string {
	if len(s) >= len(prefix) {
		return s[len(prefix):]
	}
	return s
}
