package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hal-netmap/netmap/pkg/model"
)

// fixture is the YAML shape accepted by `netmap load`: a flat dump of every
// entity kind, mirroring the entity store's own field names.
type fixture struct {
	Devices []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"devices"`
	Interfaces []struct {
		Device    string `yaml:"device"`
		Name      string `yaml:"name"`
		IPAddress string `yaml:"ip_address"`
		Network   string `yaml:"network"`
		Status    string `yaml:"status"`
	} `yaml:"interfaces"`
	Routes []struct {
		Device             string `yaml:"device"`
		DestinationNetwork string `yaml:"destination_network"`
		GatewayIP          string `yaml:"gateway_ip"`
		Type               string `yaml:"type"`
		Metric             int    `yaml:"metric"`
	} `yaml:"routes"`
	NATMappings []struct {
		Device      string `yaml:"device"`
		Logical     string `yaml:"logical"`
		Real        string `yaml:"real"`
		Type        string `yaml:"type"`
		Description string `yaml:"description"`
	} `yaml:"nat_mappings"`
}

var loadCmd = &cobra.Command{
	Use:   "load <file.yaml>",
	Short: "Bulk-load devices, interfaces, routes, and NAT mappings from a YAML fixture",
	Long: `Load a YAML fixture file into the entity store. Each section is
optional; entries are upserted in file order, so later entries with the
same identity replace earlier ones.

Example fixture:

  devices:
    - name: router1
  interfaces:
    - {device: router1, name: eth0, ip_address: 10.0.0.1, network: 10.0.0.0/24}
  routes:
    - {device: router1, destination_network: 10.0.0.0/24, type: connected}
  nat_mappings:
    - {device: router1, logical: 192.168.1.0/24, real: 10.1.1.0/24, type: source}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading fixture: %w", err)
		}

		var f fixture
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parsing fixture: %w", err)
		}

		return withWrite(func() error {
			var devices, interfaces, routes, nats int

			for _, d := range f.Devices {
				if err := app.store.UpsertDevice(model.Device{Name: d.Name, Description: d.Description}); err != nil {
					return fmt.Errorf("device %s: %w", d.Name, err)
				}
				devices++
			}
			for _, i := range f.Interfaces {
				status := model.InterfaceStatus(i.Status)
				if status == "" {
					status = model.StatusUp
				}
				iface := model.Interface{Device: i.Device, Name: i.Name, IPAddress: i.IPAddress, Network: i.Network, Status: status}
				if err := app.store.UpsertInterface(iface); err != nil {
					return fmt.Errorf("interface %s/%s: %w", i.Device, i.Name, err)
				}
				interfaces++
			}
			for _, r := range f.Routes {
				routeType := model.RouteType(r.Type)
				if routeType == "" {
					routeType = model.RouteStatic
				}
				route := model.Route{Device: r.Device, DestinationNetwork: r.DestinationNetwork, GatewayIP: r.GatewayIP, Type: routeType, Metric: r.Metric}
				if err := app.store.UpsertRoute(route); err != nil {
					return fmt.Errorf("route %s on %s: %w", r.DestinationNetwork, r.Device, err)
				}
				routes++
			}
			for _, n := range f.NATMappings {
				natType := model.NATType(n.Type)
				if natType == "" {
					natType = model.NATSource
				}
				mapping := model.NATMapping{Device: n.Device, Logical: n.Logical, Real: n.Real, Type: natType, Description: n.Description}
				if _, err := app.store.InsertNATMapping(mapping); err != nil {
					return fmt.Errorf("nat mapping %s on %s: %w", n.Logical, n.Device, err)
				}
				nats++
			}

			fmt.Printf("%s %d devices, %d interfaces, %d routes, %d nat mappings\n", green("loaded"), devices, interfaces, routes, nats)
			return nil
		})
	},
}
