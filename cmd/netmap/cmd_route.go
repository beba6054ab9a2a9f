package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/model"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Manage routes",
	Long: `Manage device routing table entries in the entity store.

A route's identity is the triple (device, destination network, gateway ip).
Connected routes carry no gateway; all other route types require one.

Examples:
  netmap route list --device router1
  netmap route add router1 10.1.0.0/16 10.0.0.2 --type static
  netmap route add router1 10.0.0.0/24 "" --type connected`,
}

var routeListDevice string

var routeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		var routes []model.Route
		if routeListDevice != "" {
			routes = app.store.RoutesOn(routeListDevice)
		} else {
			routes = app.store.Routes()
		}

		t := cli.NewTable("DEVICE", "DESTINATION", "GATEWAY", "TYPE", "METRIC")
		for _, r := range routes {
			t.Row(r.Device, r.DestinationNetwork, dash(r.GatewayIP), string(r.Type), fmt.Sprintf("%d", r.Metric))
		}
		t.Flush()
		return nil
	},
}

var (
	routeType   string
	routeMetric int
)

var routeAddCmd = &cobra.Command{
	Use:   "add <device> <destination-network> <gateway-ip>",
	Short: "Add or update a route",
	Long: `Add or update a route. Pass an empty string ("") for gateway-ip on
connected routes.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWrite(func() error {
			r := model.Route{
				Device:             args[0],
				DestinationNetwork: args[1],
				GatewayIP:          args[2],
				Type:               model.RouteType(routeType),
				Metric:             routeMetric,
			}
			if err := app.store.UpsertRoute(r); err != nil {
				return err
			}
			fmt.Printf("%s route %s -> %s on %s\n", green("saved"), r.DestinationNetwork, dash(r.GatewayIP), r.Device)
			return nil
		})
	},
}

func init() {
	routeListCmd.Flags().StringVar(&routeListDevice, "device", "", "Filter to a single device")
	routeAddCmd.Flags().StringVar(&routeType, "type", string(model.RouteStatic), "Route type (connected, static, ospf, bgp, rip, eigrp, other)")
	routeAddCmd.Flags().IntVar(&routeMetric, "metric", 0, "Route metric")

	routeCmd.AddCommand(routeListCmd, routeAddCmd)
}
