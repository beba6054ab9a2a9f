package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/model"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage devices",
	Long: `Manage devices in the entity store.

Examples:
  netmap device list
  netmap device show router1
  netmap device add router1 --description "edge router"
  netmap device rm router1`,
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := cli.NewTable("NAME", "DESCRIPTION", "INTERFACES", "ROUTES")
		for _, d := range app.store.Devices() {
			t.Row(d.Name, dash(d.Description),
				fmt.Sprintf("%d", len(app.store.InterfacesOn(d.Name))),
				fmt.Sprintf("%d", len(app.store.RoutesOn(d.Name))))
		}
		t.Flush()
		return nil
	},
}

var deviceShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a device and its interfaces and routes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		d, err := app.store.Device(name)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", bold(d.Name))
		if d.Description != "" {
			fmt.Printf("  %s\n", d.Description)
		}

		fmt.Println("\nInterfaces:")
		ifaceTable := cli.NewTable("NAME", "IP ADDRESS", "NETWORK", "STATUS")
		for _, i := range app.store.InterfacesOn(name) {
			ifaceTable.Row(i.Name, i.IPAddress, i.Network, cli.StatusBadge(string(i.Status)))
		}
		ifaceTable.Flush()

		fmt.Println("\nRoutes:")
		routeTable := cli.NewTable("DESTINATION", "GATEWAY", "TYPE", "METRIC")
		for _, r := range app.store.RoutesOn(name) {
			routeTable.Row(r.DestinationNetwork, dash(r.GatewayIP), string(r.Type), fmt.Sprintf("%d", r.Metric))
		}
		routeTable.Flush()

		return nil
	},
}

var deviceDescription string

var deviceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWrite(func() error {
			d := model.Device{Name: args[0], Description: deviceDescription}
			if err := app.store.UpsertDevice(d); err != nil {
				return err
			}
			fmt.Printf("%s device %s\n", green("saved"), d.Name)
			return nil
		})
	},
}

var deviceRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"delete", "remove"},
	Short:   "Remove a device and its interfaces, routes, and NAT mappings",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWrite(func() error {
			if err := app.store.DeleteDevice(args[0]); err != nil {
				return err
			}
			fmt.Printf("%s device %s\n", green("removed"), args[0])
			return nil
		})
	},
}

func init() {
	deviceAddCmd.Flags().StringVar(&deviceDescription, "description", "", "Device description")

	deviceCmd.AddCommand(deviceListCmd, deviceShowCmd, deviceAddCmd, deviceRemoveCmd)
}
