package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/model"
)

var interfaceCmd = &cobra.Command{
	Use:   "interface",
	Short: "Manage interfaces",
	Long: `Manage device interfaces in the entity store.

An interface's identity is the triple (device, name, ip address): the same
interface name on a device may carry several IP addresses.

Examples:
  netmap interface list
  netmap interface list --device router1
  netmap interface add router1 eth0 10.0.0.1 10.0.0.0/24
  netmap interface add router1 eth0 10.0.0.1 10.0.0.0/24 --down`,
}

var interfaceListDevice string

var interfaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List interfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		var ifaces []model.Interface
		if interfaceListDevice != "" {
			ifaces = app.store.InterfacesOn(interfaceListDevice)
		} else {
			ifaces = app.store.Interfaces()
		}

		t := cli.NewTable("DEVICE", "NAME", "IP ADDRESS", "NETWORK", "STATUS")
		for _, i := range ifaces {
			t.Row(i.Device, i.Name, i.IPAddress, i.Network, cli.StatusBadge(string(i.Status)))
		}
		t.Flush()
		return nil
	},
}

var interfaceDown bool

var interfaceAddCmd = &cobra.Command{
	Use:   "add <device> <name> <ip-address> <network>",
	Short: "Add or update an interface",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWrite(func() error {
			status := model.StatusUp
			if interfaceDown {
				status = model.StatusDown
			}
			i := model.Interface{
				Device:    args[0],
				Name:      args[1],
				IPAddress: args[2],
				Network:   args[3],
				Status:    status,
			}
			if err := app.store.UpsertInterface(i); err != nil {
				return err
			}
			fmt.Printf("%s interface %s/%s (%s)\n", green("saved"), i.Device, i.Name, i.IPAddress)
			return nil
		})
	},
}

func init() {
	interfaceListCmd.Flags().StringVar(&interfaceListDevice, "device", "", "Filter to a single device")
	interfaceAddCmd.Flags().BoolVar(&interfaceDown, "down", false, "Create the interface administratively down")

	interfaceCmd.AddCommand(interfaceListCmd, interfaceAddCmd)
}
