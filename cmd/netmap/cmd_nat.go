package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/model"
)

var natCmd = &cobra.Command{
	Use:   "nat",
	Short: "Manage NAT mappings",
	Long: `Manage Network Address Translation mappings in the entity store.

Logical and real addresses may each be a single IP or a CIDR network.
Per-IP translation is only computed when logical is a network and real is
a single host; otherwise a match is reported without a translated address.

Examples:
  netmap nat list --device router1 --type source
  netmap nat add router1 192.168.1.0/24 10.1.1.0/24 --type source
  netmap nat add router1 200.1.1.1 172.16.0.10 --type destination`,
}

var (
	natListDevice string
	natListType   string
)

var natListCmd = &cobra.Command{
	Use:   "list",
	Short: "List NAT mappings",
	RunE: func(cmd *cobra.Command, args []string) error {
		var mappings []model.NATMapping
		switch {
		case natListDevice != "" && natListType != "":
			mappings = app.store.NATMappingsOn(natListDevice, model.NATType(natListType))
		default:
			mappings = app.store.NATMappings()
		}

		t := cli.NewTable("ID", "DEVICE", "TYPE", "LOGICAL", "REAL", "DESCRIPTION")
		for _, n := range mappings {
			t.Row(fmt.Sprintf("%d", n.ID), n.Device, string(n.Type), n.Logical, n.Real, dash(n.Description))
		}
		t.Flush()
		return nil
	},
}

var (
	natType        string
	natDescription string
)

var natAddCmd = &cobra.Command{
	Use:   "add <device> <logical> <real>",
	Short: "Add a NAT mapping",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWrite(func() error {
			n := model.NATMapping{
				Device:      args[0],
				Logical:     args[1],
				Real:        args[2],
				Type:        model.NATType(natType),
				Description: natDescription,
			}
			saved, err := app.store.InsertNATMapping(n)
			if err != nil {
				return err
			}
			fmt.Printf("%s nat mapping #%d: %s -> %s on %s\n", green("saved"), saved.ID, saved.Logical, saved.Real, saved.Device)
			return nil
		})
	},
}

func init() {
	natListCmd.Flags().StringVar(&natListDevice, "device", "", "Filter to a single device (requires --type)")
	natListCmd.Flags().StringVar(&natListType, "type", "", "Filter by NAT type (source, destination; requires --device)")
	natAddCmd.Flags().StringVar(&natType, "type", string(model.NATSource), "NAT type (source, destination)")
	natAddCmd.Flags().StringVar(&natDescription, "description", "", "Mapping description")

	natCmd.AddCommand(natListCmd, natAddCmd)
}
