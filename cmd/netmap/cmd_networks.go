package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/topology"
)

var networksIncludeStubs bool

var networksCmd = &cobra.Command{
	Use:   "networks <device>",
	Short: "List the networks carried by a device",
	Long: `List the networks carried by a device's up-interfaces. By default,
a network is listed only if some other device also carries an up-interface
on it; pass --include-stub-networks to list every network regardless.

Examples:
  netmap networks router1
  netmap networks router1 --include-stub-networks`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := topology.NewService(app.store)
		nets, err := svc.DeviceNetworks(args[0], networksIncludeStubs)
		if err != nil {
			return err
		}

		if app.jsonOutput {
			return printJSON(nets)
		}

		t := cli.NewTable("NETWORK", "INTERFACES")
		for _, n := range nets {
			names := ""
			for i, iface := range n.Interfaces {
				if i > 0 {
					names += ", "
				}
				names += iface.Name
			}
			t.Row(n.Network, names)
		}
		t.Flush()
		if len(nets) == 0 {
			fmt.Println("no networks")
		}
		return nil
	},
}

func init() {
	networksCmd.Flags().BoolVar(&networksIncludeStubs, "include-stub-networks", false, "Include networks carried by only this device")
}
