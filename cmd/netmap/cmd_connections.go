package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/topology"
)

var (
	connectionsNetwork string
	connectionsDevice1 string
	connectionsDevice2 string
)

var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Query derived topology edges",
	Long: `Query the derived device-adjacency graph, either by network or by
a specific device pair.

Examples:
  netmap connections --network=10.0.0.0/24
  netmap connections --device1=router1 --device2=router2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if connectionsNetwork == "" && (connectionsDevice1 == "" || connectionsDevice2 == "") {
			return fmt.Errorf("specify --network, or both --device1 and --device2")
		}

		svc := topology.NewService(app.store)
		g := svc.Generate(true)

		var matches []topology.Edge
		for _, e := range g.Edges {
			if connectionsNetwork != "" && e.Network != connectionsNetwork {
				continue
			}
			if connectionsDevice1 != "" && connectionsDevice2 != "" {
				pair := (e.Device1 == connectionsDevice1 && e.Device2 == connectionsDevice2) ||
					(e.Device1 == connectionsDevice2 && e.Device2 == connectionsDevice1)
				if !pair {
					continue
				}
			}
			matches = append(matches, e)
		}

		if app.jsonOutput {
			return printJSON(matches)
		}

		t := cli.NewTable("DEVICE1", "DEVICE2", "NETWORK")
		for _, e := range matches {
			t.Row(e.Device1, e.Device2, e.Network)
		}
		t.Flush()
		if len(matches) == 0 {
			fmt.Println("no connections found")
		}
		return nil
	},
}

func init() {
	connectionsCmd.Flags().StringVar(&connectionsNetwork, "network", "", "Filter by shared network CIDR")
	connectionsCmd.Flags().StringVar(&connectionsDevice1, "device1", "", "First device of a pair (requires --device2)")
	connectionsCmd.Flags().StringVar(&connectionsDevice2, "device2", "", "Second device of a pair (requires --device1)")
}
