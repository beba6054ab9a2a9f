package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/topology"
)

var topologyIncludeStubs bool

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Derive device adjacency from shared networks",
	Long: `Derive the device adjacency graph: one node per device carrying an
up-interface, and one edge per pair of devices sharing an L3 network. A
shared network with three or more devices produces a clique, not a chain:
every pair on that network gets an edge, since there is no explicit link
entity to disambiguate physical topology.

Examples:
  netmap topology
  netmap topology --include-stub-networks
  netmap topology --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := topology.NewService(app.store)
		g := svc.Generate(topologyIncludeStubs)

		if app.jsonOutput {
			return printJSON(g)
		}

		fmt.Printf("Nodes (%d):\n", len(g.Nodes))
		for _, n := range g.Nodes {
			fmt.Printf("  - %s (%d interfaces)\n", n.Label, n.InterfacesCount)
		}

		fmt.Printf("\nEdges (%d):\n", len(g.Edges))
		t := cli.NewTable("DEVICE1", "DEVICE2", "NETWORK")
		for _, e := range g.Edges {
			t.Row(e.Device1, e.Device2, e.Network)
		}
		t.Flush()
		return nil
	},
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	topologyCmd.Flags().BoolVar(&topologyIncludeStubs, "include-stub-networks", false, "Include networks carried by only one device")
}
