package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/routing"
)

var matchCmd = &cobra.Command{
	Use:   "match <ip-or-cidr>",
	Short: "Find networks matching a query IP or CIDR",
	Long: `Classify how a query IP or CIDR relates to every known network: an
exact match, the network's supernet, its subnet, or a partial overlap.

Examples:
  netmap match 10.0.0.5
  netmap match 10.0.0.0/16`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := routing.NewService(app.store)
		matches, err := svc.FindMatchingNetworks(args[0])
		if err != nil {
			return err
		}

		t := cli.NewTable("DEVICE", "NETWORK", "RELATIONSHIP")
		for _, m := range matches {
			t.Row(m.Device, m.Network.String(), string(m.Relationship))
		}
		t.Flush()
		if len(matches) == 0 {
			fmt.Println("no matching networks")
		}
		return nil
	},
}

var conflictsCmd = &cobra.Command{
	Use:   "conflicts <ip-or-cidr>",
	Short: "Check a query CIDR for supernet conflicts",
	Long: `Report every known network strictly contained within query: query
is a supernet conflict when it is broader than networks already in use.
Host queries never conflict.

Examples:
  netmap conflicts 10.0.0.0/8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := routing.NewService(app.store)
		conflicts, err := svc.CheckSupernetConflicts(args[0])
		if err != nil {
			return err
		}

		if len(conflicts) == 0 {
			fmt.Println(green("no conflicts"))
			return nil
		}

		t := cli.NewTable("QUERY", "CANDIDATE", "DEVICE")
		for _, c := range conflicts {
			t.Row(c.Query, c.Candidate, c.Device)
		}
		t.Flush()
		return nil
	},
}
