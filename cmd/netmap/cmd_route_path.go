package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/routing"
)

var routePathTimeout time.Duration

var routePathCmd = &cobra.Command{
	Use:   "route-path <source> <destination>",
	Short: "Simulate a hop-by-hop route from source to destination",
	Long: `Simulate the path a packet from source to destination would take,
hop by hop, using longest-prefix-match routing on each traversed device.
Reports any supernet conflicts, NAT applied along the way, and a routing
loop or missing route if the path does not reach its destination.

Examples:
  netmap route-path 10.0.0.5 10.1.0.8
  netmap route-path 10.0.0.5 10.1.0.8 --timeout 2s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if routePathTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, routePathTimeout)
			defer cancel()
		}

		svc := routing.NewService(app.store)
		result := svc.FindRoutePath(ctx, args[0], args[1])

		if app.jsonOutput {
			return printJSON(result)
		}

		if result.Status != routing.StatusSuccess {
			fmt.Printf("%s %s\n", red("error:"), result.Message)
			for _, c := range result.Conflicts {
				fmt.Printf("  - %s conflicts with %s on %s\n", c.Query, c.Candidate, c.Device)
			}
			printPath(result)
			return nil
		}

		fmt.Printf("%s %s -> %s\n", green("success:"), result.Source, result.Destination)
		if result.NATApplied.Source {
			fmt.Printf("  source NAT applied: %s -> %s\n", result.NATSourceDetails.Mapping.Logical, result.NATSourceDetails.Mapping.Real)
		}
		if result.NATApplied.Destination {
			fmt.Printf("  destination NAT applied: %s -> %s\n", result.NATDestinationDetails.Mapping.Logical, result.NATDestinationDetails.Mapping.Real)
		}
		printPath(result)
		return nil
	},
}

func printPath(result routing.Result) {
	if len(result.Path) == 0 {
		return
	}
	fmt.Println("\nPath:")
	for i, hop := range result.Path {
		fmt.Printf("  %d. %s", i+1, cli.DotPad(hop.Device, 16))
		if hop.Network != "" {
			fmt.Printf("  via %s", hop.Network)
		}
		if hop.Gateway != "" {
			fmt.Printf(" (gw %s)", hop.Gateway)
		}
		if hop.NextHop != "" {
			fmt.Printf(" -> %s", hop.NextHop)
		}
		if hop.Note != "" {
			fmt.Printf("  [%s]", hop.Note)
		}
		fmt.Println()
	}
}

func init() {
	routePathCmd.Flags().DurationVar(&routePathTimeout, "timeout", 0, "Abort the simulation after this duration")
}
