// Netmap - Network Routing & Topology Engine CLI
//
// A CLI tool for managing a network's entity store (devices, interfaces,
// routes, NAT mappings) and querying it:
//   - CIDR/IP matching and supernet-conflict detection
//   - NAT lookup and translation
//   - Longest-prefix-match route path simulation
//   - Topology inference from shared networks
//
// Every command loads the current entity store from Redis, applies its
// operation, and (for writes) saves the updated store back. Redis is
// optional: with no reachable server the store starts empty and writes
// are kept in memory for the life of the process only.
//
// Noun-group CLI pattern:
//
//	netmap <resource> <action> [args]
//
// Examples:
//
//	netmap device add router1
//	netmap interface add router1 eth0 10.0.0.1 10.0.0.0/24
//	netmap route add router1 10.1.0.0/16 10.0.0.2 --type static
//	netmap route-path 10.0.0.5 10.1.0.8
//	netmap topology
//	netmap settings show
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/cli"
	"github.com/hal-netmap/netmap/pkg/settings"
	"github.com/hal-netmap/netmap/pkg/store"
	"github.com/hal-netmap/netmap/pkg/util"
)

// App holds CLI state shared across all commands.
type App struct {
	// Option flags
	verbose    bool
	jsonOutput bool
	redisAddr  string
	redisDB    int

	// Initialized state (set in PersistentPreRunE)
	settings    *settings.Settings
	store       *store.Store
	redisClient *redis.Client
	redisLive   bool
}

var app = &App{}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "netmap",
	Short:             "Network routing & topology engine",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Netmap manages an in-memory entity store of devices, interfaces,
routes, and NAT mappings, persisted to Redis between invocations.

  netmap <resource> <action> [args]

Resources: device, interface, route, nat, topology
Queries:   match, conflicts, route-path, networks, connections
Meta:      settings, load`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		app.settings, err = settings.Load()
		if err != nil {
			util.Warnf("could not load settings: %v", err)
			app.settings = &settings.Settings{}
		}

		if app.verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel(app.settings.GetLogLevel())
		}

		if app.redisAddr == "" {
			app.redisAddr = app.settings.GetRedisAddr()
		}
		if app.redisDB == 0 {
			app.redisDB = app.settings.RedisDB
		}

		app.redisClient = redis.NewClient(&redis.Options{Addr: app.redisAddr, DB: app.redisDB})
		app.store, app.redisLive = loadStore(context.Background())

		return nil
	},
}

// loadStore attempts to load the entity store from Redis. If Redis is
// unreachable, it returns a fresh empty store and reports itself as not
// live: subsequent writes are not persisted.
func loadStore(ctx context.Context) (*store.Store, bool) {
	rs := store.NewRedisStore(app.redisClient)
	s, err := rs.LoadFrom(ctx)
	if err != nil {
		util.Warnf("could not reach redis at %s, using an empty in-process store: %v", app.redisAddr, err)
		return store.New(), false
	}
	return s, true
}

// saveStore persists app.store back to Redis, if Redis is reachable.
func saveStore(ctx context.Context) error {
	if !app.redisLive {
		util.Warnf("redis unavailable at %s, change was not persisted", app.redisAddr)
		return nil
	}
	rs := store.NewRedisStore(app.redisClient)
	return rs.SaveTo(ctx, app.store)
}

// withWrite runs fn against the loaded store and, on success, saves the
// store back to Redis. This is the standard post-mutation flow for every
// CLI write command.
func withWrite(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	return saveStore(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "JSON output")
	rootCmd.PersistentFlags().StringVar(&app.redisAddr, "redis-addr", "", "Redis address (overrides settings)")
	rootCmd.PersistentFlags().IntVar(&app.redisDB, "redis-db", 0, "Redis logical database (overrides settings)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "resource", Title: "Resource Commands:"},
		&cobra.Group{ID: "query", Title: "Query Commands:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{deviceCmd, interfaceCmd, routeCmd, natCmd, topologyCmd} {
		cmd.GroupID = "resource"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{matchCmd, conflictsCmd, routePathCmd, networksCmd, connectionsCmd} {
		cmd.GroupID = "query"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{settingsCmd, loadCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings or
// help command, which don't need a store connection.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "settings":
			return true
		}
	}
	return false
}

// Color helpers -- delegate to pkg/cli.
func green(s string) string { return cli.Green(s) }
func red(s string) string   { return cli.Red(s) }
func bold(s string) string  { return cli.Bold(s) }

// dash returns s if non-empty, otherwise "-".
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
