package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hal-netmap/netmap/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.netmap/settings.json.

Settings provide defaults for the Redis connection used to persist the
entity store between invocations.

Examples:
  netmap settings show
  netmap settings set redis_addr localhost:6380
  netmap settings set log_level debug
  netmap settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SETTING\tVALUE")
		fmt.Fprintln(w, "-------\t-----")
		fmt.Fprintf(w, "default_network\t%s\n", notSet(s.DefaultNetwork))
		fmt.Fprintf(w, "redis_addr\t%s\n", notSet(s.GetRedisAddr()))
		fmt.Fprintf(w, "redis_db\t%d\n", s.RedisDB)
		fmt.Fprintf(w, "log_level\t%s\n", notSet(s.GetLogLevel()))
		w.Flush()
		return nil
	},
}

func notSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings: default_network, redis_addr, redis_db, log_level`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting, value := args[0], args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "default_network":
			s.DefaultNetwork = value
		case "redis_addr":
			s.RedisAddr = value
		case "redis_db":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("redis_db must be an integer: %w", err)
			}
			s.RedisDB = n
		case "log_level":
			s.LogLevel = value
		default:
			return fmt.Errorf("unknown setting: %s (valid: default_network, redis_addr, redis_db, log_level)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Printf("%s set to: %s\n", setting, value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("All settings cleared.")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsClearCmd)
}
