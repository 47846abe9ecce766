package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/flicker-bff/internal/envelope"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			os.Exit(1)
		}
		if cfg.Auth.JWTSecret != "" {
			cfg.Auth.JWTSecret = "[REDACTED]"
		}
		if cfg.Cache.RedisPassword != "" {
			cfg.Cache.RedisPassword = "[REDACTED]"
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Printf("failed to encode config: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

var statusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "List the response status registry",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tHTTP\tSERVICE\tMESSAGE")
		for _, st := range envelope.Statuses() {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", st.Name, st.HTTPStatus, int(st.Code), st.Message)
		}
		_ = w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusesCmd)
}
