package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/flicker-bff/internal/app"
	"github.com/yungbote/flicker-bff/internal/platform/shutdown"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the BFF HTTP server",
	Long:  `Loads configuration, wires the downstream clients and serves the movie API until SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		ctx, stop := shutdown.NotifyContext(context.Background())
		defer stop()

		a, err := app.NewWithConfig(ctx, cfg)
		if err != nil {
			fmt.Printf("failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		if err := a.Run(ctx); err != nil {
			fmt.Printf("server exited: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides http.addr)")

	rootCmd.Run = serveCmd.Run
}
