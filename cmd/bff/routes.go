package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	httpapi "github.com/yungbote/flicker-bff/internal/http"
	httpH "github.com/yungbote/flicker-bff/internal/http/handlers"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the HTTP routes the server exposes",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			os.Exit(1)
		}
		log := logger.NewNop()
		var metrics *observability.Metrics
		if cfg.Metrics.Enabled {
			metrics = observability.NewMetrics()
		}
		r := httpapi.NewRouter(httpapi.RouterConfig{
			Log:           log,
			Metrics:       metrics,
			MetricsPath:   cfg.Metrics.Path,
			MovieHandler:  httpH.NewMovieHandler(log, nil),
			HealthHandler: httpH.NewHealthHandler(nil),
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\n", ri.Method, ri.Path)
		}
		_ = w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
