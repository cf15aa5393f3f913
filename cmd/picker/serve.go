package main

import (
	"github.com/aretw0/picker"
	"github.com/aretw0/picker/internal/cli"
	"github.com/aretw0/picker/internal/presentation/tui"
	httpAdapter "github.com/aretw0/picker/pkg/adapters/http"
	"github.com/aretw0/picker/pkg/metrics"
	"github.com/aretw0/picker/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the machine catalog, stateless transitions and in-memory sessions as
a JSON API, with Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, bindings, err := setup(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")
		quiet, _ := cmd.Flags().GetBool("quiet")

		collector := metrics.NewCollector()
		reg := prometheus.NewRegistry()
		if err := collector.Register(reg); err != nil {
			return err
		}

		mgr := session.NewManager(
			session.WithLogger(logger),
			session.WithPickerOptions(
				picker.WithMatcher(bindings),
				picker.WithLifecycleHooks(collector.Hooks()),
			),
		)
		handler := httpAdapter.NewHandler(mgr,
			httpAdapter.WithMatcher(bindings),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		)

		if !quiet {
			tui.PrintBanner(cmd.ErrOrStderr())
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.ServeHTTP(ctx, ":"+port, handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
