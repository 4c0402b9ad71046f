package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/footfit/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation HTTP API",
	Long: `Serve exposes the engine over HTTP:

  GET  /api/v1/health     liveness and version
  GET  /api/v1/options    answer values, labels and wizard defaults
  POST /api/v1/recommend  profile JSON in, recommendation JSON out
  GET  /metrics           Prometheus metrics

Narratives are added when llm.provider is configured.

Example:
  footfit serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyCommonFlags(cfg)
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(newPipeline(cfg), cfg.Server, Version).ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the recommendation cache")
}
