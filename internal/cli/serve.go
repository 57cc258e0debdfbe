package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fairapi/internal/config"
	"fairapi/internal/flags"
	"fairapi/internal/rules"
	"fairapi/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP assessment API",
	Long: `Start the HTTP assessment API.

Endpoints:
  GET  /assess?repository=<url>[&branch=<name>]
  POST /assess   {"repository": "...", "branch": "..."}
  POST /check    {"url": "...", "branch": "..."}
  GET  /criteria, /healthz, /version, /openapi.json, /docs

The server shuts down gracefully on SIGINT or SIGTERM, giving in-flight
assessments server.shutdown_timeout to finish.

Examples:
  fairapi serve --port 8080
  FAIRAPI_SERVER_PORT=8080 GITHUB_TOKEN=<token> fairapi serve
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cmd, cfg)
	},
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	svc, eng, err := newService(ctx, cfg, logger, "")
	if err != nil {
		return err
	}

	version, commit, date := BuildInfo()
	srv, err := server.New(svc,
		server.WithLogger(logger),
		server.WithCriteria(criteriaInfo(eng.Rules())),
		server.WithBuildInfo(server.BuildInfo{Version: version, Commit: commit, Date: date}),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr(), err)
	}
	return srv.Serve(ctx, ln)
}

func criteriaInfo(rs []rules.Rule) []server.Criterion {
	out := make([]server.Criterion, 0, len(rs))
	for _, r := range rs {
		out = append(out, server.Criterion{ID: r.ID(), Title: r.Title(), Description: r.Description()})
	}
	return out
}

func init() {
	rootCmd.AddCommand(serveCmd)

	d := config.New()
	serveCmd.Flags().String(flags.FlagHost, d.Server.Host, "Interface to bind (empty = all interfaces)")
	serveCmd.Flags().IntP(flags.FlagPort, "p", d.Server.Port, "Port to listen on")
}
