package main

import (
	"io"
	"log/slog"

	"github.com/arllen133/sqldemo"
	"github.com/arllen133/sqldemo/internal/config"
	"github.com/arllen133/sqldemo/internal/server"
	"github.com/arllen133/sqldemo/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()
	rc := &cobra.Command{
		Use:   "sqldemo",
		Short: "Serve an in-memory users table through ad-hoc SQL query endpoints.",
		Long: `sqldemo serves a small in-memory SQLite users table over HTTP.

GET /users lists every row; GET /query?table=&column=&condition= builds a
SELECT statement by concatenating the parameters and runs it. The statement
is built without any escaping: do not expose this service to untrusted
networks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(viper.New(), cmd.Flags()); err != nil {
				return err
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, cfg, stderr)
		},
	}
	rc.Flags().StringP("config", "c", "", "Configuration file to read from (TOML or YAML).")
	cfg.Flags(rc.Flags())

	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}

func serve(cmd *cobra.Command, cfg *config.Config, logOut io.Writer) error {
	ctx := cmd.Context()

	logger, err := cfg.Logger(logOut)
	if err != nil {
		return err
	}

	opts := []sqldemo.SessionOption{
		sqldemo.WithLogger(logger),
		sqldemo.WithQueryLogging(cfg.LogQueries),
		sqldemo.WithSlowQueryThreshold(cfg.SlowQueryThreshold),
	}
	if cfg.Tracing {
		opts = append(opts, sqldemo.WithDefaultTracer(), sqldemo.WithDefaultMeter())
	}

	st, err := store.Open(ctx, opts...)
	if err != nil {
		return err
	}
	defer st.Close()

	h := server.NewHandler(st, server.WithLogger(logger))
	srv := server.NewServer(cfg.Bind, h,
		server.OptServerLogger(logger),
		server.OptServerMetricsAddr(cfg.MetricsAddr),
		server.OptServerShutdownTimeout(cfg.ShutdownTimeout),
	)
	if err := srv.Open(); err != nil {
		return err
	}

	logger.Info("available endpoints",
		slog.String("help", "GET /"),
		slog.String("users", "GET /users"),
		slog.String("query", "GET /query?table=users&column=name,email&condition=age>25"),
	)
	return srv.Serve(ctx)
}
