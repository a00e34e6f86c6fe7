package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"gndzkrkc.com/site/internal/config"
	"gndzkrkc.com/site/internal/logging"
	"gndzkrkc.com/site/internal/routing"
	"gndzkrkc.com/site/internal/sitemap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:          "web",
		Short:        "Serve the gndzkrkc.com site",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile, "")
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")
	root.AddCommand(newServeCmd(&envFile), newSitemapCmd(&envFile), newRoutesCmd(&envFile))
	return root
}

func newServeCmd(envFile *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *envFile, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides SITE_ADDR and PORT)")
	return cmd
}

func newSitemapCmd(envFile *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml for the configured origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			table, err := loadTable(cfg.RoutesFile, slog.Default())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return sitemap.WriteXML(w, sitemap.NewBuilder(table, cfg.Origin).Build())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func newRoutesCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print every route in every locale under the active prefix policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			table, err := loadTable(cfg.RoutesFile, slog.Default())
			if err != nil {
				return err
			}
			neg, err := routing.NewNegotiator(table, cfg.Policy)
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), neg)
		},
	}
}

func printRoutes(w io.Writer, neg *routing.Negotiator) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLOCALE\tPATH\tHREF\tDEPTH")
	table := neg.Table()
	for _, key := range table.Keys() {
		for _, l := range table.Locales() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", key, l, table.Resolve(key, l), neg.Href(key, l), routing.Depth(key))
		}
	}
	return tw.Flush()
}

func runServe(ctx context.Context, envFile, addr string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.Dev())
	slog.SetDefault(logger)

	s, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	srv := s.httpServer()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening", "addr", cfg.Addr, "dev", cfg.Dev(), "origin", cfg.Origin, "locale_prefix", cfg.Policy)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
