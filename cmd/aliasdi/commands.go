package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/aliasdi/config"
	"github.com/kbukum/aliasdi/di"
	"github.com/kbukum/aliasdi/inspect"
	"github.com/kbukum/aliasdi/logger"
	"github.com/kbukum/aliasdi/observability"
	"github.com/kbukum/aliasdi/version"
)

const shutdownTimeout = 5 * time.Second

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "aliasdi",
		Short:         "Validate and inspect alias container configurations",
		Version:       version.GetShortVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		validateCommand(),
		aliasesCommand(),
		serveCommand(),
		version.Command("aliasdi"),
	)
	return root
}

// load reads the config file and builds the logger it describes. Logs go
// to stderr so command output stays parseable.
func load(path string) (*config.ContainerConfig, *logger.Logger, error) {
	cfg, err := config.LoadContainerConfig(path)
	if err != nil {
		return nil, nil, err
	}
	lc := cfg.Logging
	lc.Output = "stderr"
	return cfg, logger.New(&lc, cfg.Name), nil
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a config file and print the normalized aliases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(args[0])
			if err != nil {
				return err
			}
			entries, err := di.NewConfigValidator(log).Validate(cfg.Aliases)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(map[string]any{"aliases": entries}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func aliasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases <file>",
		Short: "List the aliases of a config file with their strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ALIAS\tSTRATEGY\tMODULE\tEXPORT")
			for _, info := range c.Registrations() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Alias, info.Strategy, info.Module, info.ClassName)
			}
			return w.Flush()
		},
	}
}

func serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve the registrations of a config file over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Providers go in before the container so its instruments record into them.
			telemetry, err := observability.Init(ctx, &cfg.Telemetry, observability.Resource{
				ServiceName:    cfg.Name,
				ServiceVersion: version.GetShortVersion(),
				Environment:    cfg.Environment,
			})
			if err != nil {
				return err
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := telemetry.Shutdown(flushCtx); err != nil {
					log.Warn("Telemetry shutdown failed", logger.Fields("error", err.Error()))
				}
			}()

			c, err := di.New(di.WithLogger(log), di.FromConfig(cfg))
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           inspect.NewEngine(c, log.WithComponent("inspect")),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info("Serving registrations", logger.Fields("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return c.Close()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func newContainer(path string) (*di.Container, error) {
	cfg, log, err := load(path)
	if err != nil {
		return nil, err
	}
	return di.New(di.WithLogger(log), di.FromConfig(cfg))
}
