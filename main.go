package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"timechat/config"
	appmodel "timechat/model"
	"timechat/telemetry"
	"timechat/timeapi"
	"timechat/ui"
)

const Version = "v0.1.0"

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	baseURL string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "timechat",
		Short:        "Ask for the time, date and day anywhere in the world",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "time service base URL (overrides config.toml and TIMECHAT_BASE_URL)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write debug logs to <data dir>/timechat.log")

	root.AddCommand(
		newCheckCmd(opts),
		newLookupCmd(opts),
		newVersionCmd(),
	)

	return root
}

// app is everything a command needs once configuration has been loaded.
type app struct {
	cfg    *config.Config
	client *timeapi.Client

	logCloser io.Closer
	shutdown  func(context.Context) error
}

func setup(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// flags win over config.toml and the environment
	if opts.baseURL != "" {
		cfg.SetBaseURL(opts.baseURL)
	}
	if opts.debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	_, logCloser, err := telemetry.InitLogger(config.LogFilePath(cfg.DataDir()), cfg.Debug)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.InitTelemetry(ctx, cfg.DataDir(), Version, cfg.TracesEnabled)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	client, err := timeapi.NewClient(cfg.BaseURL, cfg.RequestTimeout)
	if err != nil {
		_ = shutdown(ctx)
		_ = logCloser.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		client:    client,
		logCloser: logCloser,
		shutdown:  shutdown,
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.shutdown(ctx); err != nil {
		slog.Debug("telemetry shutdown failed", "error", err)
	}
	_ = a.logCloser.Close()
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	a, err := setup(ctx, opts)
	if err != nil {
		showError("Configuration Error", err.Error())
		return err
	}
	defer a.close()

	dataModel := appmodel.NewModel(a.cfg, a.client)
	defer dataModel.Close()

	p := tea.NewProgram(
		ui.NewAppView(dataModel),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running timechat: %w", err)
	}
	return nil
}

func showError(title, message string) {
	p := tea.NewProgram(
		ui.NewErrorModal(title, message),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check whether the time service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			if err := a.client.Ping(cmd.Context()); err != nil {
				fmt.Fprintf(out, "● API Disconnected (%s)\n", a.client.BaseURL())
				return err
			}
			fmt.Fprintf(out, "● API Connected (%s)\n", a.client.BaseURL())
			return nil
		},
	}
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup LOCATION",
		Short:   "Look up the current time, date and day for a location",
		Example: "  timechat lookup Tokyo\n  timechat lookup New York",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := strings.Join(args, " ")
			if strings.TrimSpace(location) == "" {
				return fmt.Errorf("location must not be blank")
			}

			a, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			resp, err := a.client.Lookup(cmd.Context(), location)
			if err != nil {
				fmt.Fprintln(out, appmodel.ApologyText)
				return err
			}
			fmt.Fprintln(out, resp.Message())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the timechat version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timechat %s\n", Version)
		},
	}
}
