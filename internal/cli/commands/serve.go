package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/launch"
	"github.com/leapstack-labs/launchdash/internal/ui"
)

// AddServeFlags registers the serve flags on fs. The root command carries
// them as well, so running launchdash without a subcommand serves.
// Values only apply when set explicitly; defaults come from the config.
func AddServeFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "Interface to listen on (default: 127.0.0.1)")
	fs.Int("port", 0, "Port to serve on (default: 8050)")
	fs.Bool("debug", true, "Enable page reload endpoints and reload the data file when it changes")
	fs.Bool("open", false, "Open the dashboard in the default browser")
	fs.Bool("inclusive", false, "Keep launches whose payload equals a slider bound")
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the launch dashboard",
		Long: `Start a local web server with the SpaceX launch dashboard.

The page has a launch site dropdown driving a success pie chart and a
payload range slider driving a payload vs. outcome scatter plot.

In debug mode (the default) the page reloads when the server restarts
and the dashboard refreshes when the data file changes.`,
		Example: `  # Serve Downloads/spacex_launch_dash.csv on http://127.0.0.1:8050
  launchdash serve

  # Serve another file on a custom port
  launchdash serve --data launches.csv --port 3000

  # Production-style: no reload endpoints, open a browser
  launchdash serve --debug=false --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunServe(cmd)
		},
	}

	AddServeFlags(cmd.Flags())
	return cmd
}

// RunServe loads the dataset and serves the dashboard until interrupted.
func RunServe(cmd *cobra.Command) error {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	if err := cfg.ValidateDataFile(); err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	logger.Info("launch data loaded",
		"path", ds.Source,
		"loader", cfg.Data.Loader,
		"records", ds.Table.Len(),
		"sites", len(ds.Sites),
		"min_payload", ds.MinPayload,
		"max_payload", ds.MaxPayload,
	)

	opts := dataOptions(cfg)
	server := ui.NewServer(ui.Config{
		Store:         dash.NewStore(dash.NewData(ds, opts...)),
		Loader:        launch.Config{Loader: cfg.Data.Loader, Path: cfg.Data.Path},
		DataOptions:   opts,
		Addr:          cfg.Server.Addr(),
		Debug:         cfg.Server.Debug,
		SessionSecret: cfg.Server.SessionSecret,
		Title:         cfg.Dashboard.Title,
		PageTitle:     cfg.Dashboard.PageTitle,
		Logger:        logger,
	})

	url := cfg.Server.URL()
	if cfg.Server.AutoOpen {
		go openBrowser(url)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Dashboard running on %s\n", url)
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return server.Serve(ctx)
}

func loadDataset(ctx context.Context, cfg *config.Config) (*launch.Dataset, error) {
	ds, err := launch.Load(ctx, launch.Config{Loader: cfg.Data.Loader, Path: cfg.Data.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to load launch data: %w", err)
	}
	return ds, nil
}

func dataOptions(cfg *config.Config) []dash.Option {
	return []dash.Option{
		dash.WithInclusiveBounds(cfg.Dashboard.InclusiveBounds),
		dash.WithPalette(dash.Palette(cfg.Dashboard.Palette)),
	}
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
