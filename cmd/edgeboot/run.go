package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
	"github.com/signalmesh/edgeboot/pkg/promote"
	"github.com/signalmesh/edgeboot/pkg/render"
	"github.com/signalmesh/edgeboot/pkg/routing"
	"github.com/signalmesh/edgeboot/pkg/supervisor"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Bootstrap the gateway and exec the primary listener",
	Long: `Run the full bootstrap sequence: build the route table from the
environment, render the gateway configuration from the pristine
template, validate it out-of-place, promote it atomically, start
auxiliary commands best-effort, and replace this process with the
primary listening process.

On success this command never returns: the process image is replaced,
so termination signals from the external process manager reach the
listener directly.

Examples:
  # Bootstrap with defaults
  edgeboot run

  # Bootstrap with a settings file
  edgeboot run --config /etc/edgeboot/edgeboot.yaml`,
	Args: cobra.NoArgs,
	RunE: runGateway,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runGateway(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(cfgFile, os.LookupEnv)
	if err != nil {
		return err
	}
	setupLogging(settings)

	runID := uuid.NewString()
	logger := slog.Default().With("run_id", runID)
	logger.Info("starting gateway bootstrap",
		"listen_port", settings.ListenPort,
		"routes", len(settings.Routes),
	)

	table, err := routing.Build(settings)
	if err != nil {
		return err
	}

	paths, err := promote.Discover(settings.CandidateDirs, settings.TemplateName, settings.OutputName)
	if err != nil {
		return err
	}
	logger.Info("deployment variant selected",
		"dir", paths.Dir,
		"template", paths.Template,
	)

	templateText, err := os.ReadFile(paths.Template)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("reading template %s: %w", paths.Template, err))
	}

	promoter := &promote.Promoter{
		CheckCommand: settings.CheckCommand,
		Logger:       logger,
	}

	bootstrap := &supervisor.Bootstrap{
		Logger: logger,
		Synthesize: func() (*render.GatewayConfig, error) {
			return render.Render(settings, table, string(templateText))
		},
		Promote: func(cfg *render.GatewayConfig) error {
			return promoter.Promote(cfg, paths)
		},
		Auxiliary:  settings.Auxiliary,
		Primary:    settings.Primary,
		ConfigPath: paths.Authoritative,
	}

	// Never returns on success: the primary process takes over.
	return bootstrap.Run()
}
