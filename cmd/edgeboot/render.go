package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
	"github.com/signalmesh/edgeboot/pkg/promote"
	"github.com/signalmesh/edgeboot/pkg/render"
	"github.com/signalmesh/edgeboot/pkg/routing"
)

var renderFlags struct {
	templatePath string
	outPath      string
	check        bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the gateway configuration without promoting it",
	Long: `Render the gateway configuration from the pristine template and the
current environment, writing the result to stdout (or --out). The
authoritative config path is never touched, so this is safe to run
beside a live gateway for debugging or CI snapshotting.

Examples:
  # Render to stdout using template discovery
  edgeboot render

  # Render from an explicit template and check the result
  edgeboot render --template ./gateway.conf.tmpl --check`,
	Args: cobra.NoArgs,
	RunE: renderConfig,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderFlags.templatePath, "template", "", "template path (skips candidate directory discovery)")
	renderCmd.Flags().StringVarP(&renderFlags.outPath, "out", "o", "-", "output path, - for stdout")
	renderCmd.Flags().BoolVar(&renderFlags.check, "check", false, "run the structural validator on the result")
}

func renderConfig(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(cfgFile, os.LookupEnv)
	if err != nil {
		return err
	}
	setupLogging(settings)

	table, err := routing.Build(settings)
	if err != nil {
		return err
	}

	templatePath := renderFlags.templatePath
	if templatePath == "" {
		paths, err := promote.Discover(settings.CandidateDirs, settings.TemplateName, settings.OutputName)
		if err != nil {
			return err
		}
		templatePath = paths.Template
	}
	templateText, err := os.ReadFile(templatePath)
	if err != nil {
		return cli.NewCommandError("render", fmt.Errorf("reading template %s: %w", templatePath, err))
	}

	cfg, err := render.Render(settings, table, string(templateText))
	if err != nil {
		return err
	}

	if renderFlags.check {
		if err := promote.Validate(cfg.Text); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "✓ Configuration valid")
	}

	if renderFlags.outPath == "-" {
		fmt.Print(cfg.Text)
		return nil
	}
	if err := os.WriteFile(renderFlags.outPath, []byte(cfg.Text), 0644); err != nil {
		return cli.NewCommandError("render", err)
	}
	return nil
}
