package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalmesh/edgeboot/pkg/promote"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a rendered configuration file",
	Long: `Run the structural validator against an already-rendered configuration
file in isolation. The file is only read, never modified.

Examples:
  # Validate the promoted config
  edgeboot validate /etc/edgeboot/gateway.conf

  # Validate a CI-rendered artifact
  edgeboot render --out /tmp/gateway.conf && edgeboot validate /tmp/gateway.conf`,
	Args: cobra.ExactArgs(1),
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	if err := promote.ValidateFile(args[0]); err != nil {
		return err
	}
	fmt.Println("✓ Configuration valid")
	return nil
}
