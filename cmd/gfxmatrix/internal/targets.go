package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the targets of the matrix",
	Long:  `Targets prints every selected target, one per line, in resolution order.`,
	Args:  cobra.NoArgs,
	RunE:  runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	targets, err := selectTargets(cfg)
	if err != nil {
		return err
	}
	if targets == nil {
		targets = cfg.Registry.Targets()
	} else if targets, err = cfg.Registry.Select(targets); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, t := range targets {
		fmt.Fprintln(out, t)
	}
	return nil
}
