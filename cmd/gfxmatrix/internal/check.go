package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/gfxmatrix/pkgs/buildsys"
	"github.com/goplus/gfxmatrix/pkgs/buildsys/manifest"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [manifest]",
	Short: "Check a committed manifest against a fresh resolution",
	Long: `Check resolves the matrix again and compares the result with the given manifest.
It prints a unified diff and fails if they differ. The format follows the file extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// formatOf picks the manifest format from a file name.
func formatOf(path string) manifest.Format {
	if filepath.Ext(path) == ".json" {
		return manifest.JSON
	}
	return manifest.YAML
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	want, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ds, err := resolveMatrix()
	if err != nil {
		return err
	}

	var got bytes.Buffer
	if err := manifest.New(formatOf(path)).Emit(&got, buildsys.Group(ds)); err != nil {
		return err
	}
	if diff := manifest.Diff(path, want, got.Bytes()); diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), diff)
		return fmt.Errorf("%s is out of date, regenerate it with 'gfxmatrix resolve -f %s -o %s'", path, formatOf(path), path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", path)
	return nil
}
