package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/goplus/gfxmatrix/pkgs/buildsys"
	"github.com/goplus/gfxmatrix/pkgs/buildsys/manifest"
	"github.com/spf13/cobra"
)

var resolveFormat string
var resolveOutput string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the matrix into a descriptor manifest",
	Long: `Resolve turns every selected target into a build descriptor and writes them as a
manifest grouped by platform. Resolution fails as a whole if any target is invalid,
conflicting, incomplete or collides with another.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "yaml", "Manifest format (json or yaml)")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	format, err := manifest.ParseFormat(resolveFormat)
	if err != nil {
		return err
	}
	ds, err := resolveMatrix()
	if err != nil {
		return err
	}

	if resolveOutput == "" {
		return emit(cmd.OutOrStdout(), format, ds)
	}
	f, err := os.Create(resolveOutput)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	err = emit(f, format, ds)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write output: %w", cerr)
	}
	return err
}

func emit(w io.Writer, format manifest.Format, ds []*buildsys.Descriptor) error {
	return manifest.New(format).Emit(w, buildsys.Group(ds))
}
