package internal

import (
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	curated    bool
	targetArgs []string
	jobs       int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gfxmatrix",
	Short: "gfxmatrix resolves a native build matrix into build descriptors",
	Long: `gfxmatrix expands the platform x windowing x graphics x optimization matrix of the
ImPlatform demo and resolves every valid combination into a build descriptor: sources,
defines, include and library paths, libraries, frameworks and flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutputLevel(log.Ldebug)
		} else {
			log.SetOutputLevel(log.Linfo)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Matrix file (YAML); defaults to the built-in registry")
	flags.BoolVar(&curated, "curated", false, "Use the curated target list instead of the full product")
	flags.StringSliceVarP(&targetArgs, "target", "t", nil, "Explicit target platform/windowing/graphics/optimization (repeatable)")
	flags.IntVarP(&jobs, "jobs", "j", 0, "Targets resolved in parallel (default GOMAXPROCS)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
