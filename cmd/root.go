package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/filesystem"
	"github.com/qdev-tools/aerdev/installer"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "aerdev",
	Short: "Developer install helper for a working copy of the Aer simulator",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", installer.ManifestName, "manifest file describing the working copy")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(diffCmd)
}

// loadProject resolves the --config flag and loads the manifest, falling
// back to the defaults when the file does not exist.
func loadProject() *installer.Project {
	path, err := filesystem.Abs(configPath)
	if err != nil {
		log.Fatal(err)
	}

	loader := installer.Loader{Manifest: path}

	project, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}

	return project
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
