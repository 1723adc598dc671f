package cmd

import (
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/builder"
	"github.com/qdev-tools/aerdev/filesystem"
	"github.com/qdev-tools/aerdev/installer"
)

var (
	buildLog   string
	buildClean bool
)

// stagingDirs collects the distinct staging trees named by the sync rules.
func stagingDirs(project *installer.Project) []filesystem.Path {
	seen := map[filesystem.Path]bool{}
	var dirs []filesystem.Path

	for _, rule := range project.Manifest.Sync {
		dir := project.Source.Join(filepath.FromSlash(rule.Staging))
		if seen[dir] {
			continue
		}

		seen[dir] = true
		dirs = append(dirs, dir)
	}

	return dirs
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the simulator package, logging diagnostics to a file",
	Run: func(cmd *cobra.Command, args []string) {
		project := loadProject()

		logPath := project.Log
		if buildLog != "" {
			var err error
			logPath, err = filesystem.Abs(buildLog)
			if err != nil {
				log.Fatal(err)
			}
		}

		b := builder.Builder{
			Dir:        project.Source,
			Command:    project.Manifest.Build.Command,
			Log:        logPath,
			Staging:    stagingDirs(project),
			CleanFirst: buildClean,
		}

		if err := b.Build(cmd.Context()); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildLog, "log", "", "log file for build output (default is the manifest's log path)")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "remove the staging trees before building")
}
