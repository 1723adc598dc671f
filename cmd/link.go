package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/installer"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Point the framework's provider slot at the working copy",
	Run: func(cmd *cobra.Command, args []string) {
		project := loadProject()
		inst := installer.New(project)

		if err := inst.Relink(cmd.Context(), pipelineOptions()); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	linkCmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing provider directory without asking")
	linkCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the planned actions without performing them")
}
