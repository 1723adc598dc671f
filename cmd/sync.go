package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/installer"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy staged native-extension artifacts into the package tree",
	Run: func(cmd *cobra.Command, args []string) {
		project := loadProject()
		inst := installer.New(project)

		results, err := inst.Sync(cmd.Context(), installer.Options{DryRun: syncDryRun})
		if err != nil {
			log.Fatal(err)
		}

		for _, result := range results {
			fmt.Printf("%s -> %s: %d artifact(s)\n", result.Rule.Staging, result.Rule.Dest, len(result.Copied))
			for _, name := range result.Copied {
				fmt.Printf("  %s\n", name)
			}
		}
	},
}

func init() {
	syncCmd.Flags().BoolVarP(&syncDryRun, "dry-run", "n", false, "list the artifacts without copying them")
}
