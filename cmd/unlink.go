package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/installer"
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the provider slot symlink",
	Run: func(cmd *cobra.Command, args []string) {
		project := loadProject()
		inst := installer.New(project)

		err := inst.Unlink(cmd.Context())
		if errors.Is(err, installer.ErrNotLinked) {
			fmt.Println("nothing to unlink")
			return
		}

		if err != nil {
			log.Fatal(err)
		}
	},
}
