package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/filesystem"
	"github.com/qdev-tools/aerdev/mirror"
)

var diffCmd = &cobra.Command{
	Use:   "diff <derived-test> <reference-test>",
	Short: "Diff a derived test file against its upstream counterpart, modulo the class renames",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		project := loadProject()

		derived, err := filesystem.Abs(args[0])
		if err != nil {
			log.Fatal(err)
		}

		reference, err := filesystem.Abs(args[1])
		if err != nil {
			log.Fatal(err)
		}

		result, err := project.Mirror().Diff(derived, reference)
		if err != nil {
			log.Fatal(err)
		}

		if result.Diff == "" {
			fmt.Printf("%s mirrors %s\n", args[0], args[1])
			return
		}

		mirror.Render(os.Stdout, result.Diff)
	},
}
