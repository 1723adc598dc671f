package cmd

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/installer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the provider slot and per-rule artifact state",
	Run: func(cmd *cobra.Command, args []string) {
		project := loadProject()
		inst := installer.New(project)

		status, err := inst.Status(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		good := color.New(color.FgGreen)
		warn := color.New(color.FgYellow)

		fmt.Printf("site-packages: %s\n", status.Site)

		switch {
		case status.Current:
			good.Printf("provider slot %s -> %s\n", status.Slot, status.Target)
		case status.Linked:
			warn.Printf("provider slot %s -> %s (not this working copy)\n", status.Slot, status.Target)
		default:
			warn.Printf("provider slot %s is not linked\n", status.Slot)
		}

		for _, rule := range status.Rules {
			fmt.Printf("%s -> %s: %d staged, %d synced\n", rule.Rule.Staging, rule.Rule.Dest, len(rule.Staged), len(rule.Synced))

			synced := map[string]bool{}
			for _, name := range rule.Synced {
				synced[name] = true
			}

			for _, name := range rule.Staged {
				if synced[name] {
					good.Printf("  %s\n", name)
				} else {
					warn.Printf("  %s (not synced)\n", name)
				}
			}
		}
	},
}
