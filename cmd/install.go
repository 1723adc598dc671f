package cmd

import (
	"log"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/qdev-tools/aerdev/installer"
)

var (
	yes     bool
	dryRun  bool
	skipPip bool
)

// confirm asks the user before a destructive step. Replacing a real
// directory under site-packages loses whatever was installed there.
func confirm(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{Message: message}

	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}

	return ok, nil
}

func pipelineOptions() installer.Options {
	options := installer.Options{
		DryRun:  dryRun,
		SkipPip: skipPip,
	}

	if !yes {
		options.Confirm = confirm
	}

	return options
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Editable-install the package, sync artifacts and relink the provider slot",
	Run: func(cmd *cobra.Command, args []string) {
		project := loadProject()
		inst := installer.New(project)

		if err := inst.Install(cmd.Context(), pipelineOptions()); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	installCmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing provider directory without asking")
	installCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the planned actions without performing them")
	installCmd.Flags().BoolVar(&skipPip, "skip-pip", false, "skip the editable install, only sync artifacts and relink")
}
