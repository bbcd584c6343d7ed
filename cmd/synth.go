package cmd

import (
	"github.com/relloyd/sfsync/actions"
	"github.com/spf13/cobra"
)

var synthCfg = actions.SynthConfig{}

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Print the resources that would be deployed",
	Long: `Print the resources that would be deployed, without calling AWS. This includes the state
machine definition with placeholder ARNs, the schedule and its next firing, and the input
the rule sends to the state machine`,
	RunE: func(cmd *cobra.Command, args []string) error {
		synthCfg.Deployment = deployment
		return actions.RunSynth(newLogger(), &synthCfg)
	},
}

func init() {
	rootCmd.AddCommand(synthCmd)
	synthCmd.Flags().SortFlags = false
	addDeploymentFlags(synthCmd)
	switches.addFlag(synthCmd, &synthCfg.Format, "output", actions.FormatYAML, false, "")
	synthCmd.SilenceUsage = true
}
