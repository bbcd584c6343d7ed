package cmd

import (
	"fmt"

	"github.com/relloyd/sfsync/actions"
	"github.com/relloyd/sfsync/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure default flag values",
	Long: fmt.Sprintf(`Configure default flag values, where:

- Defaults are stored in file %q
- Keys match the long names of the flags they provide a default for, e.g. "output-bucket"
`, config.Main.FullPath),
}

var configSetCfg = actions.ConfigSetConfig{}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Add or set a default flag value",
	Long:  fmt.Sprintf("Add a default flag value to config file %q", config.Main.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		configSetCfg.ConfigFile = config.Main
		return actions.RunConfigSet(&configSetCfg)
	},
}

var configListCfg = actions.ConfigListConfig{}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all default flag values",
	Long:  fmt.Sprintf("List default flag values stored in config file %q", config.Main.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		configListCfg.ConfigFile = config.Main
		_, err := actions.RunConfigList(&configListCfg)
		return err
	},
}

var configRemoveCfg = actions.ConfigRemoveConfig{}

var configRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm", "del", "delete"},
	Short:   "Remove a default flag value",
	Long:    fmt.Sprintf("Remove a default flag value from config file %q", config.Main.FullPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		configRemoveCfg.ConfigFile = config.Main
		return actions.RunConfigRemove(&configRemoveCfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configListCmd, configRemoveCmd)
	// set
	configSetCmd.Flags().SortFlags = false
	configSetCmd.Flags().StringVarP(&configSetCfg.Key, "key", "k", "", "* The key to set in config. Match the name of the flag\n"+
		"to have this value take effect in commands")
	configSetCmd.Flags().StringVarP(&configSetCfg.Value, "value", "v", "", "* The default value to set")
	configSetCmd.Flags().BoolVarP(&configSetCfg.Force, "force", "f", false, "Overwrite existing values")
	_ = configSetCmd.MarkFlagRequired("key")
	_ = configSetCmd.MarkFlagRequired("value")
	configSetCmd.SilenceUsage = true
	// list
	configListCmd.Flags().StringVarP(&configListCfg.Format, "output", "o", actions.FormatText, "Output format: \"text\", \"json\" or \"yaml\"")
	// remove
	configRemoveCmd.Flags().SortFlags = false
	configRemoveCmd.Flags().StringVarP(&configRemoveCfg.Key, "key", "k", "",
		"The key to remove from config. Match the name of the flag\n"+
			"to have this value take effect in commands")
	_ = configRemoveCmd.MarkFlagRequired("key")
	configRemoveCmd.SilenceUsage = true
}
