package config

import (
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/relloyd/sfsync/helper"
)

// mustGetConfigHomeDir returns the full path to the directory that stores config files.
// SFSYNC_HOME overrides the default of ~/.sfsync.
func mustGetConfigHomeDir() string {
	if sfsyncHomeDir == "" {
		if v := helper.ReadValueFromEnvWithDefault(helper.EnvVarName("home"), ""); v != "" {
			sfsyncHomeDir = v
			return sfsyncHomeDir
		}
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		sfsyncHomeDir = path.Join(home, MainDir)
	}
	return sfsyncHomeDir
}

// makeDir wll make the given directory if it does not already exist.
// If it exist then return nil.
// An error is returned if there is a problem creating the dir.
func makeDir(dir string) error {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) { // if it doesn't exist...
		if err = os.MkdirAll(dir, 0755); err != nil { // if the dir was NOT created...
			return fmt.Errorf("error creating directory %v: %w", dir, err)
		}
	} else if err != nil { // if there was an error getting status...
		return err
	}
	return nil
}
