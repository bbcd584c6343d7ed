package actions

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/helper"
)

type ConfigSetConfig struct {
	ConfigFile ConfigGetterSetter `errorTxt:"config-file" mandatory:"yes"`
	Key        string             `errorTxt:"key" mandatory:"yes"`
	Value      string             `errorTxt:"value" mandatory:"yes"`
	Force      bool
	Output     io.Writer
}

type ConfigRemoveConfig struct {
	ConfigFile ConfigGetterSetter `errorTxt:"config-file" mandatory:"yes"`
	Key        string             `errorTxt:"key" mandatory:"yes"`
	Output     io.Writer
}

type ConfigListConfig struct {
	ConfigFile ConfigGetterSetter `errorTxt:"config-file" mandatory:"yes"`
	Output     io.Writer
	Format     string
}

// RunConfigSet saves a default value for a flag.
// Without cfg.Force an existing key is left alone and an error is returned.
// The config file is created lazily.
func RunConfigSet(cfg *ConfigSetConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	var val string
	err := cfg.ConfigFile.Get(cfg.Key, &val)
	if err == nil && !cfg.Force { // if key exists and we're not allowed to overwrite...
		return fmt.Errorf("key %q exists, use force to update the value or remove it first", cfg.Key)
	} else if err != nil && !isMissing(err) { // else there was an unexpected error...
		return err
	}
	if err := cfg.ConfigFile.Set(cfg.Key, cfg.Value); err != nil {
		return fmt.Errorf("error writing config file after adding: %w", err)
	}
	fmt.Fprintf(outputOrStdout(cfg.Output), "Key %q saved\n", cfg.Key)
	return nil
}

// RunConfigRemove removes a key from the config file.
func RunConfigRemove(cfg *ConfigRemoveConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return err
	}
	if err := cfg.ConfigFile.Delete(cfg.Key); err != nil {
		return fmt.Errorf("unable to delete key %q from config: %w", cfg.Key, err)
	}
	fmt.Fprintf(outputOrStdout(cfg.Output), "Key %q removed\n", cfg.Key)
	return nil
}

// RunConfigList prints the saved defaults sorted by key.
func RunConfigList(cfg *ConfigListConfig) (map[string]string, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	keys, err := cfg.ConfigFile.GetAllKeys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		var v string
		if err := cfg.ConfigFile.Get(k, &v); err != nil {
			return nil, err
		}
		values[k] = v
	}
	if cfg.Format == FormatText || cfg.Format == "" {
		w := outputOrStdout(cfg.Output)
		for _, k := range keys {
			fmt.Fprintf(w, "%v: %v\n", k, values[k])
		}
		return values, nil
	}
	return values, writeOutput(outputOrStdout(cfg.Output), values, cfg.Format)
}

func isMissing(err error) bool {
	var k config.KeyNotFoundError
	var f config.FileNotFoundError
	return errors.As(err, &k) || errors.As(err, &f)
}
