package cmd

import (
	"fmt"
	"os"
	"strings"

	c "github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/helper"
)

// init will be called first due to the lexical order in which these functions are executed.
// This ensures the value of twelveFactorMode is set such that other init() functions that configure
// Cobra can do the job of processing all environment variables that would contain equivalent of the CLI flag
// structures used by the actions.
func init() {
	setupTwelveFactorMode()
}

// setupTwelveFactorMode will enable or disable 12 factor mode based on environment variable.
func setupTwelveFactorMode() {
	mode := os.Getenv(envVarTwelveFactorMode)
	if mode != "" { // if variable for 12factor mode is set and we should read env vars to determine actions...
		twelveFactorMode = true
		lambdaMode = strings.ToLower(mode) == "lambda"
	} else { // else 12factor mode should be off...
		twelveFactorMode = false // explicitly turn off this mode since tests may have turned it on while others require it off.
		lambdaMode = false
	}
}

const (
	envVarTwelveFactorMode = c.EnvVarPrefix + "_" + "12FACTOR_MODE"
	envVarCommand          = c.EnvVarPrefix + "_" + "COMMAND"
	envVarLogLevel         = c.EnvVarPrefix + "_" + "LOG_LEVEL"
)

var (
	twelveFactorMode bool // true if os env var envVarTwelveFactorMode is set
	lambdaMode       bool // true if os env var envVarTwelveFactorMode is "lambda"
)

type twelveFactorAction struct {
	runnerFunc func() error
}

// twelveFactorActions are the commands that make sense without a terminal.
var twelveFactorActions = map[string]twelveFactorAction{
	"check": {runnerFunc: runCheck},
	"run":   {runnerFunc: runExecution},
}

func execute12FactorMode(acts map[string]twelveFactorAction) (err error) {
	level := helper.ReadValueFromEnvWithDefault(envVarLogLevel, "warn")
	cmd := strings.ToLower(strings.TrimSpace(os.Getenv(envVarCommand)))
	log := newLoggerAt(level).WithField("command", cmd)
	log.Info(c.AppName, " is running in 12 Factor mode...")
	a, ok := acts[cmd]
	if !ok {
		err = fmt.Errorf("invalid command %q supplied in %v", cmd, envVarCommand)
		log.Error(err.Error())
		return
	}
	// Run the action.
	err = a.runnerFunc()
	if err != nil {
		log.Error("Error: ", err)
	}
	return err
}
