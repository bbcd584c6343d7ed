package cmd

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/helper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type cliFlag struct {
	name      string // name of flag
	val       string // default value
	shortHand string // single character name for the flag
	desc      string // description of the flag; the long text
}

type cliFlags map[string]cliFlag

var switches = cliFlags{
	"importer-handler": cliFlag{name: "importer-handler", shortHand: "I",
		desc: "Handler of the TwinMaker importer function in the form <module>.<function>, \n" +
			"e.g. \"tm_importer.lambda_handler\" or \"handlers.tm_importer.import_handler\""},
	"exporter-handler": cliFlag{name: "exporter-handler", shortHand: "E",
		desc: "Handler of the Snowflake exporter function in the form <module>.<function>"},
	"query-file-key": cliFlag{name: "query-file-key", shortHand: "q",
		desc: "Path of the SQL query file, relative to the function asset directory, \n" +
			"that the exporter runs against Snowflake"},
	"secret-name": cliFlag{name: "secret-name", shortHand: "s",
		desc: "Name of the Secrets Manager secret holding the Snowflake credentials"},
	"output-bucket": cliFlag{name: "output-bucket", shortHand: "b",
		desc: "S3 bucket the exporter writes query results to"},
	"output-prefix": cliFlag{name: "output-prefix", shortHand: "P",
		desc: "S3 key prefix for exported files"},
	"workspace-id": cliFlag{name: "workspace-id", shortHand: "w",
		desc: "IoT TwinMaker workspace that receives the imported entities"},
	"component-type-id": cliFlag{name: "component-type-id", shortHand: "c",
		desc: "IoT TwinMaker component type given to imported entities"},
	"asset-root": cliFlag{name: "asset-root", shortHand: "A",
		desc: "Directory holding the layer and function asset directories"},
	"region": cliFlag{name: "region", shortHand: "R",
		desc: "AWS region (omit to use the AWS environment default)"},
	"project-name": cliFlag{name: "project-name", shortHand: "N",
		desc: "Pulumi project name"},
	"stack-name": cliFlag{name: "stack-name", shortHand: "S",
		desc: "Pulumi stack name"},
	"output": cliFlag{name: "output", shortHand: "o",
		desc: "Output format: \"json\", \"yaml\" or \"text\" where supported"},
	"log-level": cliFlag{name: "log-level", shortHand: "l",
		desc: "Log level: \"error | warn | info | debug | trace\""},
	"state-machine-arn": cliFlag{name: "state-machine-arn", shortHand: "M",
		desc: "ARN of the deployed state machine (omit to read it from the stack outputs)"},
	"role-arn": cliFlag{name: "role-arn", shortHand: "r",
		desc: "ARN of the deployed access role (omit to read it from the stack outputs)"},
	"wait": cliFlag{name: "wait", shortHand: "W",
		desc: "Wait for the execution to stop and fail unless it succeeded"},
	"poll": cliFlag{name: "poll", shortHand: "p",
		desc: "Number of seconds between status checks while waiting"},
	"max": cliFlag{name: "max", shortHand: "n",
		desc: "Maximum number of items to list"},
	"explain": cliFlag{name: "explain", shortHand: "x",
		desc: "Compile the query file in Snowflake using EXPLAIN"},
	"port": cliFlag{name: "port", shortHand: "p",
		desc: "Port to listen on"},
	"key": cliFlag{name: "key", shortHand: "k",
		desc: "S3 key of the export to fetch, as printed by \"exports list\""},
}

// addFlag add a flag to combra.Command c, based on the type of targetVar (which must be a pointer).
// The name of the flag is looked up in map, cliFlags.
// When running in twelveFactorMode, the targetVar is populated using the value of environment variable for the supplied
// name, or if not set then the supplied default value is used.
// When NOT running in twelveFactorMode, the default value is fetched from config if it exists else the supplied
// defaultValue is applied.
// The flag is marked as required in Cobra based on the value of required.
// Supply a value for desc2 to append to the existing description found in map cliFlags.
func (f *cliFlags) addFlag(c *cobra.Command, targetVar interface{}, name string, defaultValue string, required bool, desc2 string) {
	v := reflect.ValueOf(targetVar)
	if v.Kind() != reflect.Ptr {
		fmt.Println("error adding flag: targetVar must be a pointer")
		os.Exit(1)
	}
	sw := f.getCliFlag(name, defaultValue, config.Main.Get) // get the cliFlag details, with defaults taken from config or the supplied defaultValue
	desc := sw.desc + desc2                                 // create the full flag description for use below
	// Apply the flag.
	switch p := targetVar.(type) {
	case *string:
		if twelveFactorMode {
			*p = sw.val
		} else {
			c.Flags().StringVarP(p, sw.name, sw.shortHand, sw.val, desc)
			// Signal that the flag was set so defaults take effect.
			if sw.val != "" { // if there is a value via config or default...
				mustSetFlag(c.Flags(), sw.name, sw.val)
			}
		}
	case *bool:
		defaultBool := parseBool(sw.val)
		if twelveFactorMode {
			*p = defaultBool
		} else {
			c.Flags().BoolVarP(p, sw.name, sw.shortHand, defaultBool, desc)
			mustSetFlag(c.Flags(), sw.name, strconv.FormatBool(defaultBool))
		}
	case *int:
		defaultInt, err := strconv.Atoi(sw.val)
		if err != nil {
			fmt.Printf("the value for flag %q must be an integer: %v\n", sw.name, err)
			os.Exit(1)
		}
		if twelveFactorMode {
			*p = defaultInt
		} else {
			c.Flags().IntVarP(p, sw.name, sw.shortHand, defaultInt, desc)
			// Signal that the flag was set so defaults take effect.
			if sw.val != "" { // if there is a value via config or default...
				mustSetFlag(c.Flags(), sw.name, sw.val)
			}
		}
	default:
		panic("Error: unhandled CLI flag target value type")
	}
	// Optionally mark the flag as mandatory.
	if required && !twelveFactorMode { // if the flag is required...
		_ = c.MarkFlagRequired(sw.name)
	}
}

// getCliFlag fetches the value of name from the environment, when running in twelveFactorMode,
// else read the Main config file to find it.
// If a value cannot be found then use the supplied defaultValue in its place.
func (f *cliFlags) getCliFlag(name string, defaultValue string, fnGetConfig func(key string, out interface{}) error) cliFlag {
	s, ok := (*f)[name]
	if !ok {
		panic(fmt.Sprintf("unregistered CLI flag, %q", name))
	}
	if twelveFactorMode { // if we should read env vars...
		if err := helper.ReadValueFromEnv(flagNameToEnvVar(name), &s.val); err != nil { // if there's no value for the env var read into the switch val...
			// Apply the default.
			s.val = defaultValue
		}
	} else { // else check the config file or apply default...
		err := fnGetConfig(s.name, &s.val)
		if errors.As(err, &config.KeyNotFoundError{}) || errors.As(err, &config.FileNotFoundError{}) || s.val == "" { // if there was no key found...
			// Apply the default.
			s.val = defaultValue
		}
	}
	return s
}

// flagNameToEnvVar will form a sanitised environment variable name using constants.EnvVarPrefix.
func flagNameToEnvVar(name string) string {
	return helper.EnvVarName(name)
}

// parseBool treats "true", "1" and "yes" in any case as true.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func mustSetFlag(f *pflag.FlagSet, name string, val string) {
	if err := f.Set(name, val); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
