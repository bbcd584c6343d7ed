package cmd

import (
	"net"

	"github.com/relloyd/sfsync/actions"
	"github.com/relloyd/sfsync/aws/s3"
	"github.com/relloyd/sfsync/aws/sfn"
	"github.com/relloyd/sfsync/config"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a web service to inspect and trigger the workflow",
	Long: `Start a web service with these routes:

  GET  /health                health check
  GET  /plan                  the resources that make up the pipeline
  POST /executions            start the workflow now
  GET  /executions[?max=N]    recent executions
  GET  /executions/{name}     status of one execution
  GET  /exports               files written by the exporter
  GET  /stop                  stop the web service`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		log := newLogger()
		if err := resolveStackOutputs(ctx, log, &serveConfig.StateMachineARN, &serveConfig.RoleARN); err != nil {
			log.Warn(err, "; execution routes are disabled")
		} else {
			serveConfig.SFN = sfn.NewClient(deployment.Region)
		}
		serveConfig.Deployment = deployment
		serveConfig.LogLevel = logLevel
		serveConfig.StackDumpOnPanic = stackDumpOnPanic
		serveConfig.Exports = exportsLister(deployment)
		return actions.RunWebServer(&serveConfig)
	},
}

// exportsLister returns nil when no output bucket is configured so /exports can say so.
func exportsLister(d config.Deployment) s3.Lister {
	if d.OutputBucket == "" {
		return nil
	}
	return s3.NewClient(d.OutputBucket, d.Region, d.OutputPrefix)
}

var serveConfig = actions.WebServerConfig{
	Scheme: "http",
	Addr:   net.IP{0, 0, 0, 0},
	Port:   8080,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().SortFlags = false
	serveCmd.Flags().IPVarP(&serveConfig.Addr, "address", "a", net.IP{0, 0, 0, 0}, "Address to listen on")
	switches.addFlag(serveCmd, &serveConfig.Port, "port", "8080", false, "")
	addDeploymentFlags(serveCmd)
	switches.addFlag(serveCmd, &serveConfig.StateMachineARN, "state-machine-arn", "", false, "")
	switches.addFlag(serveCmd, &serveConfig.RoleARN, "role-arn", "", false, "")
	serveCmd.SilenceUsage = true
}
