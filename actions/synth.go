package actions

import (
	"io"
	"time"

	"github.com/relloyd/sfsync/config"
	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/pipeline"
)

type SynthConfig struct {
	Deployment config.Deployment
	Format     string
	Output     io.Writer
	Now        func() time.Time
}

// RunSynth prints the resource graph without touching the cloud.
// Missing deployment values are reported but do not stop the graph being printed.
func RunSynth(log logger.Logger, cfg *SynthConfig) error {
	if err := cfg.Deployment.Validate(); err != nil {
		log.Warn(err)
	}
	m, err := describePlan(cfg.Deployment, cfg.Now)
	if err != nil {
		return err
	}
	return writeOutput(outputOrStdout(cfg.Output), m, cfg.Format)
}

func describePlan(d config.Deployment, now func() time.Time) (*pipeline.Manifest, error) {
	plan, err := pipeline.NewPlan(d)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return plan.Manifest(now())
}
