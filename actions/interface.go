package actions

import (
	"context"

	"github.com/relloyd/sfsync/logger"
	"github.com/relloyd/sfsync/rdbms"
)

// SnowflakeProber checks the exporter's Snowflake credentials and query.
type SnowflakeProber interface {
	Ping(ctx context.Context, d *rdbms.SnowflakeConnectionDetails) (string, error)
	Explain(ctx context.Context, d *rdbms.SnowflakeConnectionDetails, query string) (*rdbms.RowCounter, error)
}

// NewSnowflakeProber returns a SnowflakeProber that connects with gosnowflake.
func NewSnowflakeProber(log logger.Logger) SnowflakeProber {
	return &snowflakeProber{log: log}
}

type snowflakeProber struct {
	log logger.Logger
}

func (p *snowflakeProber) Ping(ctx context.Context, d *rdbms.SnowflakeConnectionDetails) (string, error) {
	return rdbms.SnowflakePing(ctx, p.log, d)
}

func (p *snowflakeProber) Explain(ctx context.Context, d *rdbms.SnowflakeConnectionDetails, query string) (*rdbms.RowCounter, error) {
	return rdbms.SnowflakeExplain(ctx, p.log, d, query)
}

// ConfigGetterSetter is the part of config.File used by the config commands.
type ConfigGetterSetter interface {
	Get(key string, out interface{}) error
	Set(key string, val interface{}) error
	Delete(key string) error
	GetAllKeys() ([]string, error)
}
