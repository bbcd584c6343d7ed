package rdbms

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/constants"
	"github.com/relloyd/sfsync/helper"
	"github.com/relloyd/sfsync/logger"
	sf "github.com/snowflakedb/gosnowflake"
)

const snowflakeDriverName = "snowflake"

// SnowflakeConnectionDetails are the credentials held in the exporter's Secrets Manager secret.
// The JSON keys match the ones the exporter reads.
type SnowflakeConnectionDetails struct {
	Account   string `json:"ACCOUNT" errorTxt:"ACCOUNT" mandatory:"yes"`
	User      string `json:"USER" errorTxt:"USER" mandatory:"yes"`
	Password  string `json:"PASSWORD" errorTxt:"PASSWORD" mandatory:"yes"`
	RoleName  string `json:"ROLE" errorTxt:"ROLE" mandatory:"yes"`
	Warehouse string `json:"WAREHOUSE" errorTxt:"WAREHOUSE" mandatory:"yes"`
	DBName    string `json:"DATABASE" errorTxt:"DATABASE" mandatory:"yes"`
	Schema    string `json:"SCHEMA" errorTxt:"SCHEMA" mandatory:"yes"`
}

// SnowflakeSecretKeys lists the keys a credentials secret must hold.
var SnowflakeSecretKeys = []string{
	constants.SnowflakeSecretKeyUser,
	constants.SnowflakeSecretKeyPassword,
	constants.SnowflakeSecretKeyAccount,
	constants.SnowflakeSecretKeyRole,
	constants.SnowflakeSecretKeyWarehouse,
	constants.SnowflakeSecretKeyDatabase,
	constants.SnowflakeSecretKeySchema,
}

func (d SnowflakeConnectionDetails) String() string {
	return fmt.Sprintf("%v:%v@%v/%v?schema=%v&warehouse=%v&role=%v",
		d.User,
		"xxxxxxx",
		d.Account,
		d.DBName,
		d.Schema,
		d.Warehouse,
		d.RoleName,
	)
}

// NewSnowflakeConnectionDetails decodes a secret string and checks every key is populated.
func NewSnowflakeConnectionDetails(secret string) (*SnowflakeConnectionDetails, error) {
	d := &SnowflakeConnectionDetails{}
	if err := json.Unmarshal([]byte(secret), d); err != nil {
		return nil, errors.Wrap(err, "secret is not a JSON object")
	}
	if err := helper.ValidateStructIsPopulated(d); err != nil {
		return nil, errors.Wrap(err, "secret is missing Snowflake credentials")
	}
	return d, nil
}

// SnowflakeGetDSN constructs a DSN based on SnowflakeConnectionDetails.
func SnowflakeGetDSN(c *SnowflakeConnectionDetails) (string, error) {
	cfg := &sf.Config{
		Account:   c.Account,
		Database:  c.DBName,
		Schema:    c.Schema,
		User:      c.User,
		Password:  c.Password,
		Warehouse: c.Warehouse,
		Role:      c.RoleName,
	}
	return sf.DSN(cfg)
}

func openSnowflake(ctx context.Context, d *SnowflakeConnectionDetails) (*sql.DB, error) {
	dsn, err := SnowflakeGetDSN(d)
	if err != nil {
		return nil, errors.Wrapf(err, "bad Snowflake connection details %v", d)
	}
	db, err := sql.Open(snowflakeDriverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open Snowflake connection %v", d)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "unable to connect to Snowflake %v", d)
	}
	return db, nil
}

// SnowflakePing opens a connection with d, pings it and returns the server version.
func SnowflakePing(ctx context.Context, log logger.Logger, d *SnowflakeConnectionDetails) (string, error) {
	db, err := openSnowflake(ctx, d)
	if err != nil {
		return "", err
	}
	defer db.Close()
	var version string
	if err = db.QueryRowContext(ctx, "SELECT CURRENT_VERSION()").Scan(&version); err != nil {
		return "", errors.Wrap(err, "unable to query Snowflake version")
	}
	log.Info("Successful database connection to Snowflake version ", version)
	return version, nil
}

// SnowflakeExplain compiles query without running it and returns the size of the plan.
func SnowflakeExplain(ctx context.Context, log logger.Logger, d *SnowflakeConnectionDetails, query string) (*RowCounter, error) {
	db, err := openSnowflake(ctx, d)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if _, err = db.ExecContext(ctx, "USE WAREHOUSE "+d.Warehouse); err != nil {
		return nil, errors.Wrapf(err, "unable to use warehouse %v", d.Warehouse)
	}
	c := &RowCounter{}
	if err = SqlQuery(ctx, log, db, "EXPLAIN "+PrepareQueryText(query), c); err != nil {
		return nil, err
	}
	log.Debug("query plan has ", c.Rows, " rows")
	return c, nil
}
