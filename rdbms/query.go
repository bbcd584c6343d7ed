package rdbms

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/relloyd/sfsync/logger"
)

// SqlResultHandler receives the column names once and then every row of a query.
type SqlResultHandler interface {
	HandleHeader(header []interface{}) error
	HandleRow(row []interface{}) error
}

// RowCounter is a SqlResultHandler that keeps the header and counts rows.
type RowCounter struct {
	Header []string
	Rows   int
}

func (c *RowCounter) HandleHeader(header []interface{}) error {
	for _, h := range header {
		c.Header = append(c.Header, fmt.Sprint(h))
	}
	return nil
}

func (c *RowCounter) HandleRow(row []interface{}) error {
	c.Rows++
	return nil
}

// PrepareQueryText flattens a query file the same way the exporter does before it runs it:
// newlines are removed, not replaced.
func PrepareQueryText(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\n", ""))
}

func SqlQuery(ctx context.Context, log logger.Logger, db *sql.DB, sqltext string, i SqlResultHandler) error {
	rows, err := db.QueryContext(ctx, sqltext)
	if err != nil {
		return fmt.Errorf("error during database query using SQL: '%v': %w", sqltext, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	// Set up column types for Scan(...)
	log.Debug("fetching column types...")
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return fmt.Errorf("error fetching column types: %w", err)
	}
	for _, v := range colTypes {
		log.Debug("column scan type = ", v.ScanType())
	}
	// Scan the values dynamically.
	lenColTypes := len(colTypes)
	scanPtrs := make([]interface{}, lenColTypes)
	scanVals := make([]interface{}, lenColTypes)
	for idx := 0; idx < lenColTypes; idx++ { // for each column...
		scanPtrs[idx] = &scanVals[idx] // save the value.
	}
	// Build and send the header.
	header := make([]interface{}, lenColTypes)
	for idx := range colTypes {
		header[idx] = colTypes[idx].Name()
	}
	if err = i.HandleHeader(header); err != nil {
		return err
	}
	// Send the rows via callback interface.
	for rows.Next() {
		if err := ctx.Err(); err != nil { // quit if asked to.
			return err
		}
		if err := rows.Scan(scanPtrs...); err != nil {
			return fmt.Errorf("error scanning row: %v", err)
		}
		row := make([]interface{}, lenColTypes)
		copy(row, scanVals)
		if err := i.HandleRow(row); err != nil {
			return err
		}
	}
	return rows.Err()
}
