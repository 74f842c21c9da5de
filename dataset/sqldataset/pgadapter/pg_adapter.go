/*
Package pgadapter provides an implementation of the Adapter interface
in the sqldataset package that works over a PostgreSQL database.
*/
package pgadapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ariaghora/libdtree/dataset/sqldataset"
	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

// MaxSampleInsertionsPerStatement is the maximum number of samples
// that are allowed to be added with a single insert command with the
// AddSamples method of the adapter. Trying to add more will result in
// making more insertion commands.
const MaxSampleInsertionsPerStatement = 10

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns an Adapter
that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(name string) (string, error) {
	if name == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as column name`, name)
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`column name '%s' contains invalid character '"'`, name)
	}
	return name, nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, columns []string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range columns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" DOUBLE PRECISION NULL, `, c))
	}
	createStmtBuf.WriteString(`"id" SERIAL PRIMARY KEY)`)
	createStmt, err := a.db.PrepareContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("preparing samples creation statement: %v", err)
	}
	defer createStmt.Close()
	_, err = createStmt.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, rows [][]float64, columns []string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns to store")
	}
	inserted := 0
	for inserted < len(rows) {
		chunk := rows[inserted:]
		if len(chunk) > MaxSampleInsertionsPerStatement {
			chunk = chunk[:MaxSampleInsertionsPerStatement]
		}
		values := make([]interface{}, 0, len(chunk)*len(columns))
		for i, row := range chunk {
			if len(row) != len(columns) {
				return inserted, fmt.Errorf("sample %d has %d values for %d columns", inserted+i, len(row), len(columns))
			}
			for _, v := range row {
				values = append(values, v)
			}
		}
		_, err := a.db.ExecContext(ctx, insertStatement(columns, len(chunk)), values...)
		if err != nil {
			return inserted, fmt.Errorf("inserting %d samples: %v", len(chunk), err)
		}
		inserted += len(chunk)
	}
	return inserted, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, columns []string, lambda func(int, []float64) (bool, error)) error {
	var queryBuffer bytes.Buffer
	queryBuffer.WriteString(`SELECT "`)
	queryBuffer.WriteString(strings.Join(columns, `", "`))
	queryBuffer.WriteString(`" FROM samples ORDER BY "id"`)
	rows, err := a.db.QueryContext(ctx, queryBuffer.String())
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		nullValues := make([]sql.NullFloat64, len(columns))
		scanDest := make([]interface{}, 0, len(columns))
		for i := range nullValues {
			scanDest = append(scanDest, &nullValues[i])
		}
		err = rows.Scan(scanDest...)
		if err != nil {
			return err
		}
		sample := make([]float64, len(columns))
		for i, v := range nullValues {
			if !v.Valid {
				return fmt.Errorf("sample %d has a missing value for column %s", j, columns[i])
			}
			sample[i] = v.Float64
		}
		ok, err := lambda(j, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT COUNT(*) FROM samples`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		return 0, rows.Err()
	}
	var count int
	err = rows.Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, rows.Err()
}

func (a *adapter) ListColumns(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT column_name FROM information_schema.columns WHERE table_name = 'samples' ORDER BY ordinal_position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var columns []string
	for rows.Next() {
		var name string
		err = rows.Scan(&name)
		if err != nil {
			return nil, err
		}
		if name != "id" {
			columns = append(columns, name)
		}
	}
	return columns, rows.Err()
}

func (a *adapter) Close() error {
	return a.db.Close()
}

func insertStatement(columns []string, n int) string {
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO samples ("`)
	buf.WriteString(strings.Join(columns, `", "`))
	buf.WriteString(`") VALUES `)
	p := 1
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j := 0; j < len(columns); j++ {
			if j > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(fmt.Sprintf("$%d", p))
			p++
		}
		buf.WriteString(")")
	}
	return buf.String()
}
