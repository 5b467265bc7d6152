package frame

import (
	"context"
	"database/sql"
	"fmt"
)

// FromSQL loads a Frame from the result of a query. Values are
// normalized the way the MySQL driver returns them: integers arrive as
// int64, strings and blobs as []byte (converted to string here), NULLs
// as nil. Column dtypes are inferred from the loaded values.
func FromSQL(ctx context.Context, db *sql.DB, query string, args ...interface{}) (*Frame, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("query produced no columns")
	}

	columnValues := make([][]interface{}, len(names))
	scan := make([]interface{}, len(names))
	for rows.Next() {
		row := make([]interface{}, len(names))
		for i := range row {
			scan[i] = &row[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range row {
			// Driver returns []byte for strings and blobs; convert for consistency.
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			columnValues[i] = append(columnValues[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	columns := make([]*Column, len(names))
	for i, name := range names {
		values := columnValues[i]
		if values == nil {
			values = []interface{}{}
		}
		columns[i] = &Column{Name: name, Dtype: inferDtype(values), Values: values}
	}
	return NewFrame(columns...)
}
