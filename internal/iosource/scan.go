package iosource

import (
	"database/sql"

	"github.com/gnames/symbdb/pkg/schema"
)

// ScanRows reads all rows into table structs. Columns are matched by
// position, so the query must select schema.SelectExprs[T]. A value that
// does not fit its field, such as NULL in a NOT NULL column, is a schema
// mismatch.
func ScanRows[T schema.Model](rows *sql.Rows) ([]T, error) {
	defer rows.Close()

	var res []T
	for rows.Next() {
		var row T
		if err := rows.Scan(schema.ScanDest(&row)...); err != nil {
			return nil, SchemaMismatchError(row.TableName(), err)
		}
		res = append(res, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
