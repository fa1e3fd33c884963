package schema

import (
	"fmt"
	"reflect"
	"sync"
)

// Records is a batch of rows ready to be appended to a destination table.
type Records interface {
	// Table is the destination table name.
	Table() string
	// Columns lists destination columns in the order Values returns them.
	Columns() []string
	// Len is the number of rows.
	Len() int
	// Values returns the column values of row i.
	Values(i int) []any
}

// Rows is a typed batch of table rows.
type Rows[T Model] []T

func (r Rows[T]) Table() string {
	var m T
	return m.TableName()
}

func (r Rows[T]) Columns() []string {
	return Columns[T]()
}

func (r Rows[T]) Len() int {
	return len(r)
}

func (r Rows[T]) Values(i int) []any {
	return Values(&r[i])
}

// RawRecords are rows with a column list known only at runtime, for
// example rows read from a delimited file.
type RawRecords struct {
	Name string
	Cols []string
	Data [][]any
}

func (r *RawRecords) Table() string      { return r.Name }
func (r *RawRecords) Columns() []string  { return r.Cols }
func (r *RawRecords) Len() int           { return len(r.Data) }
func (r *RawRecords) Values(i int) []any { return r.Data[i] }

type column struct {
	name  string
	src   string
	index int
}

var columnCache sync.Map

// columns reads `db` and `src` tags of a table struct.
func columns(t reflect.Type) []column {
	if v, ok := columnCache.Load(t); ok {
		return v.([]column)
	}

	var res []column
	for i := range t.NumField() {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		if dbTag == "" || !field.IsExported() {
			continue
		}
		res = append(res, column{
			name:  dbTag,
			src:   field.Tag.Get("src"),
			index: i,
		})
	}

	columnCache.Store(t, res)
	return res
}

func typeOf[T Model]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Columns returns destination column names of a table in field order.
func Columns[T Model]() []string {
	cols := columns(typeOf[T]())
	res := make([]string, len(cols))
	for i, c := range cols {
		res[i] = c.name
	}
	return res
}

// SelectExprs returns the select list for reading a table from the source.
// Columns renamed during migration are aliased to their destination name.
func SelectExprs[T Model]() []string {
	cols := columns(typeOf[T]())
	res := make([]string, len(cols))
	for i, c := range cols {
		if c.src == "" {
			res[i] = c.name
			continue
		}
		res[i] = fmt.Sprintf("%s AS %s", c.src, c.name)
	}
	return res
}

// ScanDest returns pointers to the fields of row in column order, suitable
// for sql.Rows.Scan.
func ScanDest[T Model](row *T) []any {
	v := reflect.ValueOf(row).Elem()
	cols := columns(v.Type())
	res := make([]any, len(cols))
	for i, c := range cols {
		res[i] = v.Field(c.index).Addr().Interface()
	}
	return res
}

// Values returns the field values of row in column order.
func Values[T Model](row *T) []any {
	v := reflect.ValueOf(row).Elem()
	cols := columns(v.Type())
	res := make([]any, len(cols))
	for i, c := range cols {
		res[i] = v.Field(c.index).Interface()
	}
	return res
}

// HasColumn reports whether a table has a destination column with the
// given name.
func HasColumn[T Model](name string) bool {
	for _, c := range columns(typeOf[T]()) {
		if c.name == name {
			return true
		}
	}
	return false
}
