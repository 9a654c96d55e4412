package models

// Row is a legacy row keyed by column name, as scanned from the source.
type Row map[string]interface{}

// Record is a target row with a stable column order, so generated
// statements are deterministic.
type Record struct {
	Columns []string
	Values  []interface{}
}

// Set appends a column value.
func (r *Record) Set(column string, value interface{}) *Record {
	r.Columns = append(r.Columns, column)
	r.Values = append(r.Values, value)
	return r
}

// Get returns the value stored for column.
func (r *Record) Get(column string) (interface{}, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Key returns the values of columns in order, for existence checks.
func (r *Record) Key(columns []string) []interface{} {
	out := make([]interface{}, 0, len(columns))
	for _, c := range columns {
		v, _ := r.Get(c)
		out = append(out, v)
	}
	return out
}
