package sqldemo

import (
	"bytes"
	"encoding/json"
)

// Field is a single column value of a Record.
type Field struct {
	Column string
	Value  any
}

// Record is one row of an ad-hoc result set. Unlike a map it keeps the
// column order of the statement, and marshals to a JSON object in that order.
type Record []Field

// NewRecord pairs columns with values. A repeated column name keeps the
// position of its first occurrence and the value of its last.
func NewRecord(columns []string, values []any) Record {
	r := make(Record, 0, len(columns))
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		var v any
		if i < len(values) {
			v = values[i]
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		if j, ok := index[col]; ok {
			r[j].Value = v
			continue
		}
		index[col] = len(r)
		r = append(r, Field{Column: col, Value: v})
	}
	return r
}

// Columns returns the column names in result-set order.
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Column
	}
	return cols
}

// Get returns the value of column and whether it is present.
func (r Record) Get(column string) (any, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(&buf, f.Column); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeJSON appends v to buf without HTML escaping, so statement text
// such as "age>25" stays readable.
func encodeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
