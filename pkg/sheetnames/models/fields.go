package models

import (
	"bytes"
	"encoding/json"
)

// Field is one named probe result attached to a SheetRecord.
type Field struct {
	// Name is the caller-chosen field name.
	Name string `json:"name"`
	// Value is the probed value. An empty string means the probe ran
	// but found nothing.
	Value interface{} `json:"value"`
}

// FieldList holds probe results in the order they were requested.
type FieldList []Field

// Get returns the value attached under name.
func (l FieldList) Get(name string) (interface{}, bool) {
	for _, f := range l {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders the list as a JSON object whose keys keep the
// request order.
func (l FieldList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
