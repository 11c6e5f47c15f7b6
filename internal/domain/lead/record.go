// Package lead holds the customer lead record shared by the intake client and
// the lead router.
package lead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Well-known record keys.
const (
	FieldServiceType = "serviceType"
	FieldFullName    = "fullName"
	FieldDistrict    = "district"
	FieldProvince    = "province"
	FieldTimestamp   = "timestamp"
)

// Record is a flat, insertion-ordered mapping of field name to value.
// The first Set of a key fixes its position; later Sets replace the value in place.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() *Record {
	return &Record{values: map[string]string{}}
}

// RecordOf builds a record from alternating key/value pairs.
func RecordOf(kv ...string) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = map[string]string{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key or "" when absent.
func (r *Record) Value(key string) string {
	v, _ := r.Get(key)
	return v
}

func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns a copy of the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

func (r *Record) Clone() *Record {
	out := NewRecord()
	if r == nil {
		return out
	}
	for _, k := range r.keys {
		out.Set(k, r.values[k])
	}
	return out
}

func (r *Record) ServiceType() ServiceType {
	return ServiceType(r.Value(FieldServiceType))
}

// Stamp sets the timestamp field to t in ISO-8601 UTC with milliseconds.
func (r *Record) Stamp(t time.Time) {
	r.Set(FieldTimestamp, FormatTimestamp(t))
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Project renders the record onto header: missing keys become "" and keys
// outside header are dropped.
func (r *Record) Project(header []string) []string {
	row := make([]string, len(header))
	for i, h := range header {
		row[i] = r.Value(h)
	}
	return row
}

// Merge returns the keys of a followed by the new keys of b. On collision b wins.
func Merge(a, b *Record) *Record {
	out := a.Clone()
	if b == nil {
		return out
	}
	for _, k := range b.keys {
		out.Set(k, b.values[k])
	}
	return out
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r != nil {
		for i, k := range r.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := json.Marshal(r.values[k])
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the object's key order. Non-string values are kept as
// their JSON text; null becomes "".
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("lead record: expected JSON object")
	}
	out := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("lead record: expected string key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("lead record: field %q: %w", key, err)
		}
		out.Set(key, rawValue(raw))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = *out
	return nil
}

func rawValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err == nil {
		return compact.String()
	}
	return string(trimmed)
}

// ParseRecord decodes a JSON object body.
func ParseRecord(data []byte) (*Record, error) {
	r := NewRecord()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	return r, nil
}
