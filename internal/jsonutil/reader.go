package jsonutil

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/pkg/apperror"
)

// field holds one parsed object member. Values are string, json.Number, bool,
// nil, *ObjectReader or []any, preserving declaration order and literal form.
type field struct {
	name  string
	value any
	read  bool
}

// ObjectReader is an order-preserving view of a parsed JSON object. Every
// getter marks its field as consumed; CheckForUnread turns any leftover into
// a schema violation, which is what makes the message schema closed.
type ObjectReader struct {
	fields []field
	index  map[string]int
}

// Parse decodes a complete JSON object from data.
func Parse(data []byte) (*ObjectReader, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("invalid JSON: %v", err))
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, apperror.ErrSchemaViolation("top-level JSON must be an object")
	}
	rd, err := parseObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil {
		return nil, apperror.ErrSchemaViolation("trailing data after JSON object")
	}
	return rd, nil
}

func parseObject(dec *json.Decoder) (*ObjectReader, error) {
	rd := &ObjectReader{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, apperror.ErrSchemaViolation(fmt.Sprintf("invalid JSON: %v", err))
		}
		name, ok := tok.(string)
		if !ok {
			return nil, apperror.ErrSchemaViolation("object key is not a string")
		}
		if _, dup := rd.index[name]; dup {
			return nil, apperror.ErrSchemaViolation(fmt.Sprintf("duplicate field %q", name))
		}
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		rd.index[name] = len(rd.fields)
		rd.fields = append(rd.fields, field{name: name, value: value})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("invalid JSON: %v", err))
	}
	return rd, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("invalid JSON: %v", err))
	}
	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return parseObject(dec)
		case '[':
			var elems []any
			for dec.More() {
				v, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, apperror.ErrSchemaViolation(fmt.Sprintf("invalid JSON: %v", err))
			}
			return elems, nil
		}
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("unexpected delimiter %v", delim))
	}
	return tok, nil
}

// Has reports field presence without consuming it.
func (r *ObjectReader) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// PeekString returns a string field without marking it as read. Used for
// dispatch on @qualifier before the real decode runs.
func (r *ObjectReader) PeekString(name string) (string, error) {
	i, ok := r.index[name]
	if !ok {
		return "", apperror.ErrSchemaViolation(fmt.Sprintf("missing field %q", name))
	}
	s, ok := r.fields[i].value.(string)
	if !ok {
		return "", apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not a string", name))
	}
	return s, nil
}

func (r *ObjectReader) get(name string) (any, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("missing field %q", name))
	}
	r.fields[i].read = true
	return r.fields[i].value, nil
}

// GetString reads a required string field.
func (r *ObjectReader) GetString(name string) (string, error) {
	v, err := r.get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not a string", name))
	}
	return s, nil
}

// GetStringConditional reads an optional string field.
func (r *ObjectReader) GetStringConditional(name string) (string, bool, error) {
	if !r.Has(name) {
		return "", false, nil
	}
	s, err := r.GetString(name)
	return s, err == nil, err
}

// GetInt reads a required integer field.
func (r *ObjectReader) GetInt(name string) (int, error) {
	v, err := r.get(name)
	if err != nil {
		return 0, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not a number", name))
	}
	i, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not an integer", name))
	}
	return i, nil
}

// GetBooleanConditional reads an optional boolean field, defaulting to false.
func (r *ObjectReader) GetBooleanConditional(name string) (bool, error) {
	if !r.Has(name) {
		return false, nil
	}
	v, err := r.get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not a boolean", name))
	}
	return b, nil
}

// GetBinary reads a required base64url field.
func (r *ObjectReader) GetBinary(name string) ([]byte, error) {
	s, err := r.GetString(name)
	if err != nil {
		return nil, err
	}
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not base64url", name))
	}
	return data, nil
}

// GetDateTime reads a required RFC 3339 timestamp field.
func (r *ObjectReader) GetDateTime(name string) (time.Time, error) {
	s, err := r.GetString(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not RFC 3339", name))
	}
	return t, nil
}

// GetAmount reads a required money field at the currency's fixed scale.
func (r *ObjectReader) GetAmount(name string, currency domain.Currency) (domain.Amount, error) {
	s, err := r.GetString(name)
	if err != nil {
		return 0, err
	}
	return domain.ParseAmount(s, currency)
}

// GetObject reads a required nested object field.
func (r *ObjectReader) GetObject(name string) (*ObjectReader, error) {
	v, err := r.get(name)
	if err != nil {
		return nil, err
	}
	sub, ok := v.(*ObjectReader)
	if !ok {
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not an object", name))
	}
	return sub, nil
}

// GetArray reads a required array field.
func (r *ObjectReader) GetArray(name string) (*ArrayReader, error) {
	v, err := r.get(name)
	if err != nil {
		return nil, err
	}
	elems, ok := v.([]any)
	if !ok {
		return nil, apperror.ErrSchemaViolation(fmt.Sprintf("field %q is not an array", name))
	}
	return &ArrayReader{elems: elems}, nil
}

// CheckForUnread fails if any field of this object, or of any nested object
// that was opened, has not been consumed.
func (r *ObjectReader) CheckForUnread() error {
	for _, f := range r.fields {
		if !f.read {
			return apperror.ErrSchemaViolation(fmt.Sprintf("unexpected field %q", f.name))
		}
		if err := checkValueRead(f.value); err != nil {
			return err
		}
	}
	return nil
}

func checkValueRead(v any) error {
	switch t := v.(type) {
	case *ObjectReader:
		return t.CheckForUnread()
	case []any:
		for _, e := range t {
			if err := checkValueRead(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// ScanAll marks every field of the object (recursively) as consumed. Used for
// embedded messages whose bytes are carried verbatim and verified separately.
func (r *ObjectReader) ScanAll() {
	for i := range r.fields {
		r.fields[i].read = true
		scanValue(r.fields[i].value)
	}
}

func scanValue(v any) {
	switch t := v.(type) {
	case *ObjectReader:
		t.ScanAll()
	case []any:
		for _, e := range t {
			scanValue(e)
		}
	}
}

// Normalized re-serializes the object with fields in declaration order,
// reproducing the canonical byte form the object was signed over.
func (r *ObjectReader) Normalized() []byte {
	return r.normalized("")
}

// NormalizedExcept serializes all fields but the named one. A signature is
// always the last appended field, so skipping it reproduces the signed bytes.
func (r *ObjectReader) NormalizedExcept(skip string) []byte {
	return r.normalized(skip)
}

func (r *ObjectReader) normalized(skip string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range r.fields {
		if skip != "" && f.name == skip {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(f.name)
		buf.Write(key)
		buf.WriteByte(':')
		writeNormalizedValue(&buf, f.value)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func writeNormalizedValue(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		raw, _ := json.Marshal(t)
		buf.Write(raw)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case *ObjectReader:
		buf.Write(t.Normalized())
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNormalizedValue(buf, e)
		}
		buf.WriteByte(']')
	}
}

func (r *ObjectReader) String() string {
	return string(r.Normalized())
}

// ArrayReader iterates a parsed JSON array in element order.
type ArrayReader struct {
	elems []any
	pos   int
}

// More reports whether elements remain.
func (a *ArrayReader) More() bool {
	return a.pos < len(a.elems)
}

func (a *ArrayReader) next() (any, error) {
	if a.pos >= len(a.elems) {
		return nil, apperror.ErrSchemaViolation("array exhausted")
	}
	v := a.elems[a.pos]
	a.pos++
	return v, nil
}

// GetObject reads the next element as an object.
func (a *ArrayReader) GetObject() (*ObjectReader, error) {
	v, err := a.next()
	if err != nil {
		return nil, err
	}
	sub, ok := v.(*ObjectReader)
	if !ok {
		return nil, apperror.ErrSchemaViolation("array element is not an object")
	}
	return sub, nil
}

// GetString reads the next element as a string.
func (a *ArrayReader) GetString() (string, error) {
	v, err := a.next()
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", apperror.ErrSchemaViolation("array element is not a string")
	}
	return s, nil
}
