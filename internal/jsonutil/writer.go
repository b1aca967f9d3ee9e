// Package jsonutil implements the ordered JSON object model the protocol is
// built on. Writers append fields in declaration order and serialize
// deterministically (the byte ordering signatures are computed over); readers
// preserve declaration order and literal form, and track which fields have
// been consumed so decoders can enforce a closed schema.
package jsonutil

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"saturn-payment-network/internal/core/domain"
)

// ObjectWriter builds a JSON object field by field. Serialization emits the
// fields in the order they were set, which downstream signing relies on.
type ObjectWriter struct {
	names []string
	raws  []json.RawMessage
}

// NewObjectWriter creates an empty object writer.
func NewObjectWriter() *ObjectWriter {
	return &ObjectWriter{}
}

func (w *ObjectWriter) set(name string, raw json.RawMessage) *ObjectWriter {
	w.names = append(w.names, name)
	w.raws = append(w.raws, raw)
	return w
}

// Has reports whether a field has already been set.
func (w *ObjectWriter) Has(name string) bool {
	for _, n := range w.names {
		if n == name {
			return true
		}
	}
	return false
}

// SetString appends a string field.
func (w *ObjectWriter) SetString(name, value string) *ObjectWriter {
	raw, _ := json.Marshal(value)
	return w.set(name, raw)
}

// SetInt appends an integer field.
func (w *ObjectWriter) SetInt(name string, value int) *ObjectWriter {
	return w.set(name, json.RawMessage(strconv.Itoa(value)))
}

// SetBoolean appends a boolean field.
func (w *ObjectWriter) SetBoolean(name string, value bool) *ObjectWriter {
	return w.set(name, json.RawMessage(strconv.FormatBool(value)))
}

// SetAmount appends a money field as a string at the currency's fixed scale.
func (w *ObjectWriter) SetAmount(name string, amount domain.Amount, currency domain.Currency) *ObjectWriter {
	return w.SetString(name, amount.Format(currency))
}

// SetDateTime appends an RFC 3339 UTC timestamp with second precision.
func (w *ObjectWriter) SetDateTime(name string, t time.Time) *ObjectWriter {
	return w.SetString(name, t.UTC().Truncate(time.Second).Format(time.RFC3339))
}

// SetBinary appends binary data as base64url without padding.
func (w *ObjectWriter) SetBinary(name string, data []byte) *ObjectWriter {
	return w.SetString(name, base64.RawURLEncoding.EncodeToString(data))
}

// SetObject appends a nested object.
func (w *ObjectWriter) SetObject(name string, sub *ObjectWriter) *ObjectWriter {
	return w.set(name, sub.Serialize())
}

// SetRaw appends a pre-serialized JSON value. Used to embed an already
// signed message without disturbing its byte ordering.
func (w *ObjectWriter) SetRaw(name string, raw []byte) *ObjectWriter {
	return w.set(name, json.RawMessage(raw))
}

// SetArray appends an array field.
func (w *ObjectWriter) SetArray(name string, arr *ArrayWriter) *ObjectWriter {
	return w.set(name, arr.serialize())
}

// Serialize emits the object with fields in declaration order.
func (w *ObjectWriter) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range w.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(w.raws[i])
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func (w *ObjectWriter) String() string {
	return string(w.Serialize())
}

// ArrayWriter builds a JSON array in element order.
type ArrayWriter struct {
	raws []json.RawMessage
}

// NewArrayWriter creates an empty array writer.
func NewArrayWriter() *ArrayWriter {
	return &ArrayWriter{}
}

// SetString appends a string element.
func (a *ArrayWriter) SetString(value string) *ArrayWriter {
	raw, _ := json.Marshal(value)
	a.raws = append(a.raws, raw)
	return a
}

// SetObject appends an object element.
func (a *ArrayWriter) SetObject(sub *ObjectWriter) *ArrayWriter {
	a.raws = append(a.raws, sub.Serialize())
	return a
}

func (a *ArrayWriter) serialize() json.RawMessage {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, raw := range a.raws {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// Reader turns a writer back into a reader, e.g. for hashing an object that
// was just built.
func (w *ObjectWriter) Reader() (*ObjectReader, error) {
	rd, err := Parse(w.Serialize())
	if err != nil {
		return nil, fmt.Errorf("reparsing writer output: %w", err)
	}
	return rd, nil
}
