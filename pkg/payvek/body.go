package payvek

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// requestBody is a JSON object that preserves field insertion order.
// It is serialized exactly once per request: the bytes that get signed
// are the bytes that go on the wire.
type requestBody struct {
	fields []bodyField
}

type bodyField struct {
	key   string
	value any
}

func newBody() *requestBody {
	return &requestBody{}
}

func (b *requestBody) set(key string, value any) *requestBody {
	b.fields = append(b.fields, bodyField{key: key, value: value})
	return b
}

func (b *requestBody) setIfNotEmpty(key, value string) *requestBody {
	if value != "" {
		b.set(key, value)
	}

	return b
}

// setExtra appends pass-through fields in sorted key order.
func (b *requestBody) setExtra(extra map[string]any) *requestBody {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		b.set(key, extra[key])
	}

	return b
}

func (b *requestBody) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, field := range b.fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(field.key)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to encode key %q", field.key)
		}

		value, err := json.Marshal(field.value)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to encode field %q", field.key)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
