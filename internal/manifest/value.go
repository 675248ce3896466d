package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	NullKind ValueKind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is an arbitrary JSON value. Widget parameter maps have no fixed
// schema, so they are carried as a Value tree. Numbers keep their literal
// text and objects keep member order, which makes re-encoding byte-stable.
// The zero Value is null.
type Value struct {
	kind    ValueKind
	boolean bool
	text    string // number literal or string contents
	items   []Value
	members []Member
}

// Member is one key/value pair of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: BoolKind, boolean: b} }

// Number returns a number Value from its JSON literal, e.g. "8" or "0.25".
func Number(n json.Number) Value { return Value{kind: NumberKind, text: string(n)} }

// String returns a string Value.
func String(s string) Value { return Value{kind: StringKind, text: s} }

// Array returns an array Value.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ArrayKind, items: items}
}

// Object returns an object Value with members in the given order.
func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: ObjectKind, members: members}
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// AsBool returns the boolean and whether v is a bool.
func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == BoolKind }

// AsNumber returns the number literal and whether v is a number.
func (v Value) AsNumber() (json.Number, bool) { return json.Number(v.text), v.kind == NumberKind }

// AsString returns the string and whether v is a string.
func (v Value) AsString() (string, bool) { return v.text, v.kind == StringKind }

// Items returns the elements of an array Value, or nil.
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object Value, or nil.
func (v Value) Members() []Member { return v.members }

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.items)
	case ObjectKind:
		return len(v.members)
	default:
		return 0
	}
}

// Lookup returns the last member named key of an object Value.
func (v Value) Lookup(key string) (Value, bool) {
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether v and o hold the same variant and contents.
// Numbers compare by literal text.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.boolean == o.boolean
	case NumberKind, StringKind:
		return v.text == o.text
	case ArrayKind:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key || !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberKind:
		if !json.Valid([]byte(v.text)) {
			return fmt.Errorf("invalid number literal %q", v.text)
		}
		buf.WriteString(v.text)
	case StringKind:
		if err := encodeString(buf, v.text); err != nil {
			return err
		}
	case ArrayKind:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectKind:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", int(v.kind))
	}
	return nil
}

// encodeString writes s as a JSON string without HTML escaping, matching
// the encoder settings used for manifests and bundles.
func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after value")
	}
	*v = parsed
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array(items...), nil
		case '{':
			members := []Member{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Object(members...), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
