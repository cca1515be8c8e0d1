// Package jsonpath implements the JSON value model, small path grammar,
// and validate-then-clone-then-mutate-then-swap edit engine for hashline's
// JSON mode.
//
// encoding/json's Decoder collapses objects into plain maps, losing
// insertion order; since no library in the retrieval pack offers an
// order-preserving JSON decoder, Value is decoded by hand from the
// stdlib Decoder's token stream (json.Decoder.Token), the one place this
// package reaches past the pack's third-party surface.
package jsonpath

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates a Value's underlying JSON type.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a JSON tree node. Object preserves the key insertion order it
// was parsed with; canonical serialization re-sorts keys separately and
// never mutates Object's own order.
type Value struct {
	Kind   Kind
	Bool   bool
	Number json.Number
	Str    string
	Array  []*Value
	Object *Object
}

// Object is an insertion-ordered string-keyed map.
type Object struct {
	keys  []string
	index map[string]int
	vals  []*Value
}

func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *Object) Get(key string) (*Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

// Set upserts key, preserving its original position if it already exists
// and appending it otherwise.
func (o *Object) Set(key string, v *Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	delete(o.index, key)
	for k, idx := range o.index {
		if idx > i {
			o.index[k] = idx - 1
		}
	}
	return true
}

func (o *Object) Len() int { return len(o.keys) }

// Clone deep-copies the value, the basis for the engine's
// stage-onto-a-clone atomicity.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{Kind: v.Kind, Bool: v.Bool, Number: v.Number, Str: v.Str}
	if v.Array != nil {
		out.Array = make([]*Value, len(v.Array))
		for i, e := range v.Array {
			out.Array[i] = e.Clone()
		}
	}
	if v.Object != nil {
		out.Object = NewObject()
		for _, k := range v.Object.keys {
			val, _ := v.Object.Get(k)
			out.Object.Set(k, val.Clone())
		}
	}
	return out
}

func Null() *Value          { return &Value{Kind: KindNull} }
func Bool(b bool) *Value    { return &Value{Kind: KindBool, Bool: b} }
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Parse decodes JSON text into an order-preserving Value tree.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return &Value{Kind: KindObject, Object: obj}, nil

		case '[':
			var arr []*Value
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			if arr == nil {
				arr = []*Value{}
			}
			return &Value{Kind: KindArray, Array: arr}, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)

	case json.Number:
		return &Value{Kind: KindNumber, Number: t}, nil
	case string:
		return &Value{Kind: KindString, Str: t}, nil
	case bool:
		return &Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return &Value{Kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

