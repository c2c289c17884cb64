// Package canonical implements the deterministic payload model used as
// HMAC input by the coinpay signing protocol.
//
// A payload is an ordered mapping from string keys to values. Order is
// significant: the serialized form, and therefore the signature, depends
// on the order in which keys were inserted. Numbers carry their original
// decimal literal as text so that amount fields like "100.00000000" are
// reproduced verbatim instead of being collapsed by a float round-trip.
package canonical

import "strconv"

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the absent/null value
	KindNull Kind = iota
	// KindBool is a boolean
	KindBool
	// KindNumber is a numeric value carried as its original decimal literal
	KindNumber
	// KindString is a text value
	KindString
	// KindSequence is an ordered list of values
	KindSequence
	// KindMapping is a nested ordered payload
	KindMapping
)

// String returns the kind name for error messages and logs.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a closed tagged variant: exactly one of null, bool, number,
// string, sequence or mapping. The zero Value is null.
type Value struct {
	kind    Kind
	boolVal bool
	numLit  string
	strVal  string
	seq     []Value
	mapping *Payload
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// Number returns a numeric value holding the given decimal literal
// verbatim. The literal is never re-normalized: trailing zeros and the
// presence or absence of a fractional point survive into the serialized
// output exactly as supplied.
func Number(literal string) Value {
	return Value{kind: KindNumber, numLit: literal}
}

// Int returns a numeric value for an integer.
func Int(n int64) Value {
	return Number(strconv.FormatInt(n, 10))
}

// String returns a text value.
func String(s string) Value {
	return Value{kind: KindString, strVal: s}
}

// Sequence returns an ordered list value.
func Sequence(elems ...Value) Value {
	return Value{kind: KindSequence, seq: elems}
}

// Mapping returns a nested payload value. A nil payload is treated as an
// empty mapping.
func Mapping(p *Payload) Value {
	if p == nil {
		p = NewPayload()
	}
	return Value{kind: KindMapping, mapping: p}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// BoolValue returns the boolean for KindBool values, false otherwise.
func (v Value) BoolValue() bool {
	return v.boolVal
}

// Literal returns the original decimal literal for KindNumber values.
func (v Value) Literal() string {
	return v.numLit
}

// Text returns the string for KindString values.
func (v Value) Text() string {
	return v.strVal
}

// Elements returns the elements of a KindSequence value.
func (v Value) Elements() []Value {
	return v.seq
}

// Nested returns the payload of a KindMapping value, nil otherwise.
func (v Value) Nested() *Payload {
	return v.mapping
}

// Payload is an ordered mapping from string keys to Values. Keys keep
// their insertion order; Set on an existing key replaces the value but
// keeps the original position. The zero-value Payload is not usable;
// construct with NewPayload.
type Payload struct {
	keys   []string
	values map[string]Value
}

// NewPayload creates an empty ordered payload.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]Value)}
}

// Set stores a value under key, appending the key if it is new and
// keeping its position if it already exists. Returns the payload so
// calls can be chained when building request bodies.
func (p *Payload) Set(key string, v Value) *Payload {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
	return p
}

// Get returns the value stored under key.
func (p *Payload) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of entries.
func (p *Payload) Len() int {
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Payload) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}
